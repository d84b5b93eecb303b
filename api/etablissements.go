package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// EtablissementAPI représente l'API des établissements
type EtablissementAPI struct {
	DB *gorm.DB
}

// NewEtablissementAPI crée une nouvelle instance d'EtablissementAPI
func NewEtablissementAPI(db *gorm.DB) *EtablissementAPI {
	return &EtablissementAPI{DB: db}
}

type etablissementAvecComptes struct {
	models.Etablissement
	Count struct {
		Equipements   int64 `json:"equipements"`
		Supervisions  int64 `json:"supervisions"`
		Localisations int64 `json:"localisations"`
	} `json:"_count"`
}

// etablissementInput porte les champs modifiables d'un établissement
type etablissementInput struct {
	Nom         string `json:"nom"`
	UAI         string `json:"uai"`
	Adresse     string `json:"adresse"`
	Telephone   string `json:"telephone"`
	Email       string `json:"email"`
	Commentaire string `json:"commentaire"`
}

// GetEtablissements retourne tous les établissements triés par nom,
// avec les comptes d'équipements, de supervisions et de localisations
func (api *EtablissementAPI) GetEtablissements(c *gin.Context) {
	var etablissements []models.Etablissement
	if err := api.DB.Order("nom ASC").Find(&etablissements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des établissements"})
		return
	}

	equipements, err := compteParClef(api.DB, &models.Equipement{}, "etablissement_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des établissements"})
		return
	}
	supervisions, err := compteParClef(api.DB, &models.Supervision{}, "etablissement_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des établissements"})
		return
	}
	localisations, err := compteParClef(api.DB, &models.Localisation{}, "etablissement_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des établissements"})
		return
	}

	reponse := make([]etablissementAvecComptes, 0, len(etablissements))
	for _, e := range etablissements {
		ligne := etablissementAvecComptes{Etablissement: e}
		ligne.Count.Equipements = equipements[e.ID]
		ligne.Count.Supervisions = supervisions[e.ID]
		ligne.Count.Localisations = localisations[e.ID]
		reponse = append(reponse, ligne)
	}

	c.JSON(http.StatusOK, reponse)
}

// CreateEtablissement crée un établissement. Le nom, une fois les blancs
// retirés, est obligatoire ; les autres champs vides deviennent null.
func (api *EtablissementAPI) CreateEtablissement(c *gin.Context) {
	var input etablissementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	nom := strings.TrimSpace(input.Nom)
	if nom == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nom de l'établissement est requis."})
		return
	}

	etablissement := models.Etablissement{
		Nom:         nom,
		UAI:         chaineNullable(input.UAI),
		Adresse:     chaineNullable(input.Adresse),
		Telephone:   chaineNullable(input.Telephone),
		Email:       chaineNullable(input.Email),
		Commentaire: chaineNullable(input.Commentaire),
	}

	if err := api.DB.Create(&etablissement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de l'établissement"})
		return
	}

	invaliderCacheDashboard()
	c.JSON(http.StatusCreated, etablissement)
}

// UpdateEtablissement met à jour partiellement un établissement.
// 404 si la cible n'existe pas, 400 si le nom devient vide.
func (api *EtablissementAPI) UpdateEtablissement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant d'établissement invalide."})
		return
	}

	var etablissement models.Etablissement
	if err := api.DB.First(&etablissement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Établissement introuvable."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour de l'établissement"})
		}
		return
	}

	var input etablissementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	nom := strings.TrimSpace(input.Nom)
	if nom == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nom de l'établissement est requis."})
		return
	}

	etablissement.Nom = nom
	etablissement.UAI = chaineNullable(input.UAI)
	etablissement.Adresse = chaineNullable(input.Adresse)
	etablissement.Telephone = chaineNullable(input.Telephone)
	etablissement.Email = chaineNullable(input.Email)
	etablissement.Commentaire = chaineNullable(input.Commentaire)

	if err := api.DB.Save(&etablissement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour de l'établissement"})
		return
	}

	invaliderCacheDashboard()
	c.JSON(http.StatusOK, etablissement)
}
