package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// ModeleAPI représente l'API du catalogue de modèles
type ModeleAPI struct {
	DB *gorm.DB
}

// NewModeleAPI crée une nouvelle instance de ModeleAPI
func NewModeleAPI(db *gorm.DB) *ModeleAPI {
	return &ModeleAPI{DB: db}
}

type modeleAvecCompte struct {
	models.Modele
	Count struct {
		Equipements int64 `json:"equipements"`
	} `json:"_count"`
}

// GetModeles retourne les modèles, filtrables par fabricant et par catégorie,
// triés par nom de fabricant puis nom de modèle
func (api *ModeleAPI) GetModeles(c *gin.Context) {
	query := api.DB.Model(&models.Modele{}).
		Joins("JOIN fabricants ON fabricants.id = modeles.fabricant_id").
		Preload("Fabricant").
		Preload("Categorie")

	// Filtres
	if fabricantID := c.Query("fabricantId"); fabricantID != "" {
		query = query.Where("modeles.fabricant_id = ?", fabricantID)
	}
	if categorieID := c.Query("categorieId"); categorieID != "" {
		query = query.Where("modeles.categorie_id = ?", categorieID)
	}

	var modeles []models.Modele
	if err := query.Order("fabricants.nom ASC, modeles.nom ASC").Find(&modeles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des modèles"})
		return
	}

	comptes, err := compteParClef(api.DB, &models.Equipement{}, "modele_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des modèles"})
		return
	}

	reponse := make([]modeleAvecCompte, 0, len(modeles))
	for _, m := range modeles {
		ligne := modeleAvecCompte{Modele: m}
		ligne.Count.Equipements = comptes[m.ID]
		reponse = append(reponse, ligne)
	}

	c.JSON(http.StatusOK, reponse)
}

// CreateModele crée un nouveau modèle. Les clefs fabricantId et categorieId
// ne sont pas pré-validées : une référence absente échoue au stockage.
func (api *ModeleAPI) CreateModele(c *gin.Context) {
	var modele models.Modele
	if err := c.ShouldBindJSON(&modele); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if err := api.DB.Create(&modele).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du modèle"})
		return
	}

	// Recharge avec le fabricant et la catégorie pour la réponse
	if err := api.DB.Preload("Fabricant").Preload("Categorie").First(&modele, modele.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du modèle"})
		return
	}

	invaliderCacheDashboard()
	c.JSON(http.StatusCreated, modele)
}
