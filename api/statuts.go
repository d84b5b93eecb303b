package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// StatutAPI représente l'API des statuts d'équipements
type StatutAPI struct {
	DB *gorm.DB
}

// NewStatutAPI crée une nouvelle instance de StatutAPI
func NewStatutAPI(db *gorm.DB) *StatutAPI {
	return &StatutAPI{DB: db}
}

type statutAvecCompte struct {
	models.Statut
	Count struct {
		Equipements int64 `json:"equipements"`
	} `json:"_count"`
}

// GetStatuts retourne tous les statuts triés par nom, avec le nombre d'équipements
func (api *StatutAPI) GetStatuts(c *gin.Context) {
	var statuts []models.Statut
	if err := api.DB.Order("nom ASC").Find(&statuts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des statuts"})
		return
	}

	comptes, err := compteParClef(api.DB, &models.Equipement{}, "statut_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des statuts"})
		return
	}

	reponse := make([]statutAvecCompte, 0, len(statuts))
	for _, s := range statuts {
		ligne := statutAvecCompte{Statut: s}
		ligne.Count.Equipements = comptes[s.ID]
		reponse = append(reponse, ligne)
	}

	c.JSON(http.StatusOK, reponse)
}

// CreateStatut crée un nouveau statut
func (api *StatutAPI) CreateStatut(c *gin.Context) {
	var statut models.Statut
	if err := c.ShouldBindJSON(&statut); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if err := api.DB.Create(&statut).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du statut"})
		return
	}

	invaliderCacheDashboard()
	c.JSON(http.StatusCreated, statut)
}
