package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// SupervisionAPI représente l'API des relevés de supervision
type SupervisionAPI struct {
	DB *gorm.DB
}

// NewSupervisionAPI crée une nouvelle instance de SupervisionAPI
func NewSupervisionAPI(db *gorm.DB) *SupervisionAPI {
	return &SupervisionAPI{DB: db}
}

// GetSupervisions retourne les relevés, filtrables par établissement,
// triés par nom d'établissement
func (api *SupervisionAPI) GetSupervisions(c *gin.Context) {
	query := api.DB.Model(&models.Supervision{}).
		Joins("JOIN etablissements ON etablissements.id = supervisions.etablissement_id").
		Preload("Etablissement")

	if etablissementID := c.Query("etablissementId"); etablissementID != "" {
		query = query.Where("supervisions.etablissement_id = ?", etablissementID)
	}

	supervisions := make([]models.Supervision, 0)
	if err := query.Order("etablissements.nom ASC").Find(&supervisions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des relevés de supervision"})
		return
	}

	c.JSON(http.StatusOK, supervisions)
}

// CreateSupervision crée un relevé de supervision pour un établissement.
// Les compteurs absents valent 0.
func (api *SupervisionAPI) CreateSupervision(c *gin.Context) {
	var supervision models.Supervision
	if err := c.ShouldBindJSON(&supervision); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if err := api.DB.Create(&supervision).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du relevé de supervision"})
		return
	}

	if err := api.DB.Preload("Etablissement").First(&supervision, supervision.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du relevé de supervision"})
		return
	}

	invaliderCacheDashboard()
	c.JSON(http.StatusCreated, supervision)
}
