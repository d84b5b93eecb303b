package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// LocalisationAPI représente l'API des localisations
type LocalisationAPI struct {
	DB *gorm.DB
}

// NewLocalisationAPI crée une nouvelle instance de LocalisationAPI
func NewLocalisationAPI(db *gorm.DB) *LocalisationAPI {
	return &LocalisationAPI{DB: db}
}

type localisationAvecCompte struct {
	models.Localisation
	Count struct {
		Equipements int64 `json:"equipements"`
	} `json:"_count"`
}

// GetLocalisations retourne les localisations, filtrables par établissement,
// triées par nom d'établissement puis nom de localisation
func (api *LocalisationAPI) GetLocalisations(c *gin.Context) {
	query := api.DB.Model(&models.Localisation{}).
		Joins("JOIN etablissements ON etablissements.id = localisations.etablissement_id").
		Preload("Etablissement")

	if etablissementID := c.Query("etablissementId"); etablissementID != "" {
		query = query.Where("localisations.etablissement_id = ?", etablissementID)
	}

	var localisations []models.Localisation
	if err := query.Order("etablissements.nom ASC, localisations.nom ASC").Find(&localisations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des localisations"})
		return
	}

	comptes, err := compteParClef(api.DB, &models.Equipement{}, "localisation_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des localisations"})
		return
	}

	reponse := make([]localisationAvecCompte, 0, len(localisations))
	for _, l := range localisations {
		ligne := localisationAvecCompte{Localisation: l}
		ligne.Count.Equipements = comptes[l.ID]
		reponse = append(reponse, ligne)
	}

	c.JSON(http.StatusOK, reponse)
}

// CreateLocalisation crée une localisation rattachée à un établissement
func (api *LocalisationAPI) CreateLocalisation(c *gin.Context) {
	var localisation models.Localisation
	if err := c.ShouldBindJSON(&localisation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if err := api.DB.Create(&localisation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la localisation"})
		return
	}

	if err := api.DB.Preload("Etablissement").First(&localisation, localisation.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la localisation"})
		return
	}

	invaliderCacheDashboard()
	c.JSON(http.StatusCreated, localisation)
}
