package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_inventaire/models"
	"backend_inventaire/services"
)

// RapportAPI représente l'API des exports d'inventaire
type RapportAPI struct {
	DB      *gorm.DB
	Exports *services.ExportService
}

// NewRapportAPI crée une nouvelle instance de RapportAPI
func NewRapportAPI(db *gorm.DB) *RapportAPI {
	return &RapportAPI{DB: db, Exports: services.NewExportService()}
}

// ExportEquipements produit l'inventaire filtré au format demandé
// (xlsx par défaut, csv ou pdf). Les filtres sont ceux de la liste.
func (api *RapportAPI) ExportEquipements(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "csv" && format != "pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format d'export inconnu: " + format})
		return
	}

	equipements := make([]models.Equipement, 0)
	err := construireRequeteEquipements(api.DB, filtresDepuisRequete(c)).
		Preload("Modele.Fabricant").
		Preload("Modele.Categorie").
		Preload("Etablissement").
		Preload("Localisation").
		Preload("Statut").
		Find(&equipements).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des équipements"})
		return
	}

	var (
		contenu     []byte
		contentType string
	)
	switch format {
	case "xlsx":
		contenu, err = api.Exports.EquipementsXLSX(equipements)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		contenu, err = api.Exports.EquipementsCSV(equipements)
		contentType = "text/csv; charset=utf-8"
	case "pdf":
		contenu, err = api.Exports.EquipementsPDF(equipements)
		contentType = "application/pdf"
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération de l'export"})
		return
	}

	nomFichier := fmt.Sprintf("inventaire_%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", `attachment; filename="`+nomFichier+`"`)
	c.Data(http.StatusOK, contentType, contenu)
}
