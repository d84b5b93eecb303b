package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// FabricantAPI représente l'API des fabricants
type FabricantAPI struct {
	DB *gorm.DB
}

// NewFabricantAPI crée une nouvelle instance de FabricantAPI
func NewFabricantAPI(db *gorm.DB) *FabricantAPI {
	return &FabricantAPI{DB: db}
}

type fabricantAvecCompte struct {
	models.Fabricant
	Count struct {
		Modeles int64 `json:"modeles"`
	} `json:"_count"`
}

// GetFabricants retourne tous les fabricants triés par nom, avec le nombre de modèles
func (api *FabricantAPI) GetFabricants(c *gin.Context) {
	var fabricants []models.Fabricant
	if err := api.DB.Order("nom ASC").Find(&fabricants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des fabricants"})
		return
	}

	comptes, err := compteParClef(api.DB, &models.Modele{}, "fabricant_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des fabricants"})
		return
	}

	reponse := make([]fabricantAvecCompte, 0, len(fabricants))
	for _, f := range fabricants {
		ligne := fabricantAvecCompte{Fabricant: f}
		ligne.Count.Modeles = comptes[f.ID]
		reponse = append(reponse, ligne)
	}

	c.JSON(http.StatusOK, reponse)
}

// CreateFabricant crée un nouveau fabricant. Le nom est unique : un doublon
// répond 409, c'est le contrat attendu par l'outillage d'import.
func (api *FabricantAPI) CreateFabricant(c *gin.Context) {
	var fabricant models.Fabricant
	if err := c.ShouldBindJSON(&fabricant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	fabricant.Nom = strings.TrimSpace(fabricant.Nom)

	var existant models.Fabricant
	if err := api.DB.Where("nom = ?", fabricant.Nom).First(&existant).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un fabricant portant ce nom existe déjà"})
		return
	}

	if err := api.DB.Create(&fabricant).Error; err != nil {
		// La vérification ci-dessus peut être doublée par une création
		// concurrente : l'index unique tranche, et le perdant reçoit le
		// même 409 que le chemin nominal
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Un fabricant portant ce nom existe déjà"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du fabricant"})
		return
	}

	invaliderCacheDashboard()
	c.JSON(http.StatusCreated, fabricant)
}
