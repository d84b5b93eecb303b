package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// CategorieAPI représente l'API des catégories d'équipements
type CategorieAPI struct {
	DB *gorm.DB
}

// NewCategorieAPI crée une nouvelle instance de CategorieAPI
func NewCategorieAPI(db *gorm.DB) *CategorieAPI {
	return &CategorieAPI{DB: db}
}

type categorieAvecCompte struct {
	models.Categorie
	Count struct {
		Modeles int64 `json:"modeles"`
	} `json:"_count"`
}

// GetCategories retourne toutes les catégories triées par nom, avec le nombre de modèles
func (api *CategorieAPI) GetCategories(c *gin.Context) {
	var categories []models.Categorie
	if err := api.DB.Order("nom ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des catégories"})
		return
	}

	comptes, err := compteParClef(api.DB, &models.Modele{}, "categorie_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des catégories"})
		return
	}

	reponse := make([]categorieAvecCompte, 0, len(categories))
	for _, cat := range categories {
		ligne := categorieAvecCompte{Categorie: cat}
		ligne.Count.Modeles = comptes[cat.ID]
		reponse = append(reponse, ligne)
	}

	c.JSON(http.StatusOK, reponse)
}

// CreateCategorie crée une nouvelle catégorie
func (api *CategorieAPI) CreateCategorie(c *gin.Context) {
	var categorie models.Categorie
	if err := c.ShouldBindJSON(&categorie); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if err := api.DB.Create(&categorie).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la catégorie"})
		return
	}

	invaliderCacheDashboard()
	c.JSON(http.StatusCreated, categorie)
}
