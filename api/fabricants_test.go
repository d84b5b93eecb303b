package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

func routerFabricants(db *gorm.DB) *gin.Engine {
	api := NewFabricantAPI(db)
	router := gin.New()
	router.GET("/api/fabricants", api.GetFabricants)
	router.POST("/api/fabricants", api.CreateFabricant)
	return router
}

func TestGetFabricants(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	ref := creerReferentiel(t, db)
	router := routerFabricants(db)

	// Un second modèle Aruba pour différencier les comptes
	modele := models.Modele{Nom: "GS948MX", FabricantID: ref.Aruba.ID, CategorieID: ref.Switches.ID}
	require.NoError(t, db.Create(&modele).Error)

	w := executerRequete(t, router, http.MethodGet, "/api/fabricants", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lignes []struct {
		Nom   string `json:"nom"`
		Count struct {
			Modeles int64 `json:"modeles"`
		} `json:"_count"`
	}
	decoderCorps(t, w, &lignes)
	require.Len(t, lignes, 2)

	assert.Equal(t, "Aruba", lignes[0].Nom)
	assert.EqualValues(t, 2, lignes[0].Count.Modeles)
	assert.Equal(t, "Dell", lignes[1].Nom)
	assert.EqualValues(t, 1, lignes[1].Count.Modeles)
}

func TestCreateFabricantDoublon(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	router := routerFabricants(db)

	w := executerRequete(t, router, http.MethodPost, "/api/fabricants", gin.H{"nom": "Eaton", "url": "https://www.eaton.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Le même nom, même entouré de blancs, est refusé
	w = executerRequete(t, router, http.MethodPost, "/api/fabricants", gin.H{"nom": "  Eaton "})
	assert.Equal(t, http.StatusConflict, w.Code)

	var corps map[string]string
	decoderCorps(t, w, &corps)
	assert.Equal(t, "Un fabricant portant ce nom existe déjà", corps["error"])

	var total int64
	require.NoError(t, db.Model(&models.Fabricant{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestCreateFabricantDoublonContrainte(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	router := routerFabricants(db)

	// Un fabricant supprimé en soft delete échappe à la pré-vérification
	// mais occupe toujours l'index unique : l'insertion elle-même doit
	// répondre 409, pas 500
	fabricant := models.Fabricant{Nom: "Eaton"}
	require.NoError(t, db.Create(&fabricant).Error)
	require.NoError(t, db.Delete(&fabricant).Error)

	w := executerRequete(t, router, http.MethodPost, "/api/fabricants", gin.H{"nom": "Eaton"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var corps map[string]string
	decoderCorps(t, w, &corps)
	assert.Equal(t, "Un fabricant portant ce nom existe déjà", corps["error"])
}
