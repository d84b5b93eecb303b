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

func routerSeed(db *gorm.DB) *gin.Engine {
	api := NewSeedAPI(db)
	router := gin.New()
	router.POST("/api/seed", api.Seed)
	return router
}

type reponseSeed struct {
	Message string           `json:"message"`
	Count   map[string]int64 `json:"count"`
	Models  map[string]int64 `json:"models"`
}

func TestSeed(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	router := routerSeed(db)

	w := executerRequete(t, router, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reponse reponseSeed
	decoderCorps(t, w, &reponse)

	attendus := map[string]int64{
		"fabricants":     11,
		"categories":     6,
		"modeles":        25,
		"statuts":        4,
		"etablissements": 4,
		"localisations":  5,
		"equipements":    7,
		"supervisions":   4,
	}
	assert.Equal(t, attendus, reponse.Count)
	assert.Equal(t, map[string]int64{
		"switches": 18, "ups": 4, "wifi": 1, "servers": 1, "divers": 1,
	}, reponse.Models)

	// Les comptes annoncés correspondent à la base
	verifier := map[string]interface{}{
		"fabricants":     &models.Fabricant{},
		"categories":     &models.Categorie{},
		"modeles":        &models.Modele{},
		"statuts":        &models.Statut{},
		"etablissements": &models.Etablissement{},
		"localisations":  &models.Localisation{},
		"equipements":    &models.Equipement{},
		"supervisions":   &models.Supervision{},
	}
	for nom, modele := range verifier {
		var total int64
		require.NoError(t, db.Model(modele).Count(&total).Error)
		assert.Equal(t, attendus[nom], total, nom)
	}
}

func TestSeedRepetable(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	router := routerSeed(db)

	// Des données préexistantes doivent disparaître au reseed
	parasite := models.Fabricant{Nom: "Fabricant Parasite"}
	require.NoError(t, db.Create(&parasite).Error)

	w := executerRequete(t, router, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = executerRequete(t, router, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fabricants int64
	require.NoError(t, db.Model(&models.Fabricant{}).Count(&fabricants).Error)
	assert.EqualValues(t, 11, fabricants)

	var restes int64
	require.NoError(t, db.Unscoped().Model(&models.Fabricant{}).
		Where("nom = ?", "Fabricant Parasite").Count(&restes).Error)
	assert.Zero(t, restes, "la purge doit être physique, pas un soft delete")

	// Les rattachements du jeu de données restent cohérents après reseed
	var equipement models.Equipement
	require.NoError(t, db.Preload("Modele.Fabricant").Preload("Etablissement").
		Where("asset_tag = ?", "EQ-001").First(&equipement).Error)
	assert.Equal(t, "Serveur Principal VAROQUAUX", equipement.Nom)
	require.NotNil(t, equipement.Modele)
	assert.Equal(t, "PowerEdge R750xs", equipement.Modele.Nom)
	require.NotNil(t, equipement.Modele.Fabricant)
	assert.Equal(t, "Dell", equipement.Modele.Fabricant.Nom)
	require.NotNil(t, equipement.Etablissement)
	assert.Equal(t, "VAROQUAUX", equipement.Etablissement.Nom)
}
