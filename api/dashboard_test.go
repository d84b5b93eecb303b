package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func routerDashboard(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.GET("/api/dashboard", NewDashboardAPI(db).GetDashboard)
	router.POST("/api/seed", NewSeedAPI(db).Seed)
	router.POST("/api/equipements", NewEquipementAPI(db).CreateEquipement)
	return router
}

func TestGetDashboard(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	router := routerDashboard(db)

	w := executerRequete(t, router, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = executerRequete(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats dashboardStats
	decoderCorps(t, w, &stats)

	assert.EqualValues(t, 7, stats.Counts.Equipements)
	assert.EqualValues(t, 4, stats.Counts.Etablissements)
	assert.EqualValues(t, 25, stats.Counts.Modeles)
	assert.EqualValues(t, 11, stats.Counts.Fabricants)
	assert.EqualValues(t, 6, stats.Counts.Categories)
	assert.EqualValues(t, 4, stats.Counts.Statuts)
	assert.EqualValues(t, 5, stats.Counts.Localisations)
	assert.EqualValues(t, 4, stats.Counts.Supervisions)

	// Tous les équipements du jeu de données sont déployés : un seul groupe
	require.Len(t, stats.EquipementsParStatut, 1)
	assert.EqualValues(t, 7, stats.EquipementsParStatut[0].Count.StatutID)

	var totalParModele int64
	for _, groupe := range stats.EquipementsParModele {
		totalParModele += groupe.Count.ModeleID
	}
	assert.EqualValues(t, 7, totalParModele)

	// Totaux de supervision : somme des quatre relevés
	assert.EqualValues(t, 13, stats.SupervisionTotals.Sum.SwitchFederateur)
	assert.EqualValues(t, 144, stats.SupervisionTotals.Sum.SwitchExtremite)
	assert.EqualValues(t, 306, stats.SupervisionTotals.Sum.BornesWifi)
	assert.EqualValues(t, 1490, stats.SupervisionTotals.Sum.NbPostes)

	require.Len(t, stats.Categories, 6)
	parNom := make(map[string]int64, len(stats.Categories))
	for _, cat := range stats.Categories {
		parNom[cat.Nom] = cat.Count.Modeles
	}
	assert.EqualValues(t, 18, parNom["Réseau - Switch"])
	assert.EqualValues(t, 4, parNom["UPS"])
	assert.EqualValues(t, 0, parNom["Stockage"])

	assert.Len(t, stats.RecentEquipements, 5)
	for _, e := range stats.RecentEquipements {
		assert.NotNil(t, e.Modele, "les équipements récents portent leurs relations")
	}

	// 4500 + 2800 + 3200 + 650 + 1800 + 1500 + 1200
	require.NotNil(t, stats.ValueStats.Sum.Prix)
	assert.Equal(t, "15650", stats.ValueStats.Sum.Prix.String())
	require.NotNil(t, stats.ValueStats.Avg.Prix)
}

func TestGetDashboardApresMutation(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	router := routerDashboard(db)
	ref := creerReferentiel(t, db)

	w := executerRequete(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats dashboardStats
	decoderCorps(t, w, &stats)
	require.Zero(t, stats.Counts.Equipements)

	// Une création invalide l'agrégat : la lecture suivante la reflète
	w = executerRequete(t, router, http.MethodPost, "/api/equipements", gin.H{
		"assetTag":        "EQ-100",
		"modeleId":        ref.SwitchAruba.ID,
		"etablissementId": ref.Varoquaux.ID,
		"statutId":        ref.Deploye.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = executerRequete(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decoderCorps(t, w, &stats)
	assert.EqualValues(t, 1, stats.Counts.Equipements)
	require.Len(t, stats.EquipementsParStatut, 1)
	assert.EqualValues(t, ref.Deploye.ID, stats.EquipementsParStatut[0].StatutID)
}

func TestGetDashboardBaseVide(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	router := routerDashboard(db)

	w := executerRequete(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats dashboardStats
	decoderCorps(t, w, &stats)
	assert.Zero(t, stats.Counts.Equipements)
	assert.Empty(t, stats.EquipementsParStatut)
	assert.Empty(t, stats.RecentEquipements)
	assert.Zero(t, stats.SupervisionTotals.Sum.NbPostes)
	assert.Nil(t, stats.ValueStats.Sum.Prix)
}
