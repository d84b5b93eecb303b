package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

func routerSupervision(db *gorm.DB) *gin.Engine {
	api := NewSupervisionAPI(db)
	router := gin.New()
	router.GET("/api/supervision", api.GetSupervisions)
	router.POST("/api/supervision", api.CreateSupervision)
	return router
}

func TestGetSupervisions(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	ref := creerReferentiel(t, db)
	router := routerSupervision(db)

	releves := []models.Supervision{
		{EtablissementID: ref.Varoquaux.ID, NbPostes: 430},
		{EtablissementID: ref.Here.ID, NbPostes: 240},
	}
	require.NoError(t, db.Create(&releves).Error)

	w := executerRequete(t, router, http.MethodGet, "/api/supervision", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lignes []models.Supervision
	decoderCorps(t, w, &lignes)
	require.Len(t, lignes, 2)
	assert.Equal(t, 240, lignes[0].NbPostes, "HERE d'abord, par nom d'établissement")
	require.NotNil(t, lignes[0].Etablissement)
	assert.Equal(t, "HERE", lignes[0].Etablissement.Nom)

	chemin := "/api/supervision?etablissementId=" + strconv.Itoa(int(ref.Varoquaux.ID))
	w = executerRequete(t, router, http.MethodGet, chemin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decoderCorps(t, w, &lignes)
	require.Len(t, lignes, 1)
	assert.Equal(t, 430, lignes[0].NbPostes)
}

func TestCreateSupervision(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	ref := creerReferentiel(t, db)
	router := routerSupervision(db)

	w := executerRequete(t, router, http.MethodPost, "/api/supervision", gin.H{
		"etablissementId":  ref.Varoquaux.ID,
		"switchFederateur": 3,
		"bornesWifi":       61,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reponse models.Supervision
	decoderCorps(t, w, &reponse)
	assert.Equal(t, 3, reponse.SwitchFederateur)
	assert.Equal(t, 61, reponse.BornesWifi)
	assert.Zero(t, reponse.NbPostes, "les compteurs absents valent 0")
	require.NotNil(t, reponse.Etablissement)
	assert.Equal(t, "VAROQUAUX", reponse.Etablissement.Nom)
}
