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

func routerLocalisations(db *gorm.DB) *gin.Engine {
	api := NewLocalisationAPI(db)
	router := gin.New()
	router.GET("/api/localisations", api.GetLocalisations)
	router.POST("/api/localisations", api.CreateLocalisation)
	return router
}

func TestGetLocalisations(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	ref := creerReferentiel(t, db)
	router := routerLocalisations(db)

	autre := models.Localisation{Nom: "Salle 203", EtablissementID: ref.Here.ID}
	require.NoError(t, db.Create(&autre).Error)

	localisationID := ref.SalleServeurs.ID
	equipement := models.Equipement{
		AssetTag: "EQ-001", ModeleID: ref.SwitchAruba.ID,
		EtablissementID: ref.Varoquaux.ID, LocalisationID: &localisationID,
		StatutID: ref.Deploye.ID,
	}
	require.NoError(t, db.Create(&equipement).Error)

	w := executerRequete(t, router, http.MethodGet, "/api/localisations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lignes []struct {
		Nom           string                `json:"nom"`
		Etablissement *models.Etablissement `json:"etablissement"`
		Count         struct {
			Equipements int64 `json:"equipements"`
		} `json:"_count"`
	}
	decoderCorps(t, w, &lignes)
	require.Len(t, lignes, 2)

	// HERE avant VAROQUAUX
	assert.Equal(t, "Salle 203", lignes[0].Nom)
	require.NotNil(t, lignes[0].Etablissement)
	assert.Equal(t, "HERE", lignes[0].Etablissement.Nom)
	assert.Zero(t, lignes[0].Count.Equipements)

	assert.Equal(t, "Salle Serveurs", lignes[1].Nom)
	assert.EqualValues(t, 1, lignes[1].Count.Equipements)

	// Filtre par établissement
	chemin := "/api/localisations?etablissementId=" + strconv.Itoa(int(ref.Here.ID))
	w = executerRequete(t, router, http.MethodGet, chemin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decoderCorps(t, w, &lignes)
	require.Len(t, lignes, 1)
	assert.Equal(t, "Salle 203", lignes[0].Nom)
}

func TestCreateLocalisation(t *testing.T) {
	db := ouvrirBaseDeTest(t)
	ref := creerReferentiel(t, db)
	router := routerLocalisations(db)

	w := executerRequete(t, router, http.MethodPost, "/api/localisations", gin.H{
		"nom":             "Baie Étage 1",
		"batiment":        "B",
		"etage":           "1er",
		"salle":           "105",
		"etablissementId": ref.Varoquaux.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reponse models.Localisation
	decoderCorps(t, w, &reponse)
	assert.Equal(t, "Baie Étage 1", reponse.Nom)
	require.NotNil(t, reponse.Etablissement)
	assert.Equal(t, "VAROQUAUX", reponse.Etablissement.Nom)
}
