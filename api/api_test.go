package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_inventaire/models"
	"backend_inventaire/testutils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ouvrirBaseDeTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := testutils.SetupTestDB()
	require.NoError(t, err)
	return db
}

func executerRequete(t *testing.T, router *gin.Engine, methode, chemin string, corps interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var lecteur *bytes.Reader
	if corps != nil {
		donnees, err := json.Marshal(corps)
		require.NoError(t, err)
		lecteur = bytes.NewReader(donnees)
	} else {
		lecteur = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(methode, chemin, lecteur)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decoderCorps(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// referentielTest regroupe les entités de base créées pour les tests
type referentielTest struct {
	Aruba, Dell       models.Fabricant
	Switches, Serveur models.Categorie
	Deploye           models.Statut
	Varoquaux, Here   models.Etablissement
	SalleServeurs     models.Localisation
	SwitchAruba       models.Modele
	ServeurDell       models.Modele
}

func creerReferentiel(t *testing.T, db *gorm.DB) referentielTest {
	t.Helper()
	ref := referentielTest{
		Aruba:    models.Fabricant{Nom: "Aruba"},
		Dell:     models.Fabricant{Nom: "Dell"},
		Switches: models.Categorie{Nom: "Réseau - Switch"},
		Serveur:  models.Categorie{Nom: "Serveurs"},
		Deploye:  models.Statut{Nom: "Déployé", Type: "deployable"},
	}
	require.NoError(t, db.Create(&ref.Aruba).Error)
	require.NoError(t, db.Create(&ref.Dell).Error)
	require.NoError(t, db.Create(&ref.Switches).Error)
	require.NoError(t, db.Create(&ref.Serveur).Error)
	require.NoError(t, db.Create(&ref.Deploye).Error)

	ref.Varoquaux = models.Etablissement{Nom: "VAROQUAUX"}
	ref.Here = models.Etablissement{Nom: "HERE"}
	require.NoError(t, db.Create(&ref.Varoquaux).Error)
	require.NoError(t, db.Create(&ref.Here).Error)

	ref.SalleServeurs = models.Localisation{Nom: "Salle Serveurs", EtablissementID: ref.Varoquaux.ID}
	require.NoError(t, db.Create(&ref.SalleServeurs).Error)

	ref.SwitchAruba = models.Modele{Nom: "GS924MX", FabricantID: ref.Aruba.ID, CategorieID: ref.Switches.ID}
	ref.ServeurDell = models.Modele{Nom: "PowerEdge R750xs", FabricantID: ref.Dell.ID, CategorieID: ref.Serveur.ID}
	require.NoError(t, db.Create(&ref.SwitchAruba).Error)
	require.NoError(t, db.Create(&ref.ServeurDell).Error)

	return ref
}
