package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"backend_inventaire/models"
)

func parcExemple() []models.Equipement {
	achat := time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC)
	prix := decimal.RequireFromString("2800.00")
	return []models.Equipement{
		{
			AssetTag: "EQ-002",
			Nom:      "Switch Principal VAROQUAUX",
			Serial:   "AR-924MX-001",
			IP:       "192.168.1.1",
			Hostname: "SW-MAIN-VARO",
			Modele: &models.Modele{
				Nom:       "GS924MX",
				Fabricant: &models.Fabricant{Nom: "Aruba"},
				Categorie: &models.Categorie{Nom: "Réseau - Switch"},
			},
			Etablissement: &models.Etablissement{Nom: "VAROQUAUX"},
			Localisation:  &models.Localisation{Nom: "Baie Réseau Principale", Batiment: "B"},
			Statut:        &models.Statut{Nom: "Déployé"},
			DateAchat:     &achat,
			Prix:          &prix,
		},
		{
			// Relations absentes : l'export doit rester robuste
			AssetTag: "EQ-099",
			Nom:      "Équipement orphelin",
		},
	}
}

func TestEquipementsCSV(t *testing.T) {
	contenu, err := NewExportService().EquipementsCSV(parcExemple())
	require.NoError(t, err)

	lignes, err := csv.NewReader(bytes.NewReader(contenu)).ReadAll()
	require.NoError(t, err)
	require.Len(t, lignes, 3)

	assert.Equal(t, colonnesExport, lignes[0])
	assert.Equal(t, "EQ-002", lignes[1][0])
	assert.Equal(t, "Aruba", lignes[1][2])
	assert.Equal(t, "Baie Réseau Principale - Bât. B", lignes[1][7])
	assert.Equal(t, "2023-03-20", lignes[1][12])
	assert.Equal(t, "2800.00", lignes[1][14])

	assert.Equal(t, "EQ-099", lignes[2][0])
	assert.Empty(t, lignes[2][2])
}

func TestEquipementsXLSX(t *testing.T) {
	contenu, err := NewExportService().EquipementsXLSX(parcExemple())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(contenu))
	require.NoError(t, err)
	defer f.Close()

	valeur, err := f.GetCellValue("Inventaire", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Asset Tag", valeur)

	valeur, err = f.GetCellValue("Inventaire", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Aruba", valeur)

	valeur, err = f.GetCellValue("Inventaire", "A3")
	require.NoError(t, err)
	assert.Equal(t, "EQ-099", valeur)
}

func TestEquipementsPDF(t *testing.T) {
	contenu, err := NewExportService().EquipementsPDF(parcExemple())
	require.NoError(t, err)

	require.NotEmpty(t, contenu)
	assert.True(t, bytes.HasPrefix(contenu, []byte("%PDF")), "le contenu doit être un document PDF")
}
