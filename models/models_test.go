package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalisationEmplacement(t *testing.T) {
	tests := []struct {
		cas          string
		localisation Localisation
		attendu      string
	}{
		{
			"complet",
			Localisation{Nom: "Salle Serveurs", Batiment: "A", Etage: "RDC", Salle: "001"},
			"Salle Serveurs - Bât. A, RDC, salle 001",
		},
		{
			"sans salle",
			Localisation{Nom: "Baie Étage 1", Batiment: "B", Etage: "1er"},
			"Baie Étage 1 - Bât. B, 1er",
		},
		{
			"nom seul",
			Localisation{Nom: "Local Technique"},
			"Local Technique",
		},
	}
	for _, tt := range tests {
		t.Run(tt.cas, func(t *testing.T) {
			assert.Equal(t, tt.attendu, tt.localisation.Emplacement())
		})
	}
}

func TestSupervisionTotalActifs(t *testing.T) {
	s := Supervision{
		SwitchFederateur:  3,
		SwitchExtremite:   28,
		BornesWifi:        61,
		GtcGtb:            10,
		ServeursPhysiques: 3,
		NbVm:              8,
		NbPostes:          430,
	}
	assert.Equal(t, 543, s.TotalActifs())
	assert.Zero(t, (&Supervision{}).TotalActifs())
}

func TestEquipementGarantieExpiree(t *testing.T) {
	ref := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	avant := ref.AddDate(0, -1, 0)
	apres := ref.AddDate(0, 1, 0)

	assert.False(t, (&Equipement{}).GarantieExpiree(ref), "sans date de garantie, jamais expirée")
	assert.True(t, (&Equipement{DateGarantie: &avant}).GarantieExpiree(ref))
	assert.False(t, (&Equipement{DateGarantie: &apres}).GarantieExpiree(ref))
}

func TestStatutEstDeployable(t *testing.T) {
	assert.True(t, (&Statut{Type: "deployable"}).EstDeployable())
	assert.False(t, (&Statut{Type: "archived"}).EstDeployable())
	assert.False(t, (&Statut{}).EstDeployable())
}
