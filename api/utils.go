package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// chaineNullable normalise un champ optionnel : vide ou blanc devient null
func chaineNullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseDate convertit une date "AAAA-MM-JJ" en *time.Time, nil si vide
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("date invalide %q (format attendu AAAA-MM-JJ)", s)
	}
	return &t, nil
}

// parsePrix convertit un prix saisi en texte en décimal, nil si vide
func parsePrix(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("prix invalide %q", s)
	}
	return &d, nil
}

// compteParClef retourne, pour un modèle enfant, le nombre de lignes par
// valeur de clef étrangère (ex : nombre de modèles par fabricant_id)
func compteParClef(db *gorm.DB, model interface{}, clef string) (map[uint]int64, error) {
	var lignes []struct {
		Clef uint
		N    int64
	}
	err := db.Model(model).
		Select(clef + " AS clef, COUNT(*) AS n").
		Group(clef).
		Scan(&lignes).Error
	if err != nil {
		return nil, err
	}

	comptes := make(map[uint]int64, len(lignes))
	for _, l := range lignes {
		comptes[l.Clef] = l.N
	}
	return comptes, nil
}
