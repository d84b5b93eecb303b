package models

import (
	"time"

	"gorm.io/gorm"
)

// Etablissement représente un site (lycée, collège) propriétaire d'équipements
type Etablissement struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Nom string `json:"nom" gorm:"not null;type:varchar(100)"`

	// Champs optionnels : un champ vidé via PATCH redevient null
	UAI         *string `json:"uai" gorm:"type:varchar(20)"` // Code UAI (ex-RNE) de l'établissement
	Adresse     *string `json:"adresse" gorm:"type:varchar(255)"`
	Telephone   *string `json:"telephone" gorm:"type:varchar(30)"`
	Email       *string `json:"email" gorm:"type:varchar(100)"`
	Commentaire *string `json:"commentaire" gorm:"type:text"`

	// Relations
	Equipements   []Equipement   `json:"equipements,omitempty" gorm:"foreignKey:EtablissementID"`
	Localisations []Localisation `json:"localisations,omitempty" gorm:"foreignKey:EtablissementID"`
	Supervisions  []Supervision  `json:"supervisions,omitempty" gorm:"foreignKey:EtablissementID"`
}

// TableName fixe le nom de la table pour Etablissement
func (Etablissement) TableName() string {
	return "etablissements"
}

// Localisation représente un emplacement physique dans un établissement
type Localisation struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Nom         string `json:"nom" gorm:"not null;type:varchar(100)"`
	Batiment    string `json:"batiment" gorm:"type:varchar(50)"`
	Etage       string `json:"etage" gorm:"type:varchar(50)"`
	Salle       string `json:"salle" gorm:"type:varchar(50)"`
	Commentaire string `json:"commentaire" gorm:"type:text"`

	EtablissementID uint           `json:"etablissementId" gorm:"not null;index"`
	Etablissement   *Etablissement `json:"etablissement,omitempty" gorm:"foreignKey:EtablissementID;constraint:OnDelete:RESTRICT"`

	// Relations
	Equipements []Equipement `json:"equipements,omitempty" gorm:"foreignKey:LocalisationID"`
}

// TableName fixe le nom de la table pour Localisation
func (Localisation) TableName() string {
	return "localisations"
}

// Emplacement retourne une désignation lisible (bâtiment / étage / salle)
func (l *Localisation) Emplacement() string {
	out := l.Nom
	if l.Batiment != "" {
		out += " - Bât. " + l.Batiment
	}
	if l.Etage != "" {
		out += ", " + l.Etage
	}
	if l.Salle != "" {
		out += ", salle " + l.Salle
	}
	return out
}

// Supervision représente le relevé des volumes supervisés pour un site
type Supervision struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	EtablissementID uint           `json:"etablissementId" gorm:"not null;index"`
	Etablissement   *Etablissement `json:"etablissement,omitempty" gorm:"foreignKey:EtablissementID;constraint:OnDelete:RESTRICT"`

	// Compteurs d'infrastructure
	SwitchFederateur  int `json:"switchFederateur" gorm:"default:0"`
	SwitchExtremite   int `json:"switchExtremite" gorm:"default:0"`
	BornesWifi        int `json:"bornesWifi" gorm:"default:0"`
	GtcGtb            int `json:"gtcGtb" gorm:"default:0"` // Automates GTC/GTB
	ServeursPhysiques int `json:"serveursPhysiques" gorm:"default:0"`
	NbVm              int `json:"nbVm" gorm:"default:0"`
	NbPostes          int `json:"nbPostes" gorm:"default:0"`

	Commentaire string `json:"commentaire" gorm:"type:text"`
}

// TableName fixe le nom de la table pour Supervision
func (Supervision) TableName() string {
	return "supervisions"
}

// TotalActifs retourne le nombre total d'éléments supervisés du relevé
func (s *Supervision) TotalActifs() int {
	return s.SwitchFederateur + s.SwitchExtremite + s.BornesWifi +
		s.GtcGtb + s.ServeursPhysiques + s.NbVm + s.NbPostes
}
