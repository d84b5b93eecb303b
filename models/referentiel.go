package models

import (
	"time"

	"gorm.io/gorm"
)

// Fabricant représente un constructeur de matériel (Dell, Aruba, Eaton...)
type Fabricant struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Le nom est unique : l'outillage d'import s'appuie sur le conflit
	Nom         string `json:"nom" gorm:"not null;uniqueIndex;type:varchar(100)"`
	URL         string `json:"url" gorm:"type:varchar(255)"`
	Support     string `json:"support" gorm:"type:varchar(255)"` // Contact support (tél, mail, portail)
	Commentaire string `json:"commentaire" gorm:"type:text"`

	// Relations
	Modeles []Modele `json:"modeles,omitempty" gorm:"foreignKey:FabricantID"`
}

// TableName fixe le nom de la table pour Fabricant
func (Fabricant) TableName() string {
	return "fabricants"
}

// Categorie représente une famille d'équipements (Serveurs, WiFi, UPS...)
type Categorie struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Nom         string `json:"nom" gorm:"not null;type:varchar(100)"`
	Icone       string `json:"icone" gorm:"type:varchar(50)"` // Tag d'icône côté client (Server, Wifi, Battery...)
	Description string `json:"description" gorm:"type:text"`

	// Relations
	Modeles []Modele `json:"modeles,omitempty" gorm:"foreignKey:CategorieID"`
}

// TableName fixe le nom de la table pour Categorie
func (Categorie) TableName() string {
	return "categories"
}

// Statut représente l'état de cycle de vie d'un équipement
type Statut struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Nom         string `json:"nom" gorm:"not null;type:varchar(100)"`
	Type        string `json:"type" gorm:"type:varchar(50)"`    // deployable, pending, maintenance, archived
	Couleur     string `json:"couleur" gorm:"type:varchar(20)"` // Couleur hexadécimale affichée par le client
	Description string `json:"description" gorm:"type:text"`

	// Relations
	Equipements []Equipement `json:"equipements,omitempty" gorm:"foreignKey:StatutID"`
}

// TableName fixe le nom de la table pour Statut
func (Statut) TableName() string {
	return "statuts"
}

// EstDeployable indique si le statut correspond à du matériel en service
func (s *Statut) EstDeployable() bool {
	return s.Type == "deployable"
}
