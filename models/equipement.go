package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Modele représente une référence catalogue (marque + modèle)
type Modele struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Nom         string `json:"nom" gorm:"not null;type:varchar(150)"`
	Numero      string `json:"numero" gorm:"type:varchar(100)"` // Référence constructeur
	Description string `json:"description" gorm:"type:text"`
	Specs       string `json:"specs" gorm:"type:text"` // Caractéristiques techniques en texte libre

	FabricantID uint       `json:"fabricantId" gorm:"not null;index"`
	Fabricant   *Fabricant `json:"fabricant,omitempty" gorm:"foreignKey:FabricantID;constraint:OnDelete:RESTRICT"`

	CategorieID uint       `json:"categorieId" gorm:"not null;index"`
	Categorie   *Categorie `json:"categorie,omitempty" gorm:"foreignKey:CategorieID;constraint:OnDelete:RESTRICT"`

	// Relations
	Equipements []Equipement `json:"equipements,omitempty" gorm:"foreignKey:ModeleID"`
}

// TableName fixe le nom de la table pour Modele
func (Modele) TableName() string {
	return "modeles"
}

// Equipement représente un actif physique inventorié
type Equipement struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Identification
	AssetTag string `json:"assetTag" gorm:"type:varchar(50);index"` // Étiquette d'inventaire
	Serial   string `json:"serial" gorm:"type:varchar(100)"`
	Nom      string `json:"nom" gorm:"type:varchar(150)"`

	// Rattachements
	ModeleID uint    `json:"modeleId" gorm:"not null;index"`
	Modele   *Modele `json:"modele,omitempty" gorm:"foreignKey:ModeleID;constraint:OnDelete:RESTRICT"`

	EtablissementID uint           `json:"etablissementId" gorm:"not null;index"`
	Etablissement   *Etablissement `json:"etablissement,omitempty" gorm:"foreignKey:EtablissementID;constraint:OnDelete:RESTRICT"`

	// La localisation est optionnelle : null = non localisé, jamais de ligne sentinelle
	LocalisationID *uint         `json:"localisationId" gorm:"index"`
	Localisation   *Localisation `json:"localisation,omitempty" gorm:"foreignKey:LocalisationID;constraint:OnDelete:RESTRICT"`

	StatutID uint    `json:"statutId" gorm:"not null;index"`
	Statut   *Statut `json:"statut,omitempty" gorm:"foreignKey:StatutID;constraint:OnDelete:RESTRICT"`

	// Réseau
	IP        string `json:"ip" gorm:"type:varchar(45)"`
	MAC       string `json:"mac" gorm:"type:varchar(20)"`
	Reseau    string `json:"reseau" gorm:"type:varchar(50)"` // PEDA, ADMIN, MGMT...
	Hostname  string `json:"hostname" gorm:"type:varchar(100)"`
	OS        string `json:"os" gorm:"type:varchar(100)"`
	VersionOS string `json:"versionOs" gorm:"type:varchar(50)"`

	// Achat et garantie
	DateAchat    *time.Time       `json:"dateAchat"`
	DateGarantie *time.Time       `json:"dateGarantie"`
	Prix         *decimal.Decimal `json:"prix" gorm:"type:decimal(10,2)"`
	Fournisseur  string           `json:"fournisseur" gorm:"type:varchar(100)"`
	Facture      string           `json:"facture" gorm:"type:varchar(100)"` // Référence de facture

	// Annotations
	Notes       string `json:"notes" gorm:"type:text"`
	Commentaire string `json:"commentaire" gorm:"type:text"`

	// Relations
	Historique []HistoriqueEquipement `json:"historique,omitempty" gorm:"foreignKey:EquipementID"`
}

// TableName fixe le nom de la table pour Equipement
func (Equipement) TableName() string {
	return "equipements"
}

// GarantieExpiree indique si la garantie est échue à la date donnée
func (e *Equipement) GarantieExpiree(ref time.Time) bool {
	return e.DateGarantie != nil && ref.After(*e.DateGarantie)
}

// Actions tracées dans l'historique d'un équipement
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// HistoriqueEquipement trace une action sur un équipement avec son instantané
type HistoriqueEquipement struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	EquipementID uint        `json:"equipementId" gorm:"not null;index"`
	Equipement   *Equipement `json:"equipement,omitempty" gorm:"foreignKey:EquipementID"`

	TypeAction     string `json:"typeAction" gorm:"not null;type:varchar(20)"` // CREATE, UPDATE, DELETE
	AncienneValeur string `json:"ancienneValeur" gorm:"type:text"`             // Instantané JSON avant action
	NouvelleValeur string `json:"nouvelleValeur" gorm:"type:text"`             // Instantané JSON après action
	Utilisateur    string `json:"utilisateur" gorm:"type:varchar(100)"`
	Commentaire    string `json:"commentaire" gorm:"type:text"`
}

// TableName fixe le nom de la table pour HistoriqueEquipement
func (HistoriqueEquipement) TableName() string {
	return "historique_equipements"
}

// Maintenance représente une intervention planifiée ou réalisée sur un équipement.
// Aucun endpoint ne l'expose encore ; la table est purgée par le reseed.
type Maintenance struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	EquipementID uint        `json:"equipementId" gorm:"not null;index"`
	Equipement   *Equipement `json:"equipement,omitempty" gorm:"foreignKey:EquipementID"`

	Description string     `json:"description" gorm:"type:text"`
	DateDebut   *time.Time `json:"dateDebut"`
	DateFin     *time.Time `json:"dateFin"`
	Commentaire string     `json:"commentaire" gorm:"type:text"`
}

// TableName fixe le nom de la table pour Maintenance
func (Maintenance) TableName() string {
	return "maintenances"
}
