package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// EquipementAPI représente l'API des équipements inventoriés
type EquipementAPI struct {
	DB *gorm.DB
}

// NewEquipementAPI crée une nouvelle instance d'EquipementAPI
func NewEquipementAPI(db *gorm.DB) *EquipementAPI {
	return &EquipementAPI{DB: db}
}

// filtresEquipements porte les critères de la liste d'équipements.
// Les filtres scalaires se combinent en ET ; la recherche libre est un OU
// insensible à la casse sur une dizaine de champs texte.
type filtresEquipements struct {
	EtablissementID string
	CategorieID     string
	FabricantID     string
	StatutID        string
	Recherche       string
}

func filtresDepuisRequete(c *gin.Context) filtresEquipements {
	return filtresEquipements{
		EtablissementID: c.Query("etablissementId"),
		CategorieID:     c.Query("categorieId"),
		FabricantID:     c.Query("fabricantId"),
		StatutID:        c.Query("statutId"),
		Recherche:       c.Query("search"),
	}
}

// construireRequeteEquipements assemble la requête filtrée et triée commune
// à la liste JSON et aux exports
func construireRequeteEquipements(db *gorm.DB, filtres filtresEquipements) *gorm.DB {
	query := db.Model(&models.Equipement{}).
		Joins("JOIN modeles ON modeles.id = equipements.modele_id").
		Joins("JOIN fabricants ON fabricants.id = modeles.fabricant_id").
		Joins("JOIN categories ON categories.id = modeles.categorie_id").
		Joins("JOIN etablissements ON etablissements.id = equipements.etablissement_id")

	// Filtres exacts, combinés en ET. Catégorie et fabricant se filtrent
	// à travers le modèle.
	if filtres.EtablissementID != "" {
		query = query.Where("equipements.etablissement_id = ?", filtres.EtablissementID)
	}
	if filtres.CategorieID != "" {
		query = query.Where("modeles.categorie_id = ?", filtres.CategorieID)
	}
	if filtres.FabricantID != "" {
		query = query.Where("modeles.fabricant_id = ?", filtres.FabricantID)
	}
	if filtres.StatutID != "" {
		query = query.Where("equipements.statut_id = ?", filtres.StatutID)
	}

	// Recherche libre : OU sur les champs texte de l'équipement, le nom du
	// modèle et le nom du fabricant. LOWER + LIKE plutôt qu'ILIKE pour que
	// la même requête serve PostgreSQL et sqlite.
	if filtres.Recherche != "" {
		motif := "%" + strings.ToLower(filtres.Recherche) + "%"
		query = query.Where(`(
			LOWER(equipements.nom) LIKE ?
			OR LOWER(equipements.asset_tag) LIKE ?
			OR LOWER(equipements.serial) LIKE ?
			OR LOWER(equipements.ip) LIKE ?
			OR LOWER(equipements.hostname) LIKE ?
			OR LOWER(equipements.mac) LIKE ?
			OR LOWER(equipements.notes) LIKE ?
			OR LOWER(equipements.commentaire) LIKE ?
			OR LOWER(modeles.nom) LIKE ?
			OR LOWER(fabricants.nom) LIKE ?)`,
			motif, motif, motif, motif, motif, motif, motif, motif, motif, motif)
	}

	return query.Order("etablissements.nom ASC, categories.nom ASC, equipements.nom ASC")
}

// GetEquipements retourne les équipements filtrés, avec toutes leurs relations
func (api *EquipementAPI) GetEquipements(c *gin.Context) {
	equipements := make([]models.Equipement, 0)
	err := construireRequeteEquipements(api.DB, filtresDepuisRequete(c)).
		Preload("Modele.Fabricant").
		Preload("Modele.Categorie").
		Preload("Etablissement").
		Preload("Localisation").
		Preload("Statut").
		Find(&equipements).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des équipements"})
		return
	}

	c.JSON(http.StatusOK, equipements)
}

// createEquipementInput porte les champs de création d'un équipement.
// Dates et prix arrivent en texte et sont convertis ici.
type createEquipementInput struct {
	AssetTag        string `json:"assetTag"`
	Serial          string `json:"serial"`
	Nom             string `json:"nom"`
	ModeleID        uint   `json:"modeleId"`
	EtablissementID uint   `json:"etablissementId"`
	LocalisationID  *uint  `json:"localisationId"`
	StatutID        uint   `json:"statutId"`
	IP              string `json:"ip"`
	MAC             string `json:"mac"`
	Reseau          string `json:"reseau"`
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	VersionOS       string `json:"versionOs"`
	DateAchat       string `json:"dateAchat"`
	DateGarantie    string `json:"dateGarantie"`
	Prix            string `json:"prix"`
	Fournisseur     string `json:"fournisseur"`
	Facture         string `json:"facture"`
	Notes           string `json:"notes"`
	Commentaire     string `json:"commentaire"`
}

// CreateEquipement crée un équipement puis trace une ligne d'historique
// CREATE avec l'instantané complet. L'écriture d'historique est en
// meilleure-effort : son échec est journalisé, pas annulé.
func (api *EquipementAPI) CreateEquipement(c *gin.Context) {
	var input createEquipementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	dateAchat, err := parseDate(input.DateAchat)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dateGarantie, err := parseDate(input.DateGarantie)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prix, err := parsePrix(input.Prix)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	equipement := models.Equipement{
		AssetTag:        input.AssetTag,
		Serial:          input.Serial,
		Nom:             input.Nom,
		ModeleID:        input.ModeleID,
		EtablissementID: input.EtablissementID,
		LocalisationID:  input.LocalisationID, // absent = null, jamais de ligne sentinelle
		StatutID:        input.StatutID,
		IP:              input.IP,
		MAC:             input.MAC,
		Reseau:          input.Reseau,
		Hostname:        input.Hostname,
		OS:              input.OS,
		VersionOS:       input.VersionOS,
		DateAchat:       dateAchat,
		DateGarantie:    dateGarantie,
		Prix:            prix,
		Fournisseur:     input.Fournisseur,
		Facture:         input.Facture,
		Notes:           input.Notes,
		Commentaire:     input.Commentaire,
	}

	if err := api.DB.Create(&equipement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de l'équipement"})
		return
	}

	// Recharge avec les relations pour la réponse et l'instantané
	if err := api.DB.
		Preload("Modele.Fabricant").
		Preload("Modele.Categorie").
		Preload("Etablissement").
		Preload("Localisation").
		Preload("Statut").
		First(&equipement, equipement.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de l'équipement"})
		return
	}

	api.tracerCreation(&equipement)
	invaliderCacheDashboard()

	c.JSON(http.StatusCreated, equipement)
}

// tracerCreation enregistre la ligne d'historique CREATE d'un équipement
func (api *EquipementAPI) tracerCreation(equipement *models.Equipement) {
	instantane, err := json.Marshal(equipement)
	if err != nil {
		log.Error().Err(err).Uint("equipement_id", equipement.ID).
			Msg("échec de sérialisation de l'instantané d'historique")
		return
	}

	historique := models.HistoriqueEquipement{
		EquipementID:   equipement.ID,
		TypeAction:     models.ActionCreate,
		NouvelleValeur: string(instantane),
		Utilisateur:    "System",
		Commentaire:    "Équipement créé",
	}
	if err := api.DB.Create(&historique).Error; err != nil {
		log.Error().Err(err).Uint("equipement_id", equipement.ID).
			Msg("échec d'écriture de l'historique de création")
	}
}
