package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backend_inventaire/models"
)

// SeedAPI représente l'API de réinitialisation du jeu de données
type SeedAPI struct {
	DB *gorm.DB
}

// NewSeedAPI crée une nouvelle instance de SeedAPI
func NewSeedAPI(db *gorm.DB) *SeedAPI {
	return &SeedAPI{DB: db}
}

// Seed purge toutes les tables puis recrée le jeu de données de référence
// dans une seule transaction. L'opération est répétable à l'identique.
func (api *SeedAPI) Seed(c *gin.Context) {
	var resultat gin.H

	err := api.DB.Transaction(func(tx *gorm.DB) error {
		// Purge dans l'ordre des dépendances, enfants d'abord
		purge := []interface{}{
			&models.HistoriqueEquipement{},
			&models.Maintenance{},
			&models.Equipement{},
			&models.Supervision{},
			&models.Localisation{},
			&models.Etablissement{},
			&models.Modele{},
			&models.Statut{},
			&models.Categorie{},
			&models.Fabricant{},
		}
		for _, m := range purge {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
				return err
			}
		}

		categories := []models.Categorie{
			{Nom: "Serveurs", Icone: "Server", Description: "Serveurs physiques et virtuels"},
			{Nom: "Réseau - Switch", Icone: "Router", Description: "Switchs réseau et équipements actifs"},
			{Nom: "WiFi", Icone: "Wifi", Description: "Bornes WiFi et contrôleurs"},
			{Nom: "UPS", Icone: "Battery", Description: "Onduleurs et alimentations secourues"},
			{Nom: "Divers", Icone: "Package", Description: "Équipements divers et non classifiés"},
			{Nom: "Stockage", Icone: "HardDrive", Description: "NAS, SAN et stockage"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		serveurs, switches, wifi, ups, divers := categories[0], categories[1], categories[2], categories[3], categories[4]

		fabricants := []models.Fabricant{
			{Nom: "Dell", URL: "https://www.dell.com"},
			{Nom: "Aruba", URL: "https://www.arubanetworks.com"},
			{Nom: "Microsoft", URL: "https://www.microsoft.com"},
			{Nom: "QNAP", URL: "https://www.qnap.com"},
			{Nom: "VMware", URL: "https://www.vmware.com"},
			{Nom: "Allied Telesis", URL: "https://www.alliedtelesis.com"},
			{Nom: "Cisco", URL: "https://www.cisco.com"},
			{Nom: "Eaton", URL: "https://www.eaton.com"},
			{Nom: "Debian", URL: "https://www.debian.org"},
			{Nom: "Ubuntu", URL: "https://www.ubuntu.com"},
			{Nom: "HPE", URL: "https://www.hpe.com"},
		}
		if err := tx.Create(&fabricants).Error; err != nil {
			return err
		}
		dell, aruba, allied := fabricants[0], fabricants[1], fabricants[5]
		cisco, eaton, hpe := fabricants[6], fabricants[7], fabricants[10]

		statuts := []models.Statut{
			{Nom: "Déployé", Type: "deployable", Couleur: "#22c55e", Description: "Équipement en service et fonctionnel"},
			{Nom: "En attente", Type: "pending", Couleur: "#f59e0b", Description: "Équipement en attente de déploiement"},
			{Nom: "En maintenance", Type: "maintenance", Couleur: "#3b82f6", Description: "Équipement en cours de maintenance"},
			{Nom: "Archivé", Type: "archived", Couleur: "#6b7280", Description: "Équipement hors service"},
		}
		if err := tx.Create(&statuts).Error; err != nil {
			return err
		}
		deploye := statuts[0]

		modeles := []models.Modele{
			// Switchs
			{Nom: "GS924MX", Numero: "GS924MX", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba GS924MX"},
			{Nom: "x510L-28GT", Numero: "x510L-28GT", FabricantID: allied.ID, CategorieID: switches.ID, Description: "Switch Allied Telesis x510L-28GT"},
			{Nom: "x230-10GP", Numero: "x230-10GP", FabricantID: allied.ID, CategorieID: switches.ID, Description: "Switch Allied Telesis x230-10GP"},
			{Nom: "GS980MX/28PSm", Numero: "GS980MX/28PSm", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba GS980MX/28PSm PoE"},
			{Nom: "GS970M/10", Numero: "GS970M/10", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba GS970M/10"},
			{Nom: "GS948MX", Numero: "GS948MX", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba GS948MX"},
			{Nom: "GS948MPX", Numero: "GS948MPX", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba GS948MPX"},
			{Nom: "GS924MPX", Numero: "GS924MPX", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba GS924MPX"},
			{Nom: "x930-28GSTX", Numero: "x930-28GSTX", FabricantID: allied.ID, CategorieID: switches.ID, Description: "Switch Allied Telesis x930-28GSTX"},
			{Nom: "FlexNetwork 5520-24G-SFP-4SFPP HI", Numero: "5520-24G-SFP-4SFPP HI", FabricantID: allied.ID, CategorieID: switches.ID, Description: "Switch Allied Telesis FlexNetwork 5520-24G-SFP-4SFPP HI"},
			{Nom: "FlexNetwork 5140-48G-PoE+-4SFP+ EI", Numero: "5140-48G-PoE+-4SFP+ EI", FabricantID: allied.ID, CategorieID: switches.ID, Description: "Switch Allied Telesis FlexNetwork 5140-48G-PoE+-4SFP+ EI"},
			{Nom: "FlexNetwork 5140-24G-PoE+-4SFP+ EI", Numero: "5140-24G-PoE+-4SFP+ EI", FabricantID: allied.ID, CategorieID: switches.ID, Description: "Switch Allied Telesis FlexNetwork 5140-24G-PoE+-4SFP+ EI"},
			{Nom: "Aruba 2930F-8G-PoE+-2SFP+", Numero: "2930F-8G-PoE+-2SFP+", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba 2930F-8G-PoE+-2SFP+"},
			{Nom: "Aruba 2930F-48G-PoE+-4SFP+", Numero: "2930F-48G-PoE+-4SFP+", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba 2930F-48G-PoE+-4SFP+"},
			{Nom: "Aruba 2930F-48G-4SFP+", Numero: "2930F-48G-4SFP+", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba 2930F-48G-4SFP+"},
			{Nom: "Aruba 2930F-24G-PoE+-4SFP+", Numero: "2930F-24G-PoE+-4SFP+", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba 2930F-24G-PoE+-4SFP+"},
			{Nom: "Aruba 2930F-24G-4SFP+", Numero: "2930F-24G-4SFP+", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba 2930F-24G-4SFP+"},
			{Nom: "Aruba 2530-24G-PoE+", Numero: "2530-24G-PoE+", FabricantID: aruba.ID, CategorieID: switches.ID, Description: "Switch Aruba 2530-24G-PoE+"},
			// Onduleurs
			{Nom: "9SX6KIRT", Numero: "9SX6KIRT", FabricantID: eaton.ID, CategorieID: ups.ID, Description: "Onduleur Eaton 9SX6KIRT"},
			{Nom: "9PX11KiRTNBP31", Numero: "9PX11KiRTNBP31", FabricantID: eaton.ID, CategorieID: ups.ID, Description: "Onduleur Eaton 9PX11KiRTNBP31"},
			{Nom: "9PX11KiRTNBP", Numero: "9PX11KiRTNBP", FabricantID: eaton.ID, CategorieID: ups.ID, Description: "Onduleur Eaton 9PX11KiRTNBP"},
			{Nom: "5PX3000IRT2U", Numero: "5PX3000IRT2U", FabricantID: eaton.ID, CategorieID: ups.ID, Description: "Onduleur Eaton 5PX3000IRT2U"},
			// WiFi
			{Nom: "Aironet 1702I-E-K9", Numero: "1702I-E-K9", FabricantID: cisco.ID, CategorieID: wifi.ID, Description: "Borne WiFi Cisco Aironet 1702I-E-K9"},
			// Serveurs
			{Nom: "PowerEdge R750xs", Numero: "R750xs", FabricantID: dell.ID, CategorieID: serveurs.ID, Description: "Serveur Dell PowerEdge R750xs"},
			// Divers
			{Nom: "divers", Numero: "", FabricantID: hpe.ID, CategorieID: divers.ID, Description: "Équipements divers non classifiés"},
		}
		if err := tx.Create(&modeles).Error; err != nil {
			return err
		}

		etablissements := []models.Etablissement{
			{Nom: "VAROQUAUX", UAI: chaineNullable("0540044E"), Adresse: chaineNullable("1 Rue de l'École"), Telephone: chaineNullable("03 20 00 00 01"), Email: chaineNullable("contact@varoquaux.edu")},
			{Nom: "MARQUETTE", UAI: chaineNullable("0540058V"), Adresse: chaineNullable("2 Rue du Collège"), Telephone: chaineNullable("03 20 00 00 02"), Email: chaineNullable("contact@marquette.edu")},
			{Nom: "HERE", UAI: chaineNullable("0542262R"), Adresse: chaineNullable("3 Rue du Lycée"), Telephone: chaineNullable("03 20 00 00 03"), Email: chaineNullable("contact@here.edu")},
			{Nom: "POINCARE", UAI: chaineNullable("0540038Y"), Adresse: chaineNullable("4 Avenue Henri Poincaré"), Telephone: chaineNullable("03 20 00 00 04"), Email: chaineNullable("contact@poincare.edu")},
		}
		if err := tx.Create(&etablissements).Error; err != nil {
			return err
		}
		varoquaux, marquette, here, poincare := etablissements[0], etablissements[1], etablissements[2], etablissements[3]

		localisations := []models.Localisation{
			{Nom: "Salle Serveurs", Batiment: "A", Etage: "RDC", Salle: "001", EtablissementID: varoquaux.ID},
			{Nom: "Baie Réseau Principale", Batiment: "B", Etage: "1er", Salle: "101", EtablissementID: varoquaux.ID},
			{Nom: "Local Technique", Batiment: "A", Etage: "RDC", Salle: "002", EtablissementID: marquette.ID},
			{Nom: "Salle 203", Batiment: "C", Etage: "2ème", Salle: "203", EtablissementID: here.ID},
			{Nom: "Baie Étage 1", Batiment: "B", Etage: "1er", Salle: "105", EtablissementID: poincare.ID},
		}
		if err := tx.Create(&localisations).Error; err != nil {
			return err
		}

		equipements := []models.Equipement{
			{
				AssetTag: "EQ-001", Serial: "DL-R750-001", Nom: "Serveur Principal VAROQUAUX",
				ModeleID: modeles[23].ID, EtablissementID: varoquaux.ID, LocalisationID: &localisations[0].ID, StatutID: deploye.ID,
				IP: "172.17.1.7", MAC: "00:11:22:33:44:55", Reseau: "PEDA", Hostname: "SRV-MAIN-VARO",
				OS: "Windows Server", VersionOS: "2022",
				DateAchat: dateSeed(2023, time.January, 15), DateGarantie: dateSeed(2026, time.January, 15),
				Prix: prixSeed("4500.00"), Fournisseur: "Dell France",
				Notes: "Serveur principal pour les applications pédagogiques",
			},
			{
				AssetTag: "EQ-002", Serial: "AR-924MX-001", Nom: "Switch Principal VAROQUAUX",
				ModeleID: modeles[0].ID, EtablissementID: varoquaux.ID, LocalisationID: &localisations[1].ID, StatutID: deploye.ID,
				IP: "192.168.1.1", MAC: "AA:BB:CC:DD:EE:01", Reseau: "MGMT", Hostname: "SW-MAIN-VARO",
				OS: "ArubaOS-CX", VersionOS: "10.09",
				DateAchat: dateSeed(2023, time.March, 20), DateGarantie: dateSeed(2026, time.March, 20),
				Prix: prixSeed("2800.00"), Fournisseur: "Aruba Networks",
				Notes: "Switch fédérateur principal",
			},
			{
				AssetTag: "EQ-003", Serial: "AT-5140-001", Nom: "Switch PoE MARQUETTE",
				ModeleID: modeles[10].ID, EtablissementID: marquette.ID, LocalisationID: &localisations[2].ID, StatutID: deploye.ID,
				IP: "192.168.2.1", MAC: "AA:BB:CC:DD:EE:02", Reseau: "MGMT", Hostname: "SW-POE-MARQ",
				OS: "AlliedWare Plus", VersionOS: "5.4.8",
				DateAchat: dateSeed(2023, time.June, 10), DateGarantie: dateSeed(2026, time.June, 10),
				Prix: prixSeed("3200.00"), Fournisseur: "Allied Telesis",
				Notes: "Switch avec PoE pour les bornes WiFi",
			},
			{
				AssetTag: "EQ-004", Serial: "CISCO-1702-001", Nom: "Borne WiFi Salle 203",
				ModeleID: modeles[22].ID, EtablissementID: here.ID, LocalisationID: &localisations[3].ID, StatutID: deploye.ID,
				IP: "172.17.50.10", MAC: "00:AA:CC:11:22:33", Reseau: "PEDA", Hostname: "AP-203-HERE",
				OS: "Cisco IOS", VersionOS: "15.3(3)JAB",
				DateAchat: dateSeed(2023, time.August, 15), DateGarantie: dateSeed(2026, time.August, 15),
				Prix: prixSeed("650.00"), Fournisseur: "Cisco Systems",
				Notes: "Borne WiFi pour la salle 203",
			},
			{
				AssetTag: "EQ-005", Serial: "EATON-9SX-001", Nom: "Onduleur Serveurs VAROQUAUX",
				ModeleID: modeles[18].ID, EtablissementID: varoquaux.ID, LocalisationID: &localisations[0].ID, StatutID: deploye.ID,
				IP: "192.168.1.254", MAC: "BB:CC:DD:EE:FF:01", Reseau: "MGMT", Hostname: "UPS-SRV-VARO",
				OS: "Eaton Intelligent Power Manager", VersionOS: "1.7",
				DateAchat: dateSeed(2023, time.February, 28), DateGarantie: dateSeed(2026, time.February, 28),
				Prix: prixSeed("1800.00"), Fournisseur: "Eaton France",
				Notes: "Onduleur pour les serveurs principaux",
			},
			{
				AssetTag: "EQ-006", Serial: "AR-2930F-001", Nom: "Switch Étage 1 POINCARE",
				ModeleID: modeles[15].ID, EtablissementID: poincare.ID, LocalisationID: &localisations[4].ID, StatutID: deploye.ID,
				IP: "192.168.4.10", MAC: "CC:DD:EE:FF:AA:01", Reseau: "MGMT", Hostname: "SW-ET1-POIN",
				OS: "ArubaOS-Switch", VersionOS: "16.10",
				DateAchat: dateSeed(2023, time.September, 20), DateGarantie: dateSeed(2026, time.September, 20),
				Prix: prixSeed("1500.00"), Fournisseur: "Aruba Networks",
				Notes: "Switch d'étage avec PoE",
			},
			{
				AssetTag: "EQ-007", Serial: "EATON-5PX-001", Nom: "Onduleur Réseau MARQUETTE",
				ModeleID: modeles[21].ID, EtablissementID: marquette.ID, LocalisationID: &localisations[2].ID, StatutID: deploye.ID,
				IP: "192.168.2.254", MAC: "DD:EE:FF:AA:BB:01", Reseau: "MGMT", Hostname: "UPS-RES-MARQ",
				OS: "Eaton Intelligent Power Protector", VersionOS: "2.5",
				DateAchat: dateSeed(2023, time.July, 10), DateGarantie: dateSeed(2026, time.July, 10),
				Prix: prixSeed("1200.00"), Fournisseur: "Eaton France",
				Notes: "Onduleur pour équipements réseau",
			},
		}
		if err := tx.Create(&equipements).Error; err != nil {
			return err
		}

		supervisions := []models.Supervision{
			{EtablissementID: varoquaux.ID, SwitchFederateur: 3, SwitchExtremite: 28, BornesWifi: 61, GtcGtb: 10, ServeursPhysiques: 3, NbVm: 8, NbPostes: 430, Commentaire: "Supervision complète VAROQUAUX"},
			{EtablissementID: marquette.ID, SwitchFederateur: 4, SwitchExtremite: 38, BornesWifi: 70, GtcGtb: 12, ServeursPhysiques: 4, NbVm: 10, NbPostes: 500, Commentaire: "Supervision complète MARQUETTE"},
			{EtablissementID: here.ID, SwitchFederateur: 3, SwitchExtremite: 42, BornesWifi: 80, GtcGtb: 8, ServeursPhysiques: 3, NbVm: 7, NbPostes: 240, Commentaire: "Supervision complète HERE"},
			{EtablissementID: poincare.ID, SwitchFederateur: 3, SwitchExtremite: 36, BornesWifi: 95, GtcGtb: 9, ServeursPhysiques: 2, NbVm: 6, NbPostes: 320, Commentaire: "Supervision complète POINCARE"},
		}
		if err := tx.Create(&supervisions).Error; err != nil {
			return err
		}

		parCategorie := make(map[uint]int)
		for _, m := range modeles {
			parCategorie[m.CategorieID]++
		}

		resultat = gin.H{
			"message": "Base réinitialisée avec le jeu de données de référence",
			"count": gin.H{
				"fabricants":     len(fabricants),
				"categories":     len(categories),
				"modeles":        len(modeles),
				"statuts":        len(statuts),
				"etablissements": len(etablissements),
				"localisations":  len(localisations),
				"equipements":    len(equipements),
				"supervisions":   len(supervisions),
			},
			"models": gin.H{
				"switches": parCategorie[switches.ID],
				"ups":      parCategorie[ups.ID],
				"wifi":     parCategorie[wifi.ID],
				"servers":  parCategorie[serveurs.ID],
				"divers":   parCategorie[divers.ID],
			},
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("échec de la réinitialisation du jeu de données")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la réinitialisation de la base"})
		return
	}

	// Les agrégats en cache ne reflètent plus la base
	invaliderCacheDashboard()

	c.JSON(http.StatusOK, resultat)
}

func dateSeed(annee int, mois time.Month, jour int) *time.Time {
	t := time.Date(annee, mois, jour, 0, 0, 0, 0, time.UTC)
	return &t
}

func prixSeed(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
