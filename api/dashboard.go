package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"backend_inventaire/database"
	"backend_inventaire/models"
)

// DashboardAPI représente l'API du tableau de bord
type DashboardAPI struct {
	DB *gorm.DB
}

// NewDashboardAPI crée une nouvelle instance de DashboardAPI
func NewDashboardAPI(db *gorm.DB) *DashboardAPI {
	return &DashboardAPI{DB: db}
}

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

// invaliderCacheDashboard purge l'agrégat en cache. À appeler après toute
// mutation, sinon le tableau de bord peut rester en retard d'un TTL.
func invaliderCacheDashboard() {
	if err := database.CacheDel(dashboardCacheKey); err != nil {
		log.Warn().Err(err).Msg("échec d'invalidation du cache du tableau de bord")
	}
}

// dashboardStats est la réponse complète du tableau de bord
type dashboardStats struct {
	Counts               dashboardCounts        `json:"counts"`
	EquipementsParStatut []groupeParStatut      `json:"equipementsParStatut"`
	EquipementsParModele []groupeParModele      `json:"equipementsParModele"`
	Categories           []categorieAvecModeles `json:"categories"`
	SupervisionTotals    supervisionTotaux      `json:"supervisionTotals"`
	RecentEquipements    []models.Equipement    `json:"recentEquipements"`
	ValueStats           statistiquesValeur     `json:"valueStats"`
}

type dashboardCounts struct {
	Equipements    int64 `json:"equipements"`
	Etablissements int64 `json:"etablissements"`
	Modeles        int64 `json:"modeles"`
	Fabricants     int64 `json:"fabricants"`
	Categories     int64 `json:"categories"`
	Statuts        int64 `json:"statuts"`
	Localisations  int64 `json:"localisations"`
	Supervisions   int64 `json:"supervisions"`
}

type groupeParStatut struct {
	StatutID uint `json:"statutId" gorm:"column:statut_id"`
	Count    struct {
		StatutID int64 `json:"statutId"`
	} `json:"_count" gorm:"-"`
	N int64 `json:"-" gorm:"column:n"`
}

type groupeParModele struct {
	ModeleID uint `json:"modeleId" gorm:"column:modele_id"`
	Count    struct {
		ModeleID int64 `json:"modeleId"`
	} `json:"_count" gorm:"-"`
	N int64 `json:"-" gorm:"column:n"`
}

type categorieAvecModeles struct {
	models.Categorie
	Count struct {
		Modeles int64 `json:"modeles"`
	} `json:"_count"`
}

// supervisionTotaux agrège les compteurs de tous les relevés
type supervisionTotaux struct {
	Sum struct {
		SwitchFederateur  int64 `json:"switchFederateur" gorm:"column:switch_federateur"`
		SwitchExtremite   int64 `json:"switchExtremite" gorm:"column:switch_extremite"`
		BornesWifi        int64 `json:"bornesWifi" gorm:"column:bornes_wifi"`
		GtcGtb            int64 `json:"gtcGtb" gorm:"column:gtc_gtb"`
		ServeursPhysiques int64 `json:"serveursPhysiques" gorm:"column:serveurs_physiques"`
		NbVm              int64 `json:"nbVm" gorm:"column:nb_vm"`
		NbPostes          int64 `json:"nbPostes" gorm:"column:nb_postes"`
	} `json:"_sum"`
}

// statistiquesValeur porte la somme et la moyenne des prix d'achat renseignés
type statistiquesValeur struct {
	Sum struct {
		Prix *decimal.Decimal `json:"prix"`
	} `json:"_sum"`
	Avg struct {
		Prix *decimal.Decimal `json:"prix"`
	} `json:"_avg"`
}

// GetDashboard retourne les statistiques agrégées de l'inventaire.
// Les sous-requêtes indépendantes partent en parallèle ; le résultat
// complet est mis en cache Redis quelques secondes quand le cache est là.
func (api *DashboardAPI) GetDashboard(c *gin.Context) {
	var stats dashboardStats
	if err := database.CacheGetJSON(dashboardCacheKey, &stats); err == nil {
		c.JSON(http.StatusOK, stats)
		return
	}

	g, _ := errgroup.WithContext(c.Request.Context())

	g.Go(func() error { return api.DB.Model(&models.Equipement{}).Count(&stats.Counts.Equipements).Error })
	g.Go(func() error { return api.DB.Model(&models.Etablissement{}).Count(&stats.Counts.Etablissements).Error })
	g.Go(func() error { return api.DB.Model(&models.Modele{}).Count(&stats.Counts.Modeles).Error })
	g.Go(func() error { return api.DB.Model(&models.Fabricant{}).Count(&stats.Counts.Fabricants).Error })
	g.Go(func() error { return api.DB.Model(&models.Categorie{}).Count(&stats.Counts.Categories).Error })
	g.Go(func() error { return api.DB.Model(&models.Statut{}).Count(&stats.Counts.Statuts).Error })
	g.Go(func() error { return api.DB.Model(&models.Localisation{}).Count(&stats.Counts.Localisations).Error })
	g.Go(func() error { return api.DB.Model(&models.Supervision{}).Count(&stats.Counts.Supervisions).Error })

	g.Go(func() error {
		groupes := make([]groupeParStatut, 0)
		err := api.DB.Model(&models.Equipement{}).
			Select("statut_id, COUNT(*) AS n").
			Group("statut_id").
			Scan(&groupes).Error
		if err != nil {
			return err
		}
		for i := range groupes {
			groupes[i].Count.StatutID = groupes[i].N
		}
		stats.EquipementsParStatut = groupes
		return nil
	})

	g.Go(func() error {
		groupes := make([]groupeParModele, 0)
		err := api.DB.Model(&models.Equipement{}).
			Select("modele_id, COUNT(*) AS n").
			Group("modele_id").
			Scan(&groupes).Error
		if err != nil {
			return err
		}
		for i := range groupes {
			groupes[i].Count.ModeleID = groupes[i].N
		}
		stats.EquipementsParModele = groupes
		return nil
	})

	g.Go(func() error {
		var categories []models.Categorie
		if err := api.DB.Order("nom ASC").Find(&categories).Error; err != nil {
			return err
		}
		comptes, err := compteParClef(api.DB, &models.Modele{}, "categorie_id")
		if err != nil {
			return err
		}
		lignes := make([]categorieAvecModeles, 0, len(categories))
		for _, cat := range categories {
			ligne := categorieAvecModeles{Categorie: cat}
			ligne.Count.Modeles = comptes[cat.ID]
			lignes = append(lignes, ligne)
		}
		stats.Categories = lignes
		return nil
	})

	g.Go(func() error {
		return api.DB.Model(&models.Supervision{}).
			Select(`COALESCE(SUM(switch_federateur), 0) AS switch_federateur,
				COALESCE(SUM(switch_extremite), 0) AS switch_extremite,
				COALESCE(SUM(bornes_wifi), 0) AS bornes_wifi,
				COALESCE(SUM(gtc_gtb), 0) AS gtc_gtb,
				COALESCE(SUM(serveurs_physiques), 0) AS serveurs_physiques,
				COALESCE(SUM(nb_vm), 0) AS nb_vm,
				COALESCE(SUM(nb_postes), 0) AS nb_postes`).
			Scan(&stats.SupervisionTotals.Sum).Error
	})

	g.Go(func() error {
		equipements := make([]models.Equipement, 0, 5)
		err := api.DB.
			Preload("Modele.Fabricant").
			Preload("Modele.Categorie").
			Preload("Etablissement").
			Preload("Localisation").
			Preload("Statut").
			Order("created_at DESC").
			Limit(5).
			Find(&equipements).Error
		if err != nil {
			return err
		}
		stats.RecentEquipements = equipements
		return nil
	})

	g.Go(func() error {
		var valeurs struct {
			Somme   *decimal.Decimal `gorm:"column:somme"`
			Moyenne *decimal.Decimal `gorm:"column:moyenne"`
		}
		err := api.DB.Model(&models.Equipement{}).
			Select("SUM(prix) AS somme, AVG(prix) AS moyenne").
			Scan(&valeurs).Error
		if err != nil {
			return err
		}
		stats.ValueStats.Sum.Prix = valeurs.Somme
		stats.ValueStats.Avg.Prix = valeurs.Moyenne
		return nil
	})

	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du calcul des statistiques"})
		return
	}

	if err := database.CacheSetJSON(dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		log.Warn().Err(err).Msg("échec de mise en cache du tableau de bord")
	}

	c.JSON(http.StatusOK, stats)
}
