package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"backend_inventaire/api"
	"backend_inventaire/config"
	"backend_inventaire/database"
	"backend_inventaire/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Erreur de chargement de la configuration")
	}

	configurerJournalisation(cfg)

	if err := database.CreateDatabaseIfNotExists(cfg); err != nil {
		log.Fatal().Err(err).Msg("❌ Erreur de création de la base de données")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Erreur de connexion à la base de données")
	}

	if cfg.Redis.Enabled {
		if err := database.InitRedis(cfg); err != nil {
			log.Warn().Err(err).Msg("⚠️  Redis indisponible, l'application tourne sans cache")
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "version": cfg.App.Version})
	})

	enregistrerRoutes(router, db)

	srv := &http.Server{
		Addr:    cfg.App.Host + ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("🚀 Serveur d'inventaire démarré")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Erreur du serveur HTTP")
		}
	}()

	// Arrêt propre sur SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 Arrêt du serveur demandé")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("❌ Erreur lors de l'arrêt du serveur")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	if database.Redis != nil {
		database.Redis.Close()
	}
	log.Info().Msg("✅ Serveur arrêté")
}

// enregistrerRoutes câble toutes les routes de l'API
func enregistrerRoutes(router *gin.Engine, db *gorm.DB) {
	fabricants := api.NewFabricantAPI(db)
	categories := api.NewCategorieAPI(db)
	statuts := api.NewStatutAPI(db)
	modeles := api.NewModeleAPI(db)
	etablissements := api.NewEtablissementAPI(db)
	localisations := api.NewLocalisationAPI(db)
	supervisions := api.NewSupervisionAPI(db)
	equipements := api.NewEquipementAPI(db)
	dashboard := api.NewDashboardAPI(db)
	seed := api.NewSeedAPI(db)
	rapports := api.NewRapportAPI(db)

	groupe := router.Group("/api")
	{
		groupe.GET("/fabricants", fabricants.GetFabricants)
		groupe.POST("/fabricants", fabricants.CreateFabricant)

		groupe.GET("/categories", categories.GetCategories)
		groupe.POST("/categories", categories.CreateCategorie)

		groupe.GET("/statuts", statuts.GetStatuts)
		groupe.POST("/statuts", statuts.CreateStatut)

		groupe.GET("/modeles", modeles.GetModeles)
		groupe.POST("/modeles", modeles.CreateModele)

		groupe.GET("/etablissements", etablissements.GetEtablissements)
		groupe.POST("/etablissements", etablissements.CreateEtablissement)
		groupe.PATCH("/etablissements/:id", etablissements.UpdateEtablissement)

		groupe.GET("/localisations", localisations.GetLocalisations)
		groupe.POST("/localisations", localisations.CreateLocalisation)

		groupe.GET("/supervision", supervisions.GetSupervisions)
		groupe.POST("/supervision", supervisions.CreateSupervision)

		groupe.GET("/equipements", equipements.GetEquipements)
		groupe.POST("/equipements", equipements.CreateEquipement)

		groupe.GET("/dashboard", dashboard.GetDashboard)
		groupe.POST("/seed", seed.Seed)

		groupe.GET("/rapports/equipements", rapports.ExportEquipements)
	}
}

// configurerJournalisation règle zerolog selon la configuration
func configurerJournalisation(cfg *config.Config) {
	niveau, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		niveau = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(niveau)

	if cfg.Logging.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
