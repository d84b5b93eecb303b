package database

import (
	"database/sql"
	"fmt"
	"log"

	"backend_inventaire/config"
	"backend_inventaire/models"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CreateDatabaseIfNotExists crée la base de données si elle n'existe pas
func CreateDatabaseIfNotExists(cfg *config.Config) error {
	// Connexion à PostgreSQL sans cibler la base applicative (base postgres)
	adminDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.SSLMode)

	db, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return fmt.Errorf("impossible de se connecter à PostgreSQL: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("impossible de vérifier la connexion à PostgreSQL: %w", err)
	}

	// Vérifie si la base existe déjà
	var exists bool
	query := "SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = $1);"
	if err := db.QueryRow(query, cfg.Database.Name).Scan(&exists); err != nil {
		return fmt.Errorf("erreur lors de la vérification de la base de données: %w", err)
	}

	if exists {
		log.Printf("✅ La base de données '%s' existe déjà", cfg.Database.Name)
		return nil
	}

	createQuery := fmt.Sprintf("CREATE DATABASE %s;", cfg.Database.Name)
	if _, err := db.Exec(createQuery); err != nil {
		return fmt.Errorf("impossible de créer la base de données '%s': %w", cfg.Database.Name, err)
	}

	log.Printf("✅ Base de données '%s' créée", cfg.Database.Name)
	return nil
}

// Connect ouvre la connexion PostgreSQL, règle le pool et migre les modèles.
// Le handle est retourné à l'appelant (main) qui en possède le cycle de vie.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logMode := logger.Warn
	if cfg.App.Debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		// Les violations de contraintes remontent en gorm.ErrDuplicatedKey
		// et consorts, que les handlers traduisent en codes HTTP
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("impossible de se connecter à la base de données: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}

	// Pool de connexions
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	log.Println("✅ Connexion PostgreSQL établie")

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("erreur d'automigration: %w", err)
	}

	return db, nil
}

// AutoMigrate exécute l'automigration de tous les modèles, parents d'abord
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Référentiels sans dépendance
		&models.Fabricant{},
		&models.Categorie{},
		&models.Statut{},
		&models.Etablissement{},

		// Catalogue et emplacements
		&models.Modele{},
		&models.Localisation{},

		// Actifs et tables filles
		&models.Equipement{},
		&models.Supervision{},
		&models.HistoriqueEquipement{},
		&models.Maintenance{},
	)
	if err != nil {
		return err
	}

	log.Println("✅ Automigration des modèles effectuée")
	return nil
}
