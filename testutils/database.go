package testutils

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend_inventaire/models"
)

// SetupTestDB crée une base sqlite en mémoire, isolée par test, avec le
// schéma complet. cache=shared garde la même base pour toutes les
// connexions du pool ; une seule connexion évite les verrous croisés.
func SetupTestDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Même traduction d'erreurs que la connexion de production
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("erreur d'ouverture de la base de test: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	err = db.AutoMigrate(
		&models.Fabricant{},
		&models.Categorie{},
		&models.Statut{},
		&models.Etablissement{},
		&models.Localisation{},
		&models.Supervision{},
		&models.Modele{},
		&models.Equipement{},
		&models.HistoriqueEquipement{},
		&models.Maintenance{},
	)
	if err != nil {
		return nil, fmt.Errorf("erreur de migration de la base de test: %w", err)
	}

	return db, nil
}
