package database

import (
	"filetug/internal/domain/settings"
	"filetug/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Initialize opens the sqlite database and migrates the schema
func Initialize(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return nil, err
	}

	return db, nil
}

// SettingsRepository stores settings rows for one organization/application
// pair
type SettingsRepository struct {
	db           *gorm.DB
	organization string
	application  string
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB, organization, application string) *SettingsRepository {
	return &SettingsRepository{
		db:           db,
		organization: organization,
		application:  application,
	}
}

// Load returns every stored value for the scope
func (r *SettingsRepository) Load() (map[settings.Key]string, error) {
	var rows []models.Setting
	result := r.db.
		Where("organization = ? AND application = ?", r.organization, r.application).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	values := make(map[settings.Key]string, len(rows))
	for _, row := range rows {
		values[settings.Key(row.Key)] = row.Value
	}
	return values, nil
}

// Save inserts or replaces a single value
func (r *SettingsRepository) Save(key settings.Key, raw string) error {
	row := models.Setting{
		Organization: r.organization,
		Application:  r.application,
		Key:          string(key),
		Value:        raw,
	}

	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
