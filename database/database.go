package database

import (
	"fmt"
	"log"

	"github.com/vedantlonkar23/loopspacenew/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Connection{},
		&models.Event{},
		&models.EventAttendee{},
		&models.EventVolunteer{},
		&models.EventWinner{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addSearchIndexes(db); err != nil {
		return fmt.Errorf("failed to add search indexes: %w", err)
	}

	return nil
}

// addSearchIndexes creates the fulltext indexes backing the search endpoints.
// Only MySQL supports MATCH ... AGAINST; other dialects fall back to the
// weighted LIKE scoring in the search controller.
func addSearchIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}

	indexes := []string{
		"CREATE FULLTEXT INDEX idx_users_search ON users(name, bio, location, organization_name)",
		"CREATE FULLTEXT INDEX idx_events_search ON events(name, description, location)",
		"CREATE FULLTEXT INDEX idx_posts_search ON posts(title, description)",
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			// Duplicate index errors show up on every restart; not fatal.
			log.Printf("Warning: could not create fulltext index: %v", err)
		}
	}

	return nil
}
