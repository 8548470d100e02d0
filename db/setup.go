package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/huddle-dev/huddle/internal/models"
)

// Connect opens a postgres connection. TranslateError is enabled so
// unique-index violations come back as gorm.ErrDuplicatedKey, which the
// engines reclassify as a domain conflict.
func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Contact{},
		&models.Project{},
		&models.ProjectMember{},
	}

	migrator := conn.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := conn.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
