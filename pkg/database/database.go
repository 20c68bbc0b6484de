package database

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/sirupsen/logrus"

	"vidshare/pkg/models"
)

var DB *gorm.DB

func Init(dialect, dsn string) {
	var err error
	DB, err = Open(dialect, dsn)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
}

// Open connects and runs migrations. Split out from Init so tests can use
// an in-memory database without touching the package global.
func Open(dialect, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}
	if dialect == "sqlite3" {
		// sqlite allows a single writer; this also keeps an in-memory
		// database pinned to one connection.
		db.DB().SetMaxOpenConns(1)
	}
	db.AutoMigrate(
		&models.User{},
		&models.Channel{},
		&models.Video{},
		&models.Comment{},
		&models.Reaction{},
	)
	db.Model(&models.Channel{}).AddUniqueIndex("uq_channels_owner_name", "owner_id", "channel_name")
	return db, nil
}
