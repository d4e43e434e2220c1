package database

import (
	"fmt"
	"log"

	"practice_hub_backend/internal/config"
	"practice_hub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate creates the schema and seeds the tag table, which must never
// be empty: non-admin question listings are always scoped to a tag.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.QuestionTag{},
		&model.Question{},
		&model.Answer{},
		&model.Comment{},
		&model.Evaluation{},
		&model.AuditLog{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	var count int64
	db.Model(&model.QuestionTag{}).Count(&count)
	if count == 0 {
		defaultTags := []string{"General", "Mathematics", "Programming", "English"}
		for _, name := range defaultTags {
			db.Create(&model.QuestionTag{Name: name})
		}
	}

	return nil
}
