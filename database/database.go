package database

import (
	"errors"
	"fmt"
	"strings"

	"hostelhub/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const uniqueViolation = "23505"

// Initialize opens the store named by databaseURL. postgres:// and postgresql:// URLs
// use postgres through driver ("pgx" or "pq"), anything else is treated as a sqlite path.
func Initialize(databaseURL, driver string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(databaseURL, driver), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFor(databaseURL, driver string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		if driver == "pq" {
			// lib/pq registers itself as "postgres"; its errors are not translated by gorm.
			return postgres.New(postgres.Config{DriverName: "postgres", DSN: databaseURL})
		}
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(databaseURL)
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Student{},
		&models.Parent{},
		&models.HostelStaff{},
		&models.Payment{},
		&models.RegistrationRequest{},
		&models.Complaint{},
		&models.PaymentMethod{},
		&models.GalleryImage{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err came from a unique index, whichever driver produced it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
