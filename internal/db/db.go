package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taskhub/labor-marketplace/internal/config"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// bookingOverlapConstraint rejects, at the storage level, two blocking
// bookings of one worker whose [start, end) ranges intersect.
const bookingOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'bookings_worker_no_overlap'
	) THEN
		ALTER TABLE bookings
		ADD CONSTRAINT bookings_worker_no_overlap
		EXCLUDE USING gist (
			worker_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		)
		WHERE (
			status <> 'cancelled'
			AND deleted_at IS NULL
			AND start_time IS NOT NULL
			AND end_time IS NOT NULL
		);
	END IF;
END
$$;`

func NewDB(cfg *config.Config, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// Migrate creates the schema and the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskApplication{},
		&models.Booking{},
		&models.Dispute{},
		&models.Rating{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(bookingOverlapConstraint).Error; err != nil {
		return fmt.Errorf("booking overlap constraint: %w", err)
	}

	return nil
}
