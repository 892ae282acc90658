package databases

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"confhub_backend/internals/configs"
)

// Open connects to Postgres and tunes the pool. The returned handle is
// passed down explicitly; there is no package-level connection.
func Open(cfg *configs.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
		// keeps PgBouncer (transaction pooling) happy
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// Close releases the underlying pool. Safe to call during shutdown even if
// requests are still draining; GORM serializes access to the pool handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the connection, used by the health endpoint.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
