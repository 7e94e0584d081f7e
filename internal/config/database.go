package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nova-library/internal/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the global database instance
var DB *gorm.DB

// ConnectDatabase opens the SQL store selected by STORE_DRIVER
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	var gormLog gormlogger.Interface
	if cfg.IsDev() {
		gormLog = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormLog = gormlogger.Default.LogMode(gormlogger.Error)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Store.Driver == "sqlite" {
		// single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db

	log := logger.Get()
	log.Info().
		Str("driver", cfg.Store.Driver).
		Str("database", describe(cfg)).
		Msg("database connected")

	return db, nil
}

func dialectorFor(cfg *Config) (gorm.Dialector, error) {
	d := cfg.Database
	switch cfg.Store.Driver {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, d.Host, d.Port, d.DBName)), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)), nil
	case "sqlite":
		if dir := filepath.Dir(d.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite dir: %w", err)
			}
		}
		return sqlite.Open(d.SQLitePath + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("driver %q is not a SQL store", cfg.Store.Driver)
	}
}

func describe(cfg *Config) string {
	if cfg.Store.Driver == "sqlite" {
		return cfg.Database.SQLitePath
	}
	return fmt.Sprintf("%s:%s/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// HealthCheck checks if database is healthy
func HealthCheck() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
