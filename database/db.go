// Package database opens the panel's database, migrates its schema, and seeds it.
package database

import (
	"errors"

	"github.com/taskmanager/taskmanager/config"
	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/util/common"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbType config.DatabaseType
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.Session{},
		&model.Account{},
		&model.Verification{},
		&model.SelfIntroduction{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logger.Errorf("Error auto migrating model %T: %v", m, err)
			return err
		}
	}
	return nil
}

func initSelfIntroduction() error {
	empty, err := isTableEmpty(model.SelfIntroduction{}.TableName())
	if err != nil {
		return err
	}
	if empty {
		return db.Create(&model.SelfIntroduction{
			Name:    "システム管理者",
			Content: "ユーザー管理画面の運用を担当しています。",
			Task:    "利用者アカウントの作成と権限の管理",
		}).Error
	}
	return nil
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func open(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case config.DatabaseTypeSQLite:
		if err := cfg.EnsureDirectoryExists(); err != nil {
			return nil, err
		}
		dsn := cfg.GetDSN() + "?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000"
		return sqlite.Open(dsn), nil
	case config.DatabaseTypePostgreSQL:
		return postgres.Open(cfg.GetDSN()), nil
	}
	return nil, common.NewErrorf("unsupported database type: %s", cfg.Type)
}

// InitDB connects to the configured database and migrates every model.
func InitDB(cfg *config.DatabaseConfig) error {
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	dialector, err := open(cfg)
	if err != nil {
		return err
	}

	var gormLogger gormlogger.Interface
	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}
	db, err = gorm.Open(dialector, c)
	if err != nil {
		return err
	}
	dbType = cfg.Type

	if cfg.IsSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		for _, pragma := range []string{
			"PRAGMA cache_size = -64000;",
			"PRAGMA temp_store = MEMORY;",
			"PRAGMA foreign_keys = ON;",
		} {
			if _, err := sqlDB.Exec(pragma); err != nil {
				return err
			}
		}
	}

	if err := initModels(); err != nil {
		return err
	}
	return initSelfIntroduction()
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(); err != nil {
		logger.Warningf("error executing checkpoint: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Checkpoint flushes the sqlite WAL into the main database file.
func Checkpoint() error {
	if db == nil || dbType != config.DatabaseTypeSQLite {
		return nil
	}
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
