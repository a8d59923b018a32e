package database

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"VendorHub/config"
	"VendorHub/pkg/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
	dbErr  error
)

func Init() error {
	dbOnce.Do(func() {
		gormCfg := &gorm.Config{
			Logger:                                   newLogger(),
			DisableForeignKeyConstraintWhenMigrating: true,
			PrepareStmt:                              true,
			SkipDefaultTransaction:                   true,
			TranslateError:                           true,
		}

		var gormDB *gorm.DB
		gormDB, dbErr = gorm.Open(postgres.Open(config.Cfg.GetDSN()), gormCfg)
		if dbErr != nil {
			logger.Logger.Error("Failed to open database", zap.String("host", config.Cfg.PostgreSQLHost), zap.Error(dbErr))
			return
		}

		if dbErr = useReplicas(gormDB); dbErr != nil {
			logger.Logger.Error("Failed to register read replicas", zap.Error(dbErr))
			return
		}

		if dbErr = gormDB.Use(NewOTELPlugin(config.Cfg.ServiceName)); dbErr != nil {
			logger.Logger.Error("Failed to register gorm otel plugin", zap.Error(dbErr))
			return
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			dbErr = err
			logger.Logger.Error("Failed to get sql.DB from gorm", zap.Error(err))
			return
		}

		configureConnectionPool(sqlDB)

		if err := sqlDB.Ping(); err != nil {
			dbErr = err
			logger.Logger.Error("Failed to ping database", zap.Error(err))
			return
		}

		db = gormDB
		if err := Migrate(); err != nil {
			dbErr = err
			return
		}
		logger.Logger.Info("Database initialized successfully",
			zap.Int("replicas", len(config.Cfg.GetReplicaDSNs())),
		)
	})

	return dbErr
}

// useReplicas 配置了只读副本时，读请求按随机策略分发到副本
func useReplicas(gormDB *gorm.DB) error {
	dsns := config.Cfg.GetReplicaDSNs()
	if len(dsns) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(dsns))
	for _, dsn := range dsns {
		replicas = append(replicas, postgres.Open(dsn))
	}

	return gormDB.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}).
		SetMaxIdleConns(config.Cfg.PostgreSQLMaxIdle).
		SetMaxOpenConns(config.Cfg.PostgreSQLMaxOpen).
		SetConnMaxLifetime(2 * time.Hour))
}

func DB() *gorm.DB {
	return db
}

func Close(ctx context.Context) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- sqlDB.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func configureConnectionPool(sqlDB *sql.DB) {
	cfg := config.Cfg

	sqlDB.SetMaxIdleConns(cfg.PostgreSQLMaxIdle)
	sqlDB.SetMaxOpenConns(cfg.PostgreSQLMaxOpen)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
}

func newLogger() gormlogger.Interface {
	level := gormlogger.Warn
	switch config.Cfg.LoggerLevel {
	case "DEBUG":
		level = gormlogger.Info
	case "ERROR":
		level = gormlogger.Error
	}

	return gormlogger.New(zapWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.Logger.Sugar().Infof(format, args...)
}
