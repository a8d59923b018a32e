package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"VendorHub/internal/model"
	"VendorHub/pkg/logger"
)

// Migrate 运行数据库迁移，创建所有表
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return MigrateDB(db)
}

// MigrateDB 对指定连接执行迁移
func MigrateDB(db *gorm.DB) error {
	logger.Logger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&model.Vendor{},
		&model.VendorProfile{},
		&model.VendorService{},
		&model.Verification{},
	)
	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
