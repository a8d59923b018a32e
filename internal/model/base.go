package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 自增主键、时间戳与软删除，内部 ID 不对外暴露
type BaseModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"-"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Persisted 记录是否已写入数据库
func (m BaseModel) Persisted() bool {
	return m.ID != 0
}
