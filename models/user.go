package models

import (
	"time"

	"gorm.io/gorm"
)

// User 医生账号模型（接口认证开启时使用）
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Password  string         `json:"-" gorm:"size:255;not null"` // bcrypt 哈希，不返回给前端
	Email     string         `json:"email" gorm:"size:100"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
