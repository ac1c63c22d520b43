package model

import (
	"time"
)

type UserRole string

const (
	Member UserRole = "member"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);default:'member'" json:"role"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"autoCreateTime" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Profile 用户扩展资料表，与 User 一对一，在注册事务内显式创建（不依赖钩子）
// swagger:model Profile
type Profile struct {
	BaseModel
	UserID       uint       `gorm:"uniqueIndex;not null" json:"userId"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	LastActivity time.Time  `gorm:"autoCreateTime" json:"lastActivity"`
}

func (Profile) TableName() string {
	return "profiles"
}
