package models

import (
	"time"
)

type User struct {
	Email        string    `gorm:"type:varchar(200);primaryKey" json:"email"`
	PasswordHash string    `gorm:"type:char(64);not null" json:"-"`
	CreatedAt    time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
