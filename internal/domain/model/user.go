package model

import "time"

// User 对应 users 表
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	Age       int       `gorm:"not null" json:"age"`
	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
}

func (User) TableName() string { return "users" }
