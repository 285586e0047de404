package models

import "gorm.io/gorm"

const (
	RoleStudent  = "student"
	RoleEducator = "educator"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:student"`
	ImageURL     string
}

func (u *User) IsEducator() bool {
	return u.Role == RoleEducator || u.Role == RoleAdmin
}
