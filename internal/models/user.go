package models

// User represents the user model in the database
type User struct {
	Base
	Username     string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}
