package models

import (
	"time"

	"hvacquote-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`

	FirstName   string `gorm:"not null"`
	LastName    string
	CompanyName string
	Phone       string

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	Quotes []Quote `gorm:"foreignKey:OwnerID"`

	gorm.Model
}

// Initialize UUID before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
