package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/ndamdavid/servicelink_backend/internal/utils"
)

type User struct {
	ID        string `gorm:"type:varchar(100);primaryKey" json:"uuid"`
	FirstName string `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(150);not null" json:"last_name"`

	// At least one of email/phone is required; username mirrors whichever
	// is present (email wins) and is recomputed before every persist.
	Email    *string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone    *string `gorm:"type:varchar(20);uniqueIndex" json:"phone"`
	Username string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`

	City     string `gorm:"type:varchar(100)" json:"city"`
	District string `gorm:"type:varchar(100)" json:"district"`

	Password   string `gorm:"not null" json:"-"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
	IsVerified bool   `gorm:"default:false" json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Requests     []ServiceRequest  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Proposals    []ServiceProposal `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Socials      *UserSocials      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"socials,omitempty"`
	Verification *UserVerification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	return nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type UserSocials struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   string `gorm:"type:varchar(100);uniqueIndex;not null" json:"user_id"`
	Whatsapp string `gorm:"type:varchar(20)" json:"whatsapp"`
	Telegram string `gorm:"type:varchar(20)" json:"telegram"`
}

type UserVerification struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"type:varchar(100);uniqueIndex;not null" json:"user_id"`
	PhotoPath string `gorm:"type:varchar(255);not null" json:"photo_path"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
