package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/ndamdavid/servicelink_backend/internal/utils"
)

type RequestStatus string

const (
	RequestActive   RequestStatus = "active"
	RequestArchived RequestStatus = "archived"
	RequestClosed   RequestStatus = "closed"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestActive, RequestArchived, RequestClosed:
		return true
	}
	return false
}

// ServiceCategory is a bilingual taxonomy entry shared by requests and
// proposals. The "Autre | Other" sentinel is lazily created on first use.
type ServiceCategory struct {
	ID            string `gorm:"type:varchar(100);primaryKey" json:"uuid"`
	FrName        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"fr_name"`
	FrDescription string `gorm:"type:text" json:"fr_description"`
	EnName        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"en_name"`
	EnDescription string `gorm:"type:text" json:"en_description"`
}

func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.NewID()
	}
	return nil
}

// Label is the display form used in request/proposal projections.
func (c *ServiceCategory) Label() string {
	return c.FrName + " | " + c.EnName
}

type ServiceRequest struct {
	ID     string `gorm:"type:varchar(100);primaryKey" json:"uuid"`
	UserID string `gorm:"type:varchar(100);not null;index" json:"user_id"`

	Title       string        `gorm:"type:varchar(100);not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Status      RequestStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	City        string        `gorm:"type:varchar(100)" json:"city"`
	District    string        `gorm:"type:varchar(100)" json:"district"`
	Duration    int           `gorm:"not null" json:"duration"`     // in days
	FixedAmount int           `gorm:"not null" json:"fixed_amount"` // in FCFA

	CategoryID string           `gorm:"type:varchar(100);not null;index" json:"-"`
	Category   *ServiceCategory `gorm:"foreignKey:CategoryID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User     *User                   `gorm:"foreignKey:UserID" json:"-"`
	Contacts *ServiceRequestContacts `gorm:"foreignKey:ServiceRequestID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.NewID()
	}
	return nil
}

// ServiceRequestContacts is the single contact record of a request. At least
// one channel must be non-empty; validated before persistence.
type ServiceRequestContacts struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	ServiceRequestID string `gorm:"type:varchar(100);uniqueIndex;not null" json:"service_request_id"`

	Email    string `gorm:"type:varchar(255)" json:"email"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Whatsapp string `gorm:"type:varchar(20)" json:"whatsapp"`
	Telegram string `gorm:"type:varchar(20)" json:"telegram"`
}

func (c *ServiceRequestContacts) HasChannel() bool {
	return c.Email != "" || c.Phone != "" || c.Whatsapp != "" || c.Telegram != ""
}

// ServiceProposalSkill names are stored normalized (lowercase, trimmed,
// accent-folded), so the unique index doubles as the dedup guarantee.
type ServiceProposalSkill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

type ServiceProposal struct {
	ID     string `gorm:"type:varchar(100);primaryKey" json:"uuid"`
	UserID string `gorm:"type:varchar(100);not null;index" json:"user_id"`

	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	HourlyRate  int    `gorm:"not null" json:"hourly_rate"` // in FCFA

	// Nullable on purpose: deleting a category leaves its proposals
	// uncategorized rather than cascading.
	CategoryID *string          `gorm:"type:varchar(100);index" json:"-"`
	Category   *ServiceCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`

	Skills []ServiceProposalSkill `gorm:"many2many:service_proposal_skills_link" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (p *ServiceProposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	return nil
}
