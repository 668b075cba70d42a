package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ndamdavid/servicelink_backend/internal/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate keeps the schema in sync with the model structs.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.UserSocials{},
		&models.UserVerification{},
		&models.ServiceCategory{},
		&models.ServiceRequest{},
		&models.ServiceRequestContacts{},
		&models.ServiceProposalSkill{},
		&models.ServiceProposal{},
	)
}
