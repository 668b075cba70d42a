package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndamdavid/servicelink_backend/internal/models"
)

// openTestDB returns an isolated in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// sqlite cannot interleave writers; serialize at the pool.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.UserSocials{},
		&models.UserVerification{},
		&models.ServiceCategory{},
		&models.ServiceRequest{},
		&models.ServiceRequestContacts{},
		&models.ServiceProposalSkill{},
		&models.ServiceProposal{},
	)
	require.NoError(t, err)
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, email string) *models.User {
	t.Helper()

	u := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     &email,
		Password:  "x",
		IsActive:  true,
	}
	require.NoError(t, NewUserStore(gdb).Create(&u))
	return &u
}
