package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndamdavid/servicelink_backend/internal/models"
)

type VerificationStore struct {
	DB *gorm.DB
}

func NewVerificationStore(db *gorm.DB) *VerificationStore {
	return &VerificationStore{DB: db}
}

func (s *VerificationStore) GetByUser(userID string) (*models.UserVerification, error) {
	var v models.UserVerification
	if err := s.DB.First(&v, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Upsert points the user's verification record at photoPath, creating the
// record on first submission. The unique index on user_id carries the race:
// concurrent first submissions collapse into one row.
func (s *VerificationStore) Upsert(userID, photoPath string) (*models.UserVerification, error) {
	v := models.UserVerification{UserID: userID, PhotoPath: photoPath}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{"photo_path": photoPath}),
	}).Create(&v).Error
	if err != nil {
		return nil, err
	}
	return s.GetByUser(userID)
}

// ListByUsers returns the verification records for the given user ids, used
// by the admin bulk review endpoints.
func (s *VerificationStore) ListByUsers(userIDs []string) ([]models.UserVerification, error) {
	var out []models.UserVerification
	if err := s.DB.Where("user_id IN ?", userIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
