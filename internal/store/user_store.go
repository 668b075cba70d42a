package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ndamdavid/servicelink_backend/internal/models"
	"github.com/ndamdavid/servicelink_backend/internal/utils"
)

type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

// Create persists a new user. The username is always re-derived from the
// contact fields immediately before the write.
func (s *UserStore) Create(u *models.User) error {
	u.Username = utils.DeriveUsername(u.Email, u.Phone)
	if err := s.DB.Create(u).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *UserStore) Save(u *models.User) error {
	u.Username = utils.DeriveUsername(u.Email, u.Phone)
	if err := s.DB.Save(u).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *UserStore) GetByID(id string) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) GetByUsername(username string) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) GetByPhone(phone string) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetProfile loads the rich projection shown on /me and public profiles.
func (s *UserStore) GetProfile(id string) (*models.User, error) {
	var u models.User
	err := s.DB.
		Preload("Requests.Contacts").
		Preload("Requests.Category").
		Preload("Proposals.Skills").
		Preload("Proposals.Category").
		Preload("Socials").
		First(&u, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetVerified bulk-updates the trust flags for the given users. Approval and
// activation always move together.
func (s *UserStore) SetVerified(userIDs []string, verified bool) error {
	if len(userIDs) == 0 {
		return nil
	}
	return s.DB.Model(&models.User{}).
		Where("id IN ?", userIDs).
		Updates(map[string]any{"is_verified": verified, "is_active": verified}).Error
}
