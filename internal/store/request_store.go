package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ndamdavid/servicelink_backend/internal/models"
)

type RequestStore struct {
	DB *gorm.DB
}

func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{DB: db}
}

// RequestFilter narrows the public listing. Zero values are ignored.
type RequestFilter struct {
	City       string
	CategoryID string
	MinAmount  int
	MaxAmount  int
}

// Create persists the request and its contact record in one transaction, so
// a contacts failure never leaves an orphaned request behind.
func (s *RequestStore) Create(req *models.ServiceRequest, contacts *models.ServiceRequestContacts) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		contacts.ServiceRequestID = req.ID
		return tx.Create(contacts).Error
	})
}

func (s *RequestStore) GetByID(id string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := s.DB.
		Preload("Contacts").
		Preload("User").
		Preload("Category").
		First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetOwned looks a request up by id scoped to its owner. A foreign id and a
// missing id are indistinguishable to the caller.
func (s *RequestStore) GetOwned(id, userID string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := s.DB.
		Preload("Contacts").
		Preload("Category").
		First(&req, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (s *RequestStore) Save(req *models.ServiceRequest) error {
	return s.DB.Save(req).Error
}

// List returns the window of ACTIVE requests matching the filter, ordered by
// updated_at.
func (s *RequestStore) List(filter RequestFilter, page PageQuery) (Paged[models.ServiceRequest], error) {
	page = page.normalized()

	// Count and window run the same filtered query; building it twice keeps
	// the two statements from polluting each other.
	filtered := func() *gorm.DB {
		q := s.DB.Model(&models.ServiceRequest{}).
			Where("status = ?", models.RequestActive)
		if filter.City != "" {
			q = q.Where("city = ?", filter.City)
		}
		if filter.CategoryID != "" {
			q = q.Where("category_id = ?", filter.CategoryID)
		}
		if filter.MinAmount > 0 {
			q = q.Where("fixed_amount >= ?", filter.MinAmount)
		}
		if filter.MaxAmount > 0 {
			q = q.Where("fixed_amount <= ?", filter.MaxAmount)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return Paged[models.ServiceRequest]{}, err
	}

	var items []models.ServiceRequest
	err := filtered().
		Preload("Contacts").
		Preload("User").
		Preload("Category").
		Order(page.order()).
		Offset(page.offset()).
		Limit(page.Size).
		Find(&items).Error
	if err != nil {
		return Paged[models.ServiceRequest]{}, err
	}
	return newPaged(page, total, items), nil
}
