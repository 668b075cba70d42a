package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ndamdavid/servicelink_backend/internal/models"
)

type ProposalStore struct {
	DB *gorm.DB
}

func NewProposalStore(db *gorm.DB) *ProposalStore {
	return &ProposalStore{DB: db}
}

type ProposalFilter struct {
	CategoryID string
}

// Create persists the proposal and attaches its resolved skill set.
func (s *ProposalStore) Create(p *models.ServiceProposal, skills []models.ServiceProposalSkill) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Skills").Create(p).Error; err != nil {
			return err
		}
		if len(skills) == 0 {
			return nil
		}
		return tx.Model(p).Association("Skills").Append(skills)
	})
}

func (s *ProposalStore) GetByID(id string) (*models.ServiceProposal, error) {
	var p models.ServiceProposal
	err := s.DB.
		Preload("Skills").
		Preload("User").
		Preload("Category").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProposalStore) GetOwned(id, userID string) (*models.ServiceProposal, error) {
	var p models.ServiceProposal
	err := s.DB.
		Preload("Skills").
		Preload("Category").
		First(&p, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update saves the scalar fields and, when replaceSkills is set, swaps the
// attached skill set in the same transaction so a skill-side failure rolls
// the whole edit back.
func (s *ProposalStore) Update(p *models.ServiceProposal, skills []models.ServiceProposalSkill, replaceSkills bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Skills").Save(p).Error; err != nil {
			return err
		}
		if !replaceSkills {
			return nil
		}
		return tx.Model(p).Association("Skills").Replace(skills)
	})
}

// List returns the proposal window; unlike requests there is no status gate.
func (s *ProposalStore) List(filter ProposalFilter, page PageQuery) (Paged[models.ServiceProposal], error) {
	page = page.normalized()

	filtered := func() *gorm.DB {
		q := s.DB.Model(&models.ServiceProposal{})
		if filter.CategoryID != "" {
			q = q.Where("category_id = ?", filter.CategoryID)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return Paged[models.ServiceProposal]{}, err
	}

	var items []models.ServiceProposal
	err := filtered().
		Preload("Skills").
		Preload("User").
		Preload("Category").
		Order(page.order()).
		Offset(page.offset()).
		Limit(page.Size).
		Find(&items).Error
	if err != nil {
		return Paged[models.ServiceProposal]{}, err
	}
	return newPaged(page, total, items), nil
}
