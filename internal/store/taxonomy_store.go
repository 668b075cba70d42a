package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndamdavid/servicelink_backend/internal/models"
	"github.com/ndamdavid/servicelink_backend/internal/utils"
)

const (
	SentinelFrName = "Autre"
	SentinelEnName = "Other"
)

// TaxonomyStore owns the shared category and skill tables.
type TaxonomyStore struct {
	DB *gorm.DB
}

func NewTaxonomyStore(db *gorm.DB) *TaxonomyStore {
	return &TaxonomyStore{DB: db}
}

func (s *TaxonomyStore) ListCategories() ([]models.ServiceCategory, error) {
	var cats []models.ServiceCategory
	if err := s.DB.Order("fr_name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *TaxonomyStore) ListSkills() ([]models.ServiceProposalSkill, error) {
	var skills []models.ServiceProposalSkill
	if err := s.DB.Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *TaxonomyStore) GetCategory(id string) (*models.ServiceCategory, error) {
	var cat models.ServiceCategory
	if err := s.DB.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// ResolveCategory maps an optional category id onto a concrete category.
// A supplied id must exist (ErrNotFound otherwise); an empty id falls back
// to the sentinel, creating it on first use.
func (s *TaxonomyStore) ResolveCategory(id string) (*models.ServiceCategory, error) {
	if id != "" {
		return s.GetCategory(id)
	}
	return s.GetOrCreateSentinel()
}

// GetOrCreateSentinel is upsert-backed: concurrent first uses race on the
// fr_name unique index, not on a read-then-write window.
func (s *TaxonomyStore) GetOrCreateSentinel() (*models.ServiceCategory, error) {
	cat := models.ServiceCategory{
		FrName:        SentinelFrName,
		FrDescription: "Toute autre catégorie de service",
		EnName:        SentinelEnName,
		EnDescription: "Any other service category",
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fr_name"}},
		DoNothing: true,
	}).Create(&cat).Error
	if err != nil {
		return nil, err
	}
	var out models.ServiceCategory
	if err := s.DB.First(&out, "fr_name = ?", SentinelFrName).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrCreateSkill stores the normalized form of name and returns the single
// row for it, whether this call created it or a concurrent one did.
func (s *TaxonomyStore) GetOrCreateSkill(name string) (*models.ServiceProposalSkill, error) {
	normalized := utils.NormalizeSkillName(name)
	if normalized == "" {
		return nil, ErrNotFound
	}
	skill := models.ServiceProposalSkill{Name: normalized}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&skill).Error
	if err != nil {
		return nil, err
	}
	var out models.ServiceProposalSkill
	if err := s.DB.First(&out, "name = ?", normalized).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveSkills normalizes and get-or-creates every entry, collapsing
// duplicates within the same submission.
func (s *TaxonomyStore) ResolveSkills(names []string) ([]models.ServiceProposalSkill, error) {
	seen := map[string]bool{}
	out := make([]models.ServiceProposalSkill, 0, len(names))
	for _, name := range names {
		normalized := utils.NormalizeSkillName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		skill, err := s.GetOrCreateSkill(normalized)
		if err != nil {
			return nil, err
		}
		out = append(out, *skill)
	}
	return out, nil
}
