package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndamdavid/servicelink_backend/internal/models"
)

func TestGetOrCreateSkill_Idempotent(t *testing.T) {
	gdb := openTestDB(t)
	s := NewTaxonomyStore(gdb)

	for _, variant := range []string{"Plumbing", " plumbing ", "PLUMBING"} {
		skill, err := s.GetOrCreateSkill(variant)
		require.NoError(t, err)
		require.Equal(t, "plumbing", skill.Name)
	}

	var count int64
	require.NoError(t, gdb.Model(&models.ServiceProposalSkill{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetOrCreateSkill_AccentFolding(t *testing.T) {
	gdb := openTestDB(t)
	s := NewTaxonomyStore(gdb)

	first, err := s.GetOrCreateSkill("Développement")
	require.NoError(t, err)
	second, err := s.GetOrCreateSkill("developpement")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "developpement", first.Name)
}

func TestResolveSkills_CollapsesDuplicates(t *testing.T) {
	gdb := openTestDB(t)
	s := NewTaxonomyStore(gdb)

	skills, err := s.ResolveSkills([]string{"Welding", " welding", "WELDING ", "", "painting"})
	require.NoError(t, err)
	require.Len(t, skills, 2)
}

func TestResolveCategory_UnknownIDIsHardError(t *testing.T) {
	gdb := openTestDB(t)
	s := NewTaxonomyStore(gdb)

	_, err := s.ResolveCategory("does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCategory_EmptyFallsBackToSentinel(t *testing.T) {
	gdb := openTestDB(t)
	s := NewTaxonomyStore(gdb)

	cat, err := s.ResolveCategory("")
	require.NoError(t, err)
	require.Equal(t, SentinelFrName, cat.FrName)
	require.Equal(t, SentinelEnName, cat.EnName)

	// Second resolution reuses the same row.
	again, err := s.ResolveCategory("")
	require.NoError(t, err)
	require.Equal(t, cat.ID, again.ID)
}

func TestGetOrCreateSkill_ConcurrentFirstUse(t *testing.T) {
	gdb := openTestDB(t)
	s := NewTaxonomyStore(gdb)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetOrCreateSkill("carpentry")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, gdb.Model(&models.ServiceProposalSkill{}).
		Where("name = ?", "carpentry").Count(&count).Error)
	require.EqualValues(t, 1, count)
}
