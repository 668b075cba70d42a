package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndamdavid/servicelink_backend/internal/models"
)

func createTestRequest(t *testing.T, gdb *gorm.DB, userID, categoryID, title string, status models.RequestStatus) *models.ServiceRequest {
	t.Helper()

	req := models.ServiceRequest{
		UserID:      userID,
		Title:       title,
		Status:      status,
		City:        "Douala",
		District:    "Akwa",
		Duration:    5,
		FixedAmount: 10000,
		CategoryID:  categoryID,
	}
	contacts := models.ServiceRequestContacts{Phone: "+237600000000"}
	require.NoError(t, NewRequestStore(gdb).Create(&req, &contacts))
	return &req
}

func TestRequestCreate_ContactsShareTransaction(t *testing.T) {
	gdb := openTestDB(t)
	user := createTestUser(t, gdb, "owner@example.com")
	cat, err := NewTaxonomyStore(gdb).GetOrCreateSentinel()
	require.NoError(t, err)

	req := createTestRequest(t, gdb, user.ID, cat.ID, "Fix my sink", models.RequestActive)

	loaded, err := NewRequestStore(gdb).GetByID(req.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Contacts)
	require.Equal(t, req.ID, loaded.Contacts.ServiceRequestID)

	// A second contact record for the same request violates the 1:1 index.
	dup := models.ServiceRequestContacts{ServiceRequestID: req.ID, Email: "x@example.com"}
	require.Error(t, gdb.Create(&dup).Error)
}

func TestRequestList_PaginationWindows(t *testing.T) {
	gdb := openTestDB(t)
	user := createTestUser(t, gdb, "owner@example.com")
	cat, err := NewTaxonomyStore(gdb).GetOrCreateSentinel()
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 25; i++ {
		req := createTestRequest(t, gdb, user.ID, cat.ID, fmt.Sprintf("request %02d", i), models.RequestActive)
		// Spread updated_at so the newest-first order is deterministic.
		require.NoError(t, gdb.Model(&models.ServiceRequest{}).
			Where("id = ?", req.ID).
			UpdateColumn("updated_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	s := NewRequestStore(gdb)

	page2, err := s.List(RequestFilter{}, PageQuery{Page: 2, Size: 10})
	require.NoError(t, err)
	require.EqualValues(t, 25, page2.Total)
	require.Len(t, page2.Items, 10)
	require.True(t, page2.More)
	// Newest first: page 2 holds requests 15..06.
	require.Equal(t, "request 15", page2.Items[0].Title)
	require.Equal(t, "request 06", page2.Items[9].Title)

	page3, err := s.List(RequestFilter{}, PageQuery{Page: 3, Size: 10})
	require.NoError(t, err)
	require.Len(t, page3.Items, 5)
	require.False(t, page3.More)
}

func TestRequestList_OnlyActiveVisible(t *testing.T) {
	gdb := openTestDB(t)
	user := createTestUser(t, gdb, "owner@example.com")
	cat, err := NewTaxonomyStore(gdb).GetOrCreateSentinel()
	require.NoError(t, err)

	s := NewRequestStore(gdb)
	active := createTestRequest(t, gdb, user.ID, cat.ID, "active one", models.RequestActive)
	archived := createTestRequest(t, gdb, user.ID, cat.ID, "archived one", models.RequestArchived)
	createTestRequest(t, gdb, user.ID, cat.ID, "closed one", models.RequestClosed)

	result, err := s.List(RequestFilter{}, PageQuery{})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, active.ID, result.Items[0].ID)

	// Archiving hides the row without deleting it.
	_, err = s.GetByID(archived.ID)
	require.NoError(t, err)
}

func TestRequestList_ConjunctiveFilters(t *testing.T) {
	gdb := openTestDB(t)
	user := createTestUser(t, gdb, "owner@example.com")
	tax := NewTaxonomyStore(gdb)
	cat, err := tax.GetOrCreateSentinel()
	require.NoError(t, err)

	other := models.ServiceCategory{FrName: "Santé", EnName: "Health"}
	require.NoError(t, gdb.Create(&other).Error)

	s := NewRequestStore(gdb)

	cheap := createTestRequest(t, gdb, user.ID, cat.ID, "cheap", models.RequestActive)
	require.NoError(t, gdb.Model(cheap).UpdateColumn("fixed_amount", 5000).Error)
	expensive := createTestRequest(t, gdb, user.ID, cat.ID, "expensive", models.RequestActive)
	require.NoError(t, gdb.Model(expensive).UpdateColumn("fixed_amount", 50000).Error)
	elsewhere := createTestRequest(t, gdb, user.ID, other.ID, "elsewhere", models.RequestActive)
	require.NoError(t, gdb.Model(elsewhere).UpdateColumn("city", "Yaoundé").Error)

	byAmount, err := s.List(RequestFilter{MinAmount: 10000, MaxAmount: 60000}, PageQuery{})
	require.NoError(t, err)
	require.EqualValues(t, 1, byAmount.Total)
	require.Equal(t, "expensive", byAmount.Items[0].Title)

	byCityAndCategory, err := s.List(RequestFilter{City: "Yaoundé", CategoryID: other.ID}, PageQuery{})
	require.NoError(t, err)
	require.EqualValues(t, 1, byCityAndCategory.Total)

	mismatch, err := s.List(RequestFilter{City: "Yaoundé", CategoryID: cat.ID}, PageQuery{})
	require.NoError(t, err)
	require.EqualValues(t, 0, mismatch.Total)
}

func TestRequestGetOwned_ForeignLooksMissing(t *testing.T) {
	gdb := openTestDB(t)
	owner := createTestUser(t, gdb, "owner@example.com")
	intruder := createTestUser(t, gdb, "intruder@example.com")
	cat, err := NewTaxonomyStore(gdb).GetOrCreateSentinel()
	require.NoError(t, err)

	s := NewRequestStore(gdb)
	req := createTestRequest(t, gdb, owner.ID, cat.ID, "mine", models.RequestActive)

	_, err = s.GetOwned(req.ID, intruder.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetOwned("no-such-id", intruder.ID)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetOwned(req.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, req.ID, got.ID)
}
