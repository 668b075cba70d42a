package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndamdavid/servicelink_backend/internal/auth"
	"github.com/ndamdavid/servicelink_backend/internal/middleware"
	"github.com/ndamdavid/servicelink_backend/internal/models"
	"github.com/ndamdavid/servicelink_backend/internal/storage"
	"github.com/ndamdavid/servicelink_backend/internal/store"
)

const testSecret = "test-secret"

type testEnv struct {
	app       *fiber.App
	gdb       *gorm.DB
	uploadDir string

	users         *store.UserStore
	taxonomy      *store.TaxonomyStore
	requests      *store.RequestStore
	proposals     *store.ProposalStore
	verifications *store.VerificationStore
}

// newTestEnv wires the full route table over an in-memory database, the same
// way cmd/api does over postgres.
func newTestEnv(t *testing.T) *testEnv {
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

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.UserSocials{},
		&models.UserVerification{},
		&models.ServiceCategory{},
		&models.ServiceRequest{},
		&models.ServiceRequestContacts{},
		&models.ServiceProposalSkill{},
		&models.ServiceProposal{},
	))

	env := &testEnv{
		gdb:           gdb,
		uploadDir:     t.TempDir(),
		users:         store.NewUserStore(gdb),
		taxonomy:      store.NewTaxonomyStore(gdb),
		requests:      store.NewRequestStore(gdb),
		proposals:     store.NewProposalStore(gdb),
		verifications: store.NewVerificationStore(gdb),
	}

	photos, err := storage.NewDisk(env.uploadDir)
	require.NoError(t, err)

	denylist := auth.NoopDenylist{}
	authH := &AuthHandler{
		Users:      env.users,
		Denylist:   denylist,
		JWTSecret:  testSecret,
		AccessMin:  60,
		RefreshMin: 10080,
	}
	userH := NewUserHandler(env.users, env.verifications, photos)
	requestH := NewServiceRequestHandler(env.requests, env.taxonomy)
	proposalH := NewServiceProposalHandler(env.proposals, env.taxonomy)
	taxonomyH := NewTaxonomyHandler(env.taxonomy)
	adminH := NewAdminHandler(env.users, env.verifications)

	app := fiber.New()
	api := app.Group("/api", middleware.Authenticate(testSecret, env.users, denylist))

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/refresh", authH.Refresh)
	api.Get("/users/:id/profile", userH.Profile)
	api.Post("/users/verify", userH.SubmitVerification)
	api.Get("/services/requests/list", requestH.List)
	api.Get("/services/requests/:id", requestH.Get)
	api.Get("/services/proposals/list", proposalH.List)
	api.Get("/services/skills", taxonomyH.GetSkills)
	api.Get("/services/categories", taxonomyH.GetCategories)

	protected := api.Group("/", middleware.RequireUser())
	protected.Get("/me", authH.Me)
	protected.Post("/auth/logout", authH.Logout)
	protected.Post("/services/create/request", requestH.Create)
	protected.Post("/services/create/proposal", proposalH.Create)
	protected.Put("/services/update/request/:id", requestH.Update)
	protected.Put("/services/update/proposal/:id", proposalH.Update)

	admin := api.Group("/admin", middleware.RequireAdminKey("admin-key"))
	admin.Post("/verifications/approve", adminH.ApproveVerifications)
	admin.Post("/verifications/reject", adminH.RejectVerifications)

	env.app = app
	return env
}

// doJSON performs a request with an optional JSON body and bearer token, and
// decodes the JSON response.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

// registerUser creates an active user directly and returns it with a signed
// access token.
func (e *testEnv) registerUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	hashed, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)
	u := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     &email,
		Password:  hashed,
		IsActive:  true,
	}
	require.NoError(t, e.users.Create(&u))

	token, err := auth.SignToken(testSecret, u.Username, auth.TypeAccess, 60)
	require.NoError(t, err)
	return &u, token
}
