package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func (e *testEnv) doAdmin(t *testing.T, path string, body any, key string) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAdminReview_RequiresKey(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doAdmin(t, "/api/admin/verifications/approve",
		map[string]any{"user_uuids": []string{"x"}}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.doAdmin(t, "/api/admin/verifications/approve",
		map[string]any{"user_uuids": []string{"x"}}, "wrong-key")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminReview_ApproveAndReject(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.registerUser(t, "jane@example.com")

	// Nothing to review before a submission exists.
	resp := env.doAdmin(t, "/api/admin/verifications/approve",
		map[string]any{"user_uuids": []string{user.ID}}, "admin-key")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	submit := env.submitPhoto(t, user.ID, "me.jpg")
	require.Equal(t, http.StatusOK, submit.StatusCode)

	resp = env.doAdmin(t, "/api/admin/verifications/approve",
		map[string]any{"user_uuids": []string{user.ID}}, "admin-key")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	approved, err := env.users.GetByID(user.ID)
	require.NoError(t, err)
	require.True(t, approved.IsVerified)
	require.True(t, approved.IsActive)

	resp = env.doAdmin(t, "/api/admin/verifications/reject",
		map[string]any{"user_uuids": []string{user.ID}}, "admin-key")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rejected, err := env.users.GetByID(user.ID)
	require.NoError(t, err)
	require.False(t, rejected.IsVerified)
	require.False(t, rejected.IsActive)
}
