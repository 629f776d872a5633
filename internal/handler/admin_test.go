package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-checkin/internal/config"
	"github.com/iliyamo/event-checkin/internal/handler"
	"github.com/iliyamo/event-checkin/internal/middleware"
	"github.com/iliyamo/event-checkin/internal/model"
	"github.com/iliyamo/event-checkin/internal/router"
)

// adminReq performs an admin API call with the given key and optional
// JSON body, returning status code and decoded response.
func (s *testServer) adminReq(t *testing.T, method, path, key, jsonBody string) (int, map[string]any) {
	t.Helper()
	var rdr *strings.Reader
	if jsonBody != "" {
		rdr = strings.NewReader(jsonBody)
	} else {
		rdr = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rdr)
	if jsonBody != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	body := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestAdminRejectsMissingOrWrongKey(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/admin/checkins", "/api/admin/guests"} {
		code, body := s.adminReq(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.Equal(t, "unauthorized", body["error"])

		code, _ = s.adminReq(t, http.MethodGet, path, "wrong-key", "")
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestAdminUnconfiguredKeyIsServerError(t *testing.T) {
	s := newTestServer(t)

	// Re-register with an empty admin key: every admin call must answer
	// 500, including ones presenting some key.
	e := echo.New()
	cfg := config.Config{GuestsCSV: s.cfg.GuestsCSV}
	router.Register(e, cfg,
		handler.NewCheckinHandler(cfg, s.guests, s.checkins),
		handler.NewAdminHandler(cfg, s.guests, s.checkins),
		middleware.NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/guests", nil)
	req.Header.Set("X-Admin-Key", "anything")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminGuestCreateValidation(t *testing.T) {
	s := newTestServer(t)

	code, body := s.adminReq(t, http.MethodPost, "/api/admin/guest", testAdminKey, `{"seat":"A1"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "name is required", body["error"])

	code, _ = s.adminReq(t, http.MethodPost, "/api/admin/guest", testAdminKey, `{"name":"Anna","seat":"M1"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.adminReq(t, http.MethodPost, "/api/admin/guest", testAdminKey, `{"name":"Anna","seat":"A0"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminGuestCRUDFlow(t *testing.T) {
	s := newTestServer(t)

	// Create; the lowercase seat is normalized and a default label derived.
	code, body := s.adminReq(t, http.MethodPost, "/api/admin/guest", testAdminKey, `{"name":"Somchai Jane","seat":"a1"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])

	// Duplicate seat is a conflict and leaves the directory unchanged.
	code, _ = s.adminReq(t, http.MethodPost, "/api/admin/guest", testAdminKey, `{"name":"Other","seat":"A1"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, body = s.adminReq(t, http.MethodGet, "/api/admin/guests", testAdminKey, "")
	require.Equal(t, http.StatusOK, code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	g := items[0].(map[string]any)
	assert.Equal(t, "somchai jane", g["name"])
	assert.Equal(t, "A1", g["seat"])
	assert.Equal(t, "Table A1", g["seat_en"])

	// Update renames in place, identity key included.
	code, _ = s.adminReq(t, http.MethodPut, "/api/admin/guest/somchai%20jane", testAdminKey,
		`{"name":"Somchai J.","seat":"B2","seat_en":"Stage table"}`)
	require.Equal(t, http.StatusOK, code)

	got, err := s.guests.FindBySubstring(context.Background(), "somchai j.")
	require.NoError(t, err)
	assert.Equal(t, "B2", got.Seat)
	assert.Equal(t, "Stage table", got.SeatEN)

	// Updating a key that no longer exists is 404.
	code, _ = s.adminReq(t, http.MethodPut, "/api/admin/guest/somchai%20jane", testAdminKey,
		`{"name":"Somchai","seat":"C3"}`)
	assert.Equal(t, http.StatusNotFound, code)

	// Delete twice: idempotent, both succeed.
	for i := 0; i < 2; i++ {
		code, body = s.adminReq(t, http.MethodDelete, "/api/admin/guest/somchai%20j.", testAdminKey, "")
		assert.Equal(t, http.StatusOK, code, "delete attempt %d", i+1)
		assert.Equal(t, true, body["ok"])
	}
}

func TestAdminMutationsExportSnapshot(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.adminReq(t, http.MethodPost, "/api/admin/guest", testAdminKey, `{"name":"Anna","seat":"A1"}`)
	require.Equal(t, http.StatusOK, code)

	data, err := os.ReadFile(s.cfg.GuestsCSV)
	require.NoError(t, err, "create must write the guest list file")
	assert.Contains(t, string(data), "Anna,A1,Table A1")

	code, _ = s.adminReq(t, http.MethodDelete, "/api/admin/guest/anna", testAdminKey, "")
	require.Equal(t, http.StatusOK, code)

	data, err = os.ReadFile(s.cfg.GuestsCSV)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Anna", "delete must rewrite the snapshot")
}

func TestAdminListCheckinsNewestFirst(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	seat := "A1"
	label := "Table A1"
	require.NoError(t, s.checkins.Insert(ctx, &model.Checkin{Name: "first", CreatedAt: "2026-02-01 10:00:00"}))
	require.NoError(t, s.checkins.Insert(ctx, &model.Checkin{
		Name: "second", Seat: &seat, SeatEN: &label, CreatedAt: "2026-02-01 11:00:00",
	}))

	code, body := s.adminReq(t, http.MethodGet, "/api/admin/checkins", testAdminKey, "")
	require.Equal(t, http.StatusOK, code)
	items := body["items"].([]any)
	require.Len(t, items, 2)

	top := items[0].(map[string]any)
	assert.Equal(t, "second", top["name"])
	assert.Equal(t, "A1", top["seat"])
	bottom := items[1].(map[string]any)
	assert.Equal(t, "first", bottom["name"])
	assert.Nil(t, bottom["seat"], "unmatched check-ins serialize a null seat")
}

func TestAdminListsEmptyAsArrays(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/admin/checkins", "/api/admin/guests"} {
		code, body := s.adminReq(t, http.MethodGet, path, testAdminKey, "")
		require.Equal(t, http.StatusOK, code)
		items, ok := body["items"].([]any)
		assert.True(t, ok, "%s items must be an array, not null", path)
		assert.Empty(t, items)
	}
}
