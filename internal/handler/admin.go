package handler // handler defines http handlers

import (
	"errors"   // errors provides sentinel comparisons
	"log"      // log reports snapshot export failures
	"net/http" // http defines status code constants
	"net/url"  // url decodes the identity key path parameter
	"strings"  // strings trims request fields

	"github.com/labstack/echo/v4" // echo framework provides context and JSON helpers

	"github.com/iliyamo/event-checkin/internal/config"     // app configuration
	"github.com/iliyamo/event-checkin/internal/guestlist"  // guestlist exports directory snapshots
	"github.com/iliyamo/event-checkin/internal/model"      // model defines record types
	"github.com/iliyamo/event-checkin/internal/repository" // repository holds data access layer
	"github.com/iliyamo/event-checkin/internal/seatcode"   // seatcode validates seat codes
)

// AdminHandler bundles repositories for the authenticated admin API.  The
// AdminKey middleware runs before every method here; the handlers assume
// the caller is already authorized.
type AdminHandler struct {
	Cfg      config.Config
	Guests   *repository.GuestRepo
	Checkins *repository.CheckinRepo
}

// NewAdminHandler constructs an AdminHandler and panics if a repository is nil.
func NewAdminHandler(cfg config.Config, g *repository.GuestRepo, c *repository.CheckinRepo) *AdminHandler {
	if g == nil || c == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Guests: g, Checkins: c}
}

// guestReq is the JSON body shared by guest create and update.
type guestReq struct {
	Name   string `json:"name"`    // display name; identity key is derived from it
	Seat   string `json:"seat"`    // seat code, validated and normalized
	SeatEN string `json:"seat_en"` // optional label, defaults to "Table <seat>"
}

// ListCheckins handles GET /api/admin/checkins and returns the full log,
// most recent first.
func (h *AdminHandler) ListCheckins(c echo.Context) error {
	items, err := h.Checkins.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []model.Checkin{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListGuests handles GET /api/admin/guests and returns the directory
// ordered by seat then display name.
func (h *AdminHandler) ListGuests(c echo.Context) error {
	items, err := h.Guests.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []model.Guest{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateGuest handles POST /api/admin/guest and adds one guest record.
func (h *AdminHandler) CreateGuest(c echo.Context) error {
	var body guestReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	seat, err := seatcode.Normalize(body.Seat)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat code (expect A1..L9)"})
	}
	seatEN := strings.TrimSpace(body.SeatEN)
	if seatEN == "" {
		seatEN = seatcode.Label(seat)
	}

	if _, err := h.Guests.Create(c.Request().Context(), name, seat, seatEN); err != nil {
		return h.guestError(c, err)
	}
	h.exportSnapshot(c)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// UpdateGuest handles PUT /api/admin/guest/:name.  The path parameter is
// the current identity key; the body carries the new values.  Renaming the
// guest (changing the identity key itself) is allowed.
func (h *AdminHandler) UpdateGuest(c echo.Context) error {
	key := identityParam(c)
	var body guestReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	seat, err := seatcode.Normalize(body.Seat)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat code (expect A1..L9)"})
	}
	seatEN := strings.TrimSpace(body.SeatEN)
	if seatEN == "" {
		seatEN = seatcode.Label(seat)
	}

	if _, err := h.Guests.Update(c.Request().Context(), key, name, seat, seatEN); err != nil {
		return h.guestError(c, err)
	}
	h.exportSnapshot(c)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// DeleteGuest handles DELETE /api/admin/guest/:name.  Deleting a missing
// guest succeeds; the operation is idempotent.
func (h *AdminHandler) DeleteGuest(c echo.Context) error {
	key := identityParam(c)
	if err := h.Guests.Delete(c.Request().Context(), key); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.exportSnapshot(c)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// identityParam extracts the :name path parameter as an identity key.
// Names routinely contain spaces, so the raw segment arrives
// percent-encoded and must be unescaped before normalization.
func identityParam(c echo.Context) string {
	raw := c.Param("name")
	if dec, err := url.PathUnescape(raw); err == nil {
		raw = dec
	}
	return model.IdentityKey(raw)
}

// guestError maps repository sentinels onto HTTP responses.
func (h *AdminHandler) guestError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrGuestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
	case errors.Is(err, repository.ErrDuplicateName):
		return c.JSON(http.StatusConflict, echo.Map{"error": "guest name already exists"})
	case errors.Is(err, repository.ErrDuplicateSeat):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already assigned"})
	case errors.Is(err, repository.ErrEmptyName):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}

// exportSnapshot rewrites the guest list file after a mutation.  The store
// already holds the authoritative state, so an export failure is logged
// and does not fail the request.
func (h *AdminHandler) exportSnapshot(c echo.Context) {
	if err := guestlist.Export(c.Request().Context(), h.Guests, h.Cfg.GuestsCSV); err != nil {
		log.Printf("guestlist: export to %s failed: %v", h.Cfg.GuestsCSV, err)
	}
}
