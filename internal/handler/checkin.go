package handler // handler defines http handlers

import (
	"context"  // context for the detached event publish
	"errors"   // errors provides sentinel comparisons
	"net/http" // http defines status code constants
	"strings"  // strings trims the submitted name

	"github.com/labstack/echo/v4" // echo framework provides context and JSON helpers

	"github.com/iliyamo/event-checkin/internal/config"     // app configuration
	"github.com/iliyamo/event-checkin/internal/model"      // model defines the check-in record
	"github.com/iliyamo/event-checkin/internal/queue"      // queue defines the published event payload
	"github.com/iliyamo/event-checkin/internal/repository" // repository holds data access layer
	queue_publisher "github.com/iliyamo/event-checkin/internal/service"
)

// notFoundMsg is the bilingual message shown to attendees whose name is
// not on the guest list.
const notFoundMsg = "ไม่พบชื่อในระบบ / Name not found."

// CheckinHandler serves the public check-in endpoint.
type CheckinHandler struct {
	Cfg      config.Config
	Guests   *repository.GuestRepo
	Checkins *repository.CheckinRepo
}

// NewCheckinHandler constructs a CheckinHandler and panics if a repository is nil.
func NewCheckinHandler(cfg config.Config, g *repository.GuestRepo, c *repository.CheckinRepo) *CheckinHandler {
	if g == nil || c == nil {
		panic("nil repository passed to NewCheckinHandler")
	}
	return &CheckinHandler{Cfg: cfg, Guests: g, Checkins: c}
}

// Checkin handles POST /checkin.  The submitted name is matched against
// the guest directory by substring; every attempt, matched or not, appends
// exactly one event to the check-in log.  A name that is not on the list
// is a normal response carrying success=false, not an HTTP error.
func (h *CheckinHandler) Checkin(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	ua := c.Request().UserAgent()
	if ua == "" {
		ua = "-"
	}
	ip := c.RealIP()
	if ip == "" {
		ip = "-"
	}
	ctx := c.Request().Context()

	guest, err := h.Guests.FindBySubstring(ctx, name)
	if err != nil && !errors.Is(err, repository.ErrGuestNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if guest == nil {
		// No match: log the raw input with an empty seat.
		ev := &model.Checkin{Name: name, UserAgent: ua, IP: ip}
		if err := h.Checkins.Insert(ctx, ev); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		h.publish(ev, false, false)
		return c.JSON(http.StatusOK, echo.Map{"success": false, "error": notFoundMsg})
	}

	// The "already" flag is derived from the log before this attempt is
	// appended.  Two concurrent identical submissions can both read false
	// here; the consequence is a duplicate first-time report, nothing more.
	already, err := h.Checkins.SeenBefore(ctx, guest.DisplayName, guest.Seat)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	seat, seatEN := guest.Seat, guest.SeatEN
	ev := &model.Checkin{
		Name:      guest.DisplayName, // canonical name, not the raw input
		Seat:      &seat,
		SeatEN:    &seatEN,
		UserAgent: ua,
		IP:        ip,
	}
	if err := h.Checkins.Insert(ctx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.publish(ev, true, already)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"seat":    seat,
		"seat_en": seatEN,
		"already": already,
	})
}

// publish sends the recorded event to the broker when one is configured.
// Publishing is fire-and-forget: the check-in response never waits on it
// and failures are only logged by the publisher.
func (h *CheckinHandler) publish(ev *model.Checkin, matched, already bool) {
	if h.Cfg.BrokerURL == "" {
		return
	}
	event := queue.CheckinRecordedEvent{
		ID:         ev.ID,
		Name:       ev.Name,
		Seat:       ev.Seat,
		SeatEN:     ev.SeatEN,
		Matched:    matched,
		Already:    already,
		UserAgent:  ev.UserAgent,
		IP:         ev.IP,
		OccurredAt: ev.CreatedAt,
	}
	go func() {
		_ = queue_publisher.PublishCheckinRecorded(context.Background(), h.Cfg.BrokerURL, event)
	}()
}
