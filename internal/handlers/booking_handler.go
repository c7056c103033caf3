package handlers

import (
	"net/http"

	"court-booking/internal/services"
	"court-booking/internal/status"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type BookingHandler struct {
	app      *pocketbase.PocketBase
	bookings *services.BookingService
}

func NewBookingHandler(app *pocketbase.PocketBase, bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{
		app:      app,
		bookings: bookings,
	}
}

// GetMyBookings - All non-cancelled bookings of the authenticated user
func (h *BookingHandler) GetMyBookings(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	bookings, err := h.bookings.GetUserBookings(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// CreateRSVP - Mark the user as going on an outdoor court
func (h *BookingHandler) CreateRSVP(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	courtID := e.Request.PathValue("courtId")

	booking, err := h.bookings.CreateOutdoorBooking(e.Request.Context(), courtID, e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, booking)
}

// CancelRSVP - Mark the user as not going; no-op when not going
func (h *BookingHandler) CancelRSVP(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	courtID := e.Request.PathValue("courtId")

	if err := h.bookings.CancelOutdoorBooking(e.Request.Context(), courtID, e.Auth.Id); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "RSVP cancelled"})
}

// RequestSlot - Request a numbered slot on an indoor court; waitlists when full
func (h *BookingHandler) RequestSlot(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	courtID := e.Request.PathValue("courtId")

	booking, err := h.bookings.RequestIndoorSlot(e.Request.Context(), courtID, e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, booking)
}

// CancelBooking - Cancel an indoor booking; frees the slot and promotes
func (h *BookingHandler) CancelBooking(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	bookingID := e.Request.PathValue("bookingId")

	booking, err := h.bookings.GetBooking(e.Request.Context(), bookingID)
	if err != nil {
		return apiError(err)
	}
	if booking.UserID != e.Auth.Id && !e.Auth.IsSuperuser() {
		return apis.NewForbiddenError("Not your booking", nil)
	}

	if err := h.bookings.CancelIndoorBooking(e.Request.Context(), bookingID); err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Booking cancelled"})
}

// GetParticipants - Court roster: confirmed by slot, then the waitlist
func (h *BookingHandler) GetParticipants(e *core.RequestEvent) error {
	courtID := e.Request.PathValue("courtId")

	participants, err := h.bookings.GetCourtParticipants(e.Request.Context(), courtID)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"participants": participants,
		"total":        len(participants),
	})
}

// GetMyStatus - The user's active booking for a court, if any
func (h *BookingHandler) GetMyStatus(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	courtID := e.Request.PathValue("courtId")

	booking, err := h.bookings.GetBookingStatus(e.Request.Context(), courtID, e.Auth.Id)
	if err != nil {
		return apiError(err)
	}
	if booking == nil {
		return apis.NewNotFoundError("No active booking for this court", nil)
	}
	return e.JSON(http.StatusOK, booking)
}

// apiError maps engine errors onto API responses.
func apiError(err error) error {
	switch {
	case status.IsNotFound(err):
		return apis.NewNotFoundError(err.Error(), err)
	case status.IsConflict(err):
		return apis.NewApiError(http.StatusConflict, err.Error(), err)
	default:
		return apis.NewBadRequestError("Request failed: "+err.Error(), err)
	}
}
