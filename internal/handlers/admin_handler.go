package handlers

import (
	"net/http"

	"court-booking/internal/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AdminHandler struct {
	app      *pocketbase.PocketBase
	bookings *services.BookingService
}

func NewAdminHandler(app *pocketbase.PocketBase, bookings *services.BookingService) *AdminHandler {
	return &AdminHandler{
		app:      app,
		bookings: bookings,
	}
}

// MoveParticipant - Re-seat a confirmed participant; swaps when the
// target slot is taken. Routes binding this must require superuser auth.
func (h *AdminHandler) MoveParticipant(e *core.RequestEvent) error {
	courtID := e.Request.PathValue("courtId")

	var req struct {
		UserID    string `json:"user_id"`
		SlotIndex int    `json:"slot_index"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.UserID == "" {
		return apis.NewBadRequestError("user_id is required", nil)
	}

	if err := h.bookings.MoveParticipant(e.Request.Context(), courtID, req.UserID, req.SlotIndex); err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message":    "Participant moved",
		"user_id":    req.UserID,
		"slot_index": req.SlotIndex,
	})
}
