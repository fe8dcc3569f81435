package http

import (
	"context"
	"encoding/json"
	"net/http"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc   service.BookingService
	messagingSvc service.MessagingService
}

func NewBookingHandler(bookingSvc service.BookingService, messagingSvc service.MessagingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, messagingSvc: messagingSvc}
}

type createBookingRequest struct {
	GearID    int32  `json:"gear_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validationf("invalid request body"))
		return
	}
	if req.GearID <= 0 {
		respondError(w, domain.Validationf("gear_id is required"))
		return
	}

	booking, err := h.bookingSvc.CreateBookingRequest(r.Context(), userID, req.GearID, req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.bookingSvc.GetBooking(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type transitionRequest struct {
	Note string `json:"note"`
}

type transitionResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

// transition backs the accept/reject/cancel/mark-paid/complete actions; they
// differ only in the target status.
func (h *BookingHandler) transition(status domain.BookingStatus, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := UserIDFromContext(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, err)
			return
		}

		var req transitionRequest
		if r.Body != nil {
			// The note is optional and so is the body.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		booking, err := h.bookingSvc.AppendStatus(r.Context(), id, status, req.Note, userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, transitionResponse{Message: message, Booking: booking})
	}
}

func (h *BookingHandler) Accept() http.HandlerFunc {
	return h.transition(domain.BookingStatusAccepted, "booking accepted")
}

func (h *BookingHandler) Reject() http.HandlerFunc {
	return h.transition(domain.BookingStatusRejected, "booking rejected")
}

func (h *BookingHandler) Cancel() http.HandlerFunc {
	return h.transition(domain.BookingStatusCancelled, "booking cancelled")
}

func (h *BookingHandler) MarkPaid() http.HandlerFunc {
	return h.transition(domain.BookingStatusPaid, "booking marked as paid")
}

func (h *BookingHandler) Activate() http.HandlerFunc {
	return h.transition(domain.BookingStatusActive, "booking activated")
}

func (h *BookingHandler) Complete() http.HandlerFunc {
	return h.transition(domain.BookingStatusCompleted, "booking completed")
}

// MarkRead marks the booking's message thread read for the caller.
func (h *BookingHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.messagingSvc.MarkBookingThreadRead(r.Context(), id, userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *BookingHandler) ListOwnerRequests(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.bookingSvc.ListOwnerRequests)
}

func (h *BookingHandler) ListRenterRequests(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.bookingSvc.ListRenterRequests)
}

type bookingListFn func(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error)

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, fn bookingListFn) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	page, pageSize := pagination(r)

	items, total, err := fn(r.Context(), userID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}
