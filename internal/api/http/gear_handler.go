package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/service"
)

type GearHandler struct {
	gearSvc service.GearService
}

func NewGearHandler(gearSvc service.GearService) *GearHandler {
	return &GearHandler{gearSvc: gearSvc}
}

type gearRequest struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	Condition      string `json:"condition"`
	DailyRateCents int32  `json:"daily_rate_cents"`
	Status         string `json:"status"`
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

func (h *GearHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req gearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validationf("invalid request body"))
		return
	}

	gear := &domain.Gear{
		OwnerID:        userID,
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Condition:      domain.GearCondition(req.Condition),
		DailyRateCents: req.DailyRateCents,
		Status:         domain.GearStatus(req.Status),
	}
	if err := h.gearSvc.AddGear(r.Context(), gear); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, gear)
}

func (h *GearHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	gear, err := h.gearSvc.GetGear(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, gear)
}

func (h *GearHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req gearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validationf("invalid request body"))
		return
	}

	gear := &domain.Gear{
		ID:             id,
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Condition:      domain.GearCondition(req.Condition),
		DailyRateCents: req.DailyRateCents,
		Status:         domain.GearStatus(req.Status),
	}
	updated, err := h.gearSvc.UpdateGear(r.Context(), userID, gear)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *GearHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.gearSvc.DeleteGear(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *GearHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	maxRate := int32(queryInt(q.Get("max_daily_rate_cents")))
	page, pageSize := pagination(r)

	items, total, err := h.gearSvc.SearchGear(r.Context(), q.Get("q"), q.Get("category"), maxRate, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *GearHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	page, pageSize := pagination(r)

	items, total, err := h.gearSvc.ListMyGear(r.Context(), userID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *GearHandler) Save(w http.ResponseWriter, r *http.Request) {
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

	if err := h.gearSvc.SaveGear(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *GearHandler) Unsave(w http.ResponseWriter, r *http.Request) {
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

	if err := h.gearSvc.UnsaveGear(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *GearHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.gearSvc.ListSavedGear(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// pathID parses a numeric {name} path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func pagination(r *http.Request) (int32, int32) {
	q := r.URL.Query()
	return int32(queryInt(q.Get("page"))), int32(queryInt(q.Get("page_size")))
}

func queryInt(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
