package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/salon-ops/internal/calc"
	"github.com/Dan9191/salon-ops/internal/models"
	"github.com/Dan9191/salon-ops/internal/report"
	"github.com/Dan9191/salon-ops/internal/repository"
	"github.com/Dan9191/salon-ops/internal/service"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "salon-ops-api"

// Handler exposes the service over HTTP/JSON
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler creates a handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterPublic registers routes that need no credentials
func (h *Handler) RegisterPublic(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
}

// RegisterProtected registers routes that require an authenticated user
func (h *Handler) RegisterProtected(r *mux.Router) {
	r.HandleFunc("/costs", h.GetFixedCosts).Methods(http.MethodGet)
	r.HandleFunc("/costs", h.UpdateFixedCosts).Methods(http.MethodPost)
	r.HandleFunc("/costs/total", h.FixedCostsTotal).Methods(http.MethodGet)

	r.HandleFunc("/forecast", h.Forecast).Methods(http.MethodPost)

	r.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id:[0-9]+}", h.UpdateCategory).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id:[0-9]+}", h.DeleteCategory).Methods(http.MethodDelete)

	r.HandleFunc("/cost-items", h.ListCostItems).Methods(http.MethodGet)
	r.HandleFunc("/cost-items", h.CreateCostItem).Methods(http.MethodPost)
	r.HandleFunc("/cost-items/{id:[0-9]+}", h.GetCostItem).Methods(http.MethodGet)
	r.HandleFunc("/cost-items/{id:[0-9]+}", h.UpdateCostItem).Methods(http.MethodPut)
	r.HandleFunc("/cost-items/{id:[0-9]+}", h.DeleteCostItem).Methods(http.MethodDelete)

	r.HandleFunc("/project-summary", h.ProjectSummary).Methods(http.MethodGet)
	r.HandleFunc("/project-summary/export.xml", h.ExportProjectSummary).Methods(http.MethodGet)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": ServiceName})
}

// Login exchanges credentials for a bearer token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !h.decode(w, r, &creds) {
		return
	}
	token, err := h.svc.Login(creds)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, token)
}

// GetFixedCosts returns the fixed-cost record
func (h *Handler) GetFixedCosts(w http.ResponseWriter, r *http.Request) {
	costs, err := h.svc.GetFixedCosts(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, costs)
}

// UpdateFixedCosts replaces the fixed-cost record
func (h *Handler) UpdateFixedCosts(w http.ResponseWriter, r *http.Request) {
	var costs models.FixedCosts
	if !h.decode(w, r, &costs) {
		return
	}
	saved, err := h.svc.UpdateFixedCosts(r.Context(), &costs)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

// FixedCostsTotal returns the monthly fixed-cost total
func (h *Handler) FixedCostsTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.FixedCostsTotal(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]models.Money{"total_monthly_fixed_costs": models.NewMoney(total)})
}

// Forecast computes a monthly forecast from operational inputs
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	inputs := models.OperationalInputs{NumStylists: 1}
	if !h.decode(w, r, &inputs) {
		return
	}
	snapshot, err := h.svc.Forecast(r.Context(), inputs)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}

// ListCategories returns all cost categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a cost category
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.CostCategory
	if !h.decode(w, r, &c) {
		return
	}
	created, err := h.svc.CreateCategory(r.Context(), &c)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// UpdateCategory replaces a cost category
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var c models.CostCategory
	if !h.decode(w, r, &c) {
		return
	}
	updated, err := h.svc.UpdateCategory(r.Context(), id, &c)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory removes a cost category and its items
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCostItems returns cost items, filtered by ?category_id= and ?status=
func (h *Handler) ListCostItems(w http.ResponseWriter, r *http.Request) {
	var filter repository.ItemFilter
	query := r.URL.Query()
	if raw := query.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid category_id: %q", raw))
			return
		}
		filter.CategoryID = &id
	}
	if raw := query.Get("status"); raw != "" {
		status := models.CostItemStatus(raw)
		filter.Status = &status
	}

	items, err := h.svc.ListCostItems(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

// GetCostItem returns one cost item
func (h *Handler) GetCostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	item, err := h.svc.GetCostItem(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

// CreateCostItem records spend against a category
func (h *Handler) CreateCostItem(w http.ResponseWriter, r *http.Request) {
	var item models.CostItem
	if !h.decode(w, r, &item) {
		return
	}
	created, err := h.svc.CreateCostItem(r.Context(), &item)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// UpdateCostItem replaces a cost item
func (h *Handler) UpdateCostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var item models.CostItem
	if !h.decode(w, r, &item) {
		return
	}
	updated, err := h.svc.UpdateCostItem(r.Context(), id, &item)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteCostItem removes a cost item
func (h *Handler) DeleteCostItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCostItem(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProjectSummary returns the project budget roll-up
func (h *Handler) ProjectSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.ProjectSummary(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// ExportProjectSummary returns the project budget roll-up as XML
func (h *Handler) ExportProjectSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.ProjectSummary(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="project-summary.xml"`)
	if err := report.WriteProjectSummary(w, summary); err != nil {
		h.log.Errorf("Failed to export project summary: %v", err)
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id: %q", raw))
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// writeServiceError maps service errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *calc.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, repository.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.Errorf("Request failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}
