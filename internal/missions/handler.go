package missions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/siege-works/garrison/internal/platform/httpx"
	"github.com/siege-works/garrison/internal/rbac"
	"github.com/siege-works/garrison/internal/roles"
	"github.com/siege-works/garrison/internal/shared"
)

// Handler wires mission record endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	rbac      rbac.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, rbacMW rbac.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		rbac:      rbacMW,
		validator: validator.New(),
	}
}

// MountRoutes registers mission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listMissions)
	r.Get("/{id}", h.getMission)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRole(roles.Trusted))
		r.Post("/", h.createMission)
		r.Patch("/{id}", h.updateMission)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRole(roles.Admin))
		r.Delete("/{id}", h.deleteMission)
	})
}

type createMissionRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Status      string          `json:"status" validate:"omitempty,oneof=Planning Active Complete"`
	Checklist   []ChecklistItem `json:"checklist"`
	AssignedTo  []int64         `json:"assignedTo"`
}

func (h *Handler) createMission(w http.ResponseWriter, r *http.Request) {
	var req createMissionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "title is required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "title is required")
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	mission, err := h.service.Create(r.Context(), p.UserID, CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Checklist:   req.Checklist,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		h.logger.Error("create mission", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, mission)
}

func (h *Handler) listMissions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list missions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Mission{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) getMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid mission id")
		return
	}
	mission, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, mission)
}

type updateMissionRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *string         `json:"status" validate:"omitempty,oneof=Planning Active Complete"`
	Checklist   []ChecklistItem `json:"checklist"`
	AssignedTo  []int64         `json:"assignedTo"`
}

func (h *Handler) updateMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid mission id")
		return
	}
	var req updateMissionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid status")
		return
	}
	mission, err := h.service.Update(r.Context(), id, UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Checklist:   req.Checklist,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, mission)
}

func (h *Handler) deleteMission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid mission id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Mission deleted."})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
