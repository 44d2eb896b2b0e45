package bases

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

// Handler wires base record endpoints.
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

// MountRoutes registers base routes. Reads are open to any authenticated
// user; creation and edits need Trusted+, deletion Admin+.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listBases)
	r.Get("/{id}", h.getBase)
	r.Get("/{id}/alerts", h.refreshAlerts)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRole(roles.Trusted))
		r.Post("/", h.createBase)
		r.Patch("/{id}", h.updateBase)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRole(roles.Admin))
		r.Delete("/{id}", h.deleteBase)
	})
}

type createBaseRequest struct {
	Name      string          `json:"name" validate:"required"`
	Region    string          `json:"region" validate:"required"`
	RegionKey string          `json:"regionKey"`
	SubRegion string          `json:"subRegion" validate:"required"`
	Landmark  string          `json:"landmark"`
	Notes     string          `json:"notes"`
	Checklist []ChecklistItem `json:"checklist"`
}

func (h *Handler) createBase(w http.ResponseWriter, r *http.Request) {
	var req createBaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "name, region, and subRegion are required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "name, region, and subRegion are required")
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	base, err := h.service.Create(r.Context(), p.UserID, CreateInput{
		Name:      req.Name,
		Region:    req.Region,
		RegionKey: req.RegionKey,
		SubRegion: req.SubRegion,
		Landmark:  req.Landmark,
		Notes:     req.Notes,
		Checklist: req.Checklist,
	})
	if err != nil {
		h.logger.Error("create base", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, base)
}

func (h *Handler) listBases(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list bases", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Base{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) getBase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid base id")
		return
	}
	base, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, base)
}

type updateBaseRequest struct {
	Name      *string         `json:"name"`
	Region    *string         `json:"region"`
	RegionKey *string         `json:"regionKey"`
	SubRegion *string         `json:"subRegion"`
	Landmark  *string         `json:"landmark"`
	Notes     *string         `json:"notes"`
	Checklist []ChecklistItem `json:"checklist"`
}

func (h *Handler) updateBase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid base id")
		return
	}
	var req updateBaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}
	base, err := h.service.Update(r.Context(), id, UpdateInput{
		Name:      req.Name,
		Region:    req.Region,
		RegionKey: req.RegionKey,
		SubRegion: req.SubRegion,
		Landmark:  req.Landmark,
		Notes:     req.Notes,
		Checklist: req.Checklist,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, base)
}

func (h *Handler) deleteBase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid base id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Base deleted."})
}

func (h *Handler) refreshAlerts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid base id")
		return
	}
	result, err := h.service.RefreshAlerts(r.Context(), id)
	if err != nil {
		h.logger.Error("refresh alerts", slog.Int64("base_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
