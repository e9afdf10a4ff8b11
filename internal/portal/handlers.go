package portal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/McCollisters/autovista-api-sub002/internal/common"
	"github.com/McCollisters/autovista-api-sub002/internal/pricing"
)

// Handler exposes the administrative portal endpoints. Like the modifier
// admin surface these are not portal-facing and sit behind network-level
// access control.
type Handler struct {
	Store  *Store
	Logger zerolog.Logger
}

// Routes mounts the admin portal endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/portals", h.Create)
	r.Get("/portals/{portalID}", h.Get)
}

type createPortalRequest struct {
	Name        string             `json:"name"`
	Options     Options            `json:"options"`
	CustomRates []pricing.RateBand `json:"customRates"`
}

// Create registers a new reseller portal and mints its API key.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPortalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid JSON body", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "name is required", nil)
		return
	}

	p, err := h.Store.Create(r.Context(), &Portal{
		Name:        strings.TrimSpace(req.Name),
		APIKey:      uuid.NewString(),
		Options:     req.Options,
		CustomRates: req.CustomRates,
	})
	if err != nil {
		h.Logger.Error().Err(err).Msg("portal create failed")
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unable to create portal", nil)
		return
	}

	// The key is returned once, on creation; reads never echo it.
	common.JSON(w, http.StatusCreated, map[string]any{
		"data":   p,
		"apiKey": p.APIKey,
	})
}

// Get returns a portal record without its API key.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	portalID, err := uuid.Parse(chi.URLParam(r, "portalID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid portal id", nil)
		return
	}
	p, err := h.Store.ByID(r.Context(), portalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "portal not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unable to load portal", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": p})
}
