package modifier

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/McCollisters/autovista-api-sub002/internal/common"
	"github.com/McCollisters/autovista-api-sub002/internal/pricing"
)

// Handler exposes the administrative modifier endpoints. These manage the
// documents the quoting engine resolves against; they are not portal-facing
// and are expected to sit behind network-level access control.
type Handler struct {
	Store  *Store
	Cache  *Cache
	Logger zerolog.Logger
}

// Routes mounts the admin modifier endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/modifiers/global", h.GetGlobal)
	r.Put("/modifiers/global", h.PutGlobal)
	r.Get("/modifiers/portals/{portalID}", h.GetPortal)
	r.Put("/modifiers/portals/{portalID}", h.PutPortal)
}

// GetGlobal returns the current global modifier set document.
func (h *Handler) GetGlobal(w http.ResponseWriter, r *http.Request) {
	set, err := h.Store.Global(r.Context())
	if err != nil {
		if errors.Is(err, pricing.ErrMissingGlobalModifiers) {
			common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "global modifiers not configured", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unable to load global modifiers", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": set})
}

// PutGlobal replaces the global modifier set. Every cached resolution
// depends on the global document, so the global cache key is dropped and
// portal keys are left to expire with their TTL.
func (h *Handler) PutGlobal(w http.ResponseWriter, r *http.Request) {
	var set pricing.ModifierSet
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid JSON body", nil)
		return
	}
	if err := h.Store.UpsertGlobal(r.Context(), &set); err != nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unable to store global modifiers", nil)
		return
	}
	if err := h.Cache.Invalidate(r.Context(), CacheKey(nil)); err != nil {
		h.Logger.Warn().Err(err).Msg("global modifier cache invalidation failed")
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": set})
}

// GetPortal returns a portal's override document.
func (h *Handler) GetPortal(w http.ResponseWriter, r *http.Request) {
	portalID, err := uuid.Parse(chi.URLParam(r, "portalID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid portal id", nil)
		return
	}
	set, err := h.Store.ForPortal(r.Context(), portalID)
	if err != nil {
		if errors.Is(err, ErrNoPortalOverride) {
			common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "portal has no modifier override", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unable to load portal override", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": set})
}

// PutPortal stores or replaces a portal's override and invalidates that
// portal's cached resolution so the edit applies to the next quote.
func (h *Handler) PutPortal(w http.ResponseWriter, r *http.Request) {
	portalID, err := uuid.Parse(chi.URLParam(r, "portalID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid portal id", nil)
		return
	}
	var set pricing.ModifierSet
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid JSON body", nil)
		return
	}
	if err := h.Store.UpsertPortal(r.Context(), portalID, &set); err != nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "unable to store portal override", nil)
		return
	}
	if err := h.Cache.Invalidate(r.Context(), CacheKey(&portalID)); err != nil {
		h.Logger.Warn().Err(err).Str("portal_id", portalID.String()).Msg("portal modifier cache invalidation failed")
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": set})
}
