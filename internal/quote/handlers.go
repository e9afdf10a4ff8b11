package quote

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/McCollisters/autovista-api-sub002/internal/common"
	"github.com/McCollisters/autovista-api-sub002/internal/portal"
)

// Handler wires the quote service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Validate: validator.New()}
}

// Routes mounts the portal-scoped quote endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/quotes", h.Create)
	r.Get("/quotes", h.List)
	r.Get("/quotes/{quoteID}", h.Get)
}

type locationPayload struct {
	City  string `json:"city"`
	State string `json:"state" validate:"required,len=2,alpha"`
	Zip   string `json:"zip"`
}

type vehiclePayload struct {
	Make       string `json:"make" validate:"required"`
	Model      string `json:"model" validate:"required"`
	Year       int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	VIN        string `json:"vin"`
	Class      string `json:"pricingClass" validate:"required"`
	Inoperable bool   `json:"isInoperable"`
	Transport  string `json:"transportType" validate:"required"`
}

type createRequest struct {
	Origin      locationPayload  `json:"origin" validate:"required"`
	Destination locationPayload  `json:"destination" validate:"required"`
	Miles       float64          `json:"miles" validate:"required,gt=0"`
	Vehicles    []vehiclePayload `json:"vehicles" validate:"required,min=1,dive"`
}

// Create prices a new order for the authenticated portal.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := portal.FromContext(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "portal not resolved", nil)
		return
	}
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid JSON body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "validation failed", validationDetails(err))
		return
	}

	in := CreateInput{
		Origin:      Location{City: req.Origin.City, State: strings.ToUpper(req.Origin.State), Zip: req.Origin.Zip},
		Destination: Location{City: req.Destination.City, State: strings.ToUpper(req.Destination.State), Zip: req.Destination.Zip},
		Miles:       req.Miles,
	}
	for _, v := range req.Vehicles {
		in.Vehicles = append(in.Vehicles, VehicleInput{
			Make:       v.Make,
			Model:      v.Model,
			Year:       v.Year,
			VIN:        v.VIN,
			Class:      v.Class,
			Inoperable: v.Inoperable,
			Transport:  v.Transport,
		})
	}

	q, err := h.Svc.Create(r.Context(), p, in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": q})
}

// Get returns one quote belonging to the authenticated portal.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := portal.FromContext(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "portal not resolved", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "quoteID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid quote id", nil)
		return
	}
	q, err := h.Svc.Get(r.Context(), p.ID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "quote not found", nil)
			return
		}
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": q})
}

// List returns the portal's quotes newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := portal.FromContext(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "portal not resolved", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	quotes, total, err := h.Svc.List(r.Context(), p.ID, page, perPage)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": quotes,
		"meta": common.NewPagination(page, perPage, total),
	})
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, map[string]string{
			"field": fe.Namespace(),
			"rule":  fe.Tag(),
		})
	}
	return out
}
