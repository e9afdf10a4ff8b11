package quote

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/McCollisters/autovista-api-sub002/internal/common"
	"github.com/McCollisters/autovista-api-sub002/internal/obs"
	"github.com/McCollisters/autovista-api-sub002/internal/portal"
	"github.com/McCollisters/autovista-api-sub002/internal/pricing"
	"github.com/McCollisters/autovista-api-sub002/internal/vehicle"
)

// Store persists quotes scoped to a portal.
type Store interface {
	Insert(ctx context.Context, q *Quote) error
	ByID(ctx context.Context, portalID, id uuid.UUID) (*Quote, error)
	ListByPortal(ctx context.Context, portalID uuid.UUID, page, perPage int) ([]Quote, int, error)
}

// ConfigSource resolves the effective modifier configuration for a portal.
type ConfigSource interface {
	Resolve(ctx context.Context, portalID *uuid.UUID) (pricing.Resolved, error)
}

// Enqueuer schedules post-creation side effects off the request path.
type Enqueuer interface {
	EnqueueQuoteCreated(ctx context.Context, quoteID, portalID uuid.UUID) error
}

// VehicleInput is one vehicle as submitted by the caller.
type VehicleInput struct {
	Make       string
	Model      string
	Year       int
	VIN        string
	Class      string
	Inoperable bool
	Transport  string
}

// CreateInput is the validated request to price a new order.
type CreateInput struct {
	Origin      Location
	Destination Location
	Miles       float64
	Vehicles    []VehicleInput
}

// Service computes and stores quotes.
type Service struct {
	quotes Store
	config ConfigSource
	tasks  Enqueuer
	clock  func() time.Time
	logger zerolog.Logger
}

func NewService(quotes Store, config ConfigSource, tasks Enqueuer, logger zerolog.Logger) *Service {
	return &Service{
		quotes: quotes,
		config: config,
		tasks:  tasks,
		clock:  time.Now,
		logger: logger,
	}
}

// Create prices every vehicle against the portal's effective configuration,
// aggregates the order totals and persists the quote.
func (s *Service) Create(ctx context.Context, p *portal.Portal, in CreateInput) (*Quote, error) {
	start := s.clock()
	if err := validateInput(in); err != nil {
		obs.QuotesComputedTotal.WithLabelValues(p.ID.String(), "rejected").Inc()
		return nil, err
	}

	cfg, err := s.config.Resolve(ctx, &p.ID)
	if err != nil {
		obs.QuotesComputedTotal.WithLabelValues(p.ID.String(), "error").Inc()
		return nil, common.NewAppError(common.CodeConfig, "pricing configuration unavailable", http.StatusServiceUnavailable, err)
	}

	ship := pricing.Shipment{
		Miles:            in.Miles,
		OriginState:      strings.ToUpper(in.Origin.State),
		DestinationState: strings.ToUpper(in.Destination.State),
		OriginZip:        in.Origin.Zip,
		DestinationZip:   in.Destination.Zip,
	}

	now := s.clock().UTC()
	q := &Quote{
		ID:          uuid.New(),
		PortalID:    p.ID,
		Status:      StatusQuoted,
		Origin:      in.Origin,
		Destination: in.Destination,
		Miles:       in.Miles,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	priced := make([]*pricing.VehiclePricing, 0, len(in.Vehicles))
	for _, v := range in.Vehicles {
		input := pricing.VehicleInput{
			Make:       v.Make,
			Model:      v.Model,
			Year:       v.Year,
			VIN:        v.VIN,
			Class:      vehicle.Class(v.Class),
			Inoperable: v.Inoperable,
			Transport:  vehicle.TransportType(v.Transport),
		}
		base := pricing.BaseRate(in.Miles, input.Class, p.Rates())
		vp := pricing.PriceVehicle(input, ship, base, cfg)
		priced = append(priced, &vp)

		q.Vehicles = append(q.Vehicles, Vehicle{
			Make:       v.Make,
			Model:      v.Model,
			Year:       v.Year,
			VIN:        v.VIN,
			Class:      input.Class,
			Inoperable: v.Inoperable,
			Transport:  input.Transport,
			Pricing:    &vp,
		})
		q.CalculatedQuotes = append(q.CalculatedQuotes, CalculatedQuote{VIN: v.VIN, VehiclePricing: vp})
	}
	q.TotalPricing = pricing.Aggregate(priced)

	if err := s.quotes.Insert(ctx, q); err != nil {
		obs.QuotesComputedTotal.WithLabelValues(p.ID.String(), "error").Inc()
		return nil, common.NewAppError(common.CodeInternal, "failed to store quote", http.StatusInternalServerError, err)
	}

	if s.tasks != nil {
		if err := s.tasks.EnqueueQuoteCreated(ctx, q.ID, p.ID); err != nil {
			// The quote is already stored; notification delivery is best effort.
			s.logger.Warn().Err(err).Str("quote_id", q.ID.String()).Msg("enqueue quote notification failed")
		}
	}

	obs.QuotesComputedTotal.WithLabelValues(p.ID.String(), "ok").Inc()
	obs.QuoteComputeDuration.Observe(float64(s.clock().Sub(start).Milliseconds()))
	obs.QuoteVehicleCount.Observe(float64(len(q.Vehicles)))
	return q, nil
}

// Get returns a single quote belonging to the portal.
func (s *Service) Get(ctx context.Context, portalID, id uuid.UUID) (*Quote, error) {
	return s.quotes.ByID(ctx, portalID, id)
}

// List returns the portal's quotes, newest first.
func (s *Service) List(ctx context.Context, portalID uuid.UUID, page, perPage int) ([]Quote, int, error) {
	return s.quotes.ListByPortal(ctx, portalID, page, perPage)
}

func validateInput(in CreateInput) error {
	if math.IsNaN(in.Miles) || math.IsInf(in.Miles, 0) || in.Miles <= 0 {
		return common.NewAppError(common.CodeBadRequest, "miles must be a positive number", http.StatusBadRequest, nil)
	}
	if len(in.Vehicles) == 0 {
		return common.NewAppError(common.CodeBadRequest, "at least one vehicle is required", http.StatusBadRequest, nil)
	}
	for i, v := range in.Vehicles {
		if !vehicle.Class(v.Class).IsValid() {
			return common.NewAppError(common.CodeBadRequest, "vehicle "+strconv.Itoa(i)+": unknown pricing class "+strconv.Quote(v.Class), http.StatusBadRequest, nil)
		}
		if !vehicle.TransportType(v.Transport).IsValid() {
			return common.NewAppError(common.CodeBadRequest, "vehicle "+strconv.Itoa(i)+": unknown transport type "+strconv.Quote(v.Transport), http.StatusBadRequest, nil)
		}
	}
	return nil
}
