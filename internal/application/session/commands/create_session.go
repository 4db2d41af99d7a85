package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/application/mediator"
	"github.com/andrescamacho/bikesim-go/internal/domain/competitor"
	"github.com/andrescamacho/bikesim-go/internal/domain/inventory"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
	"github.com/andrescamacho/bikesim-go/internal/domain/session"
	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

const (
	defaultStartMonth = 1
	defaultStartYear  = 2024
)

var defaultOpeningBalance = decimal.NewFromInt(80000)

// CreateSessionCommand starts a new session from the built-in scenario or a workbook
type CreateSessionCommand struct {
	Name         string
	ScenarioPath string
	// Zero values fall back to January 2024 and 80000.00
	StartMonth int
	StartYear  int
	Balance    decimal.Decimal
}

// CreateSessionResponse describes the created session
type CreateSessionResponse struct {
	SessionID    string
	Name         string
	Period       string
	Balance      decimal.Decimal
	Markets      int
	BikeTypes    int
	Competitors  int
	OpeningStock int
}

// CreateSessionDeps groups the handler's collaborators
type CreateSessionDeps struct {
	UnitOfWork     shared.UnitOfWork
	SessionRepo    session.Repository
	MarketRepo     market.MarketRepository
	DemandRepo     market.DemandConfigRepository
	StrategyStore  market.BusinessStrategyStore
	CompetitorRepo competitor.Repository
	BikeRepo       inventory.ProducedBikeRepository
	// Loader may be nil when workbooks are not supported
	Loader ScenarioLoader
}

// CreateSessionHandler handles the CreateSession command
type CreateSessionHandler struct {
	deps CreateSessionDeps
}

// NewCreateSessionHandler creates a new handler
func NewCreateSessionHandler(deps CreateSessionDeps) *CreateSessionHandler {
	return &CreateSessionHandler{deps: deps}
}

// Handle executes the CreateSession command
func (h *CreateSessionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateSessionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateSessionCommand")
	}

	scenario, err := h.loadScenario(ctx, cmd.ScenarioPath)
	if err != nil {
		return nil, err
	}

	start, err := startPeriod(cmd)
	if err != nil {
		return nil, err
	}
	balance := cmd.Balance
	if balance.IsZero() {
		balance = defaultOpeningBalance
	}

	sess, err := session.NewSession(cmd.Name, start, balance)
	if err != nil {
		return nil, err
	}

	response := &CreateSessionResponse{
		SessionID: sess.ID,
		Name:      sess.Name,
		Period:    sess.Period.String(),
		Balance:   sess.Balance,
	}

	err = h.deps.UnitOfWork.Do(ctx, func(ctx context.Context) error {
		if err := h.deps.SessionRepo.Add(ctx, sess); err != nil {
			return fmt.Errorf("failed to add session: %w", err)
		}
		return h.seed(ctx, sess, scenario, response)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Session created", map[string]interface{}{
		"session_id":  sess.ID,
		"name":        sess.Name,
		"period":      response.Period,
		"markets":     response.Markets,
		"bike_types":  response.BikeTypes,
		"competitors": response.Competitors,
	})
	return response, nil
}

func (h *CreateSessionHandler) loadScenario(ctx context.Context, path string) (*Scenario, error) {
	if path == "" {
		return DefaultScenario(), nil
	}
	if h.deps.Loader == nil {
		return nil, fmt.Errorf("scenario files are not supported by this build")
	}
	scenario, err := h.deps.Loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", path, err)
	}
	return scenario, nil
}

func startPeriod(cmd *CreateSessionCommand) (shared.Period, error) {
	month, year := cmd.StartMonth, cmd.StartYear
	if month == 0 {
		month = defaultStartMonth
	}
	if year == 0 {
		year = defaultStartYear
	}
	return shared.NewPeriod(month, year)
}

// seed persists the scenario. Names are resolved to the IDs assigned on save.
func (h *CreateSessionHandler) seed(ctx context.Context, sess *session.Session, scenario *Scenario, response *CreateSessionResponse) error {
	markets := make(map[string]*market.Market, len(scenario.Markets))
	for _, entry := range scenario.Markets {
		m, err := market.NewMarket(sess.ID, entry.Name, entry.Location, entry.MonthlyCapacity,
			entry.ElasticityFactor, entry.TransportHome, entry.TransportForeign)
		if err != nil {
			return err
		}
		m.Factors = entry.Factors
		if err := h.deps.MarketRepo.SaveMarket(ctx, m); err != nil {
			return fmt.Errorf("failed to save market %s: %w", entry.Name, err)
		}
		markets[m.Name] = m
	}
	response.Markets = len(markets)

	bikeTypes := make(map[string]*market.BikeType, len(scenario.BikeTypes))
	for _, entry := range scenario.BikeTypes {
		b, err := market.NewBikeType(sess.ID, entry.Name, entry.SkilledHours, entry.UnskilledHours)
		if err != nil {
			return err
		}
		if err := h.deps.MarketRepo.SaveBikeType(ctx, b); err != nil {
			return fmt.Errorf("failed to save bike type %s: %w", entry.Name, err)
		}
		bikeTypes[b.Name] = b
	}
	response.BikeTypes = len(bikeTypes)

	if err := h.seedDemandConfig(ctx, sess.ID, scenario, markets, bikeTypes); err != nil {
		return err
	}

	if scenario.Effects != nil && h.deps.StrategyStore != nil {
		if err := h.deps.StrategyStore.SetEffects(ctx, sess.ID, *scenario.Effects); err != nil {
			return fmt.Errorf("failed to save business strategy effects: %w", err)
		}
	}

	roster, err := buildRoster(sess.ID, scenario.Competitors)
	if err != nil {
		return err
	}
	for _, c := range roster {
		if err := h.deps.CompetitorRepo.Save(ctx, c); err != nil {
			return fmt.Errorf("failed to save competitor %s: %w", c.Name, err)
		}
	}
	response.Competitors = len(roster)

	for _, entry := range scenario.OpeningStock {
		b, ok := bikeTypes[entry.BikeType]
		if !ok {
			return fmt.Errorf("opening stock references unknown bike type %q", entry.BikeType)
		}
		segment, err := market.ParsePriceSegment(entry.Segment)
		if err != nil {
			return err
		}
		bikes := make([]*inventory.ProducedBike, entry.Quantity)
		for i := range bikes {
			bikes[i] = inventory.NewProducedBike(sess.ID, b.ID, segment, sess.Period, entry.UnitCost)
		}
		if err := h.deps.BikeRepo.SaveAll(ctx, bikes); err != nil {
			return fmt.Errorf("failed to save opening stock: %w", err)
		}
		response.OpeningStock += entry.Quantity
	}

	return nil
}

func (h *CreateSessionHandler) seedDemandConfig(
	ctx context.Context,
	sessionID string,
	scenario *Scenario,
	markets map[string]*market.Market,
	bikeTypes map[string]*market.BikeType,
) error {
	for _, entry := range scenario.Demand {
		m, b := markets[entry.Market], bikeTypes[entry.BikeType]
		if m == nil || b == nil {
			return fmt.Errorf("demand entry references unknown market %q or bike type %q", entry.Market, entry.BikeType)
		}
		if err := h.deps.DemandRepo.SetDemandPercentage(ctx, sessionID, m.ID, b.ID, entry.Percentage); err != nil {
			return fmt.Errorf("failed to save demand share: %w", err)
		}
	}

	for _, entry := range scenario.Sensitivities {
		m := markets[entry.Market]
		if m == nil {
			return fmt.Errorf("price sensitivity references unknown market %q", entry.Market)
		}
		segment, err := market.ParsePriceSegment(entry.Segment)
		if err != nil {
			return err
		}
		if err := h.deps.DemandRepo.SetPriceSensitivity(ctx, sessionID, m.ID, segment, entry.Percentage); err != nil {
			return fmt.Errorf("failed to save price sensitivity: %w", err)
		}
	}

	for _, entry := range scenario.Prices {
		b := bikeTypes[entry.BikeType]
		if b == nil {
			return fmt.Errorf("price references unknown bike type %q", entry.BikeType)
		}
		segment, err := market.ParsePriceSegment(entry.Segment)
		if err != nil {
			return err
		}
		if err := h.deps.DemandRepo.SetConfiguredPrice(ctx, sessionID, b.ID, segment, entry.Price); err != nil {
			return fmt.Errorf("failed to save configured price: %w", err)
		}
	}
	return nil
}

// buildRoster uses the scenario's competitors, or the default roster when it lists none
func buildRoster(sessionID string, entries []CompetitorEntry) ([]*competitor.Competitor, error) {
	if len(entries) == 0 {
		return competitor.DefaultRoster(sessionID), nil
	}
	roster := make([]*competitor.Competitor, 0, len(entries))
	for _, entry := range entries {
		strategy, err := competitor.ParseStrategy(entry.Strategy)
		if err != nil {
			return nil, err
		}
		c, err := competitor.NewCompetitor(sessionID, entry.Name, strategy, entry.Resources,
			entry.MarketPresence, entry.Aggressiveness, entry.Efficiency)
		if err != nil {
			return nil, err
		}
		roster = append(roster, c)
	}
	return roster, nil
}
