package scenario

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/andrescamacho/bikesim-go/internal/application/logging"
	"github.com/andrescamacho/bikesim-go/internal/application/session/commands"
	"github.com/andrescamacho/bikesim-go/internal/domain/market"
)

// Sheet names of a scenario workbook
const (
	SheetMarkets     = "Markets"
	SheetBikeTypes   = "BikeTypes"
	SheetCompetitors = "Competitors"
	SheetDemand      = "Demand"
	SheetSensitivity = "Sensitivity"
	SheetPrices      = "Prices"
	SheetStock       = "Stock"
	SheetStrategy    = "Strategy"
)

var sheetHeaders = map[string][]string{
	SheetMarkets:     {"Name", "Location", "MonthlyCapacity", "ElasticityFactor", "TransportHome", "TransportForeign", "GreenCity", "MountainBike", "RoadBike", "CityBike"},
	SheetBikeTypes:   {"Name", "SkilledHours", "UnskilledHours"},
	SheetCompetitors: {"Name", "Strategy", "Resources", "MarketPresence", "Aggressiveness", "Efficiency"},
	SheetDemand:      {"Market", "BikeType", "Percentage"},
	SheetSensitivity: {"Market", "Segment", "Percentage"},
	SheetPrices:      {"BikeType", "Segment", "Price"},
	SheetStock:       {"BikeType", "Segment", "Quantity", "UnitCost"},
	SheetStrategy:    {"DemandBoost", "DemandModifier"},
}

var sheetOrder = []string{
	SheetMarkets, SheetBikeTypes, SheetCompetitors, SheetDemand,
	SheetSensitivity, SheetPrices, SheetStock, SheetStrategy,
}

// WorkbookLoader reads scenarios from .xlsx files.
// Markets and BikeTypes are required; every other sheet is optional.
type WorkbookLoader struct{}

// NewWorkbookLoader creates a loader
func NewWorkbookLoader() *WorkbookLoader {
	return &WorkbookLoader{}
}

// Load implements commands.ScenarioLoader
func (l *WorkbookLoader) Load(ctx context.Context, path string) (*commands.Scenario, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return nil, fmt.Errorf("invalid scenario file %s: only .xlsx workbooks are supported", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open scenario workbook: %w", err)
	}
	defer f.Close()

	s, err := l.parse(f)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Scenario workbook loaded", map[string]interface{}{
		"path":        path,
		"markets":     len(s.Markets),
		"bike_types":  len(s.BikeTypes),
		"competitors": len(s.Competitors),
	})
	return s, nil
}

func (l *WorkbookLoader) parse(f *excelize.File) (*commands.Scenario, error) {
	s := &commands.Scenario{}

	markets, err := readSheet(f, SheetMarkets, true)
	if err != nil {
		return nil, err
	}
	for _, r := range markets {
		entry := commands.MarketEntry{
			Name:     r.str("Name"),
			Location: r.str("Location"),
			Factors:  market.DefaultLocationFactors(),
		}
		if entry.Location == "" {
			entry.Location = entry.Name
		}
		if entry.MonthlyCapacity, err = r.integer("MonthlyCapacity", 0); err != nil {
			return nil, err
		}
		if entry.ElasticityFactor, err = r.float("ElasticityFactor", 1.0); err != nil {
			return nil, err
		}
		if entry.TransportHome, err = r.money("TransportHome"); err != nil {
			return nil, err
		}
		if entry.TransportForeign, err = r.money("TransportForeign"); err != nil {
			return nil, err
		}
		if entry.Factors.GreenCity, err = r.float("GreenCity", entry.Factors.GreenCity); err != nil {
			return nil, err
		}
		if entry.Factors.MountainBike, err = r.float("MountainBike", entry.Factors.MountainBike); err != nil {
			return nil, err
		}
		if entry.Factors.RoadBike, err = r.float("RoadBike", entry.Factors.RoadBike); err != nil {
			return nil, err
		}
		if entry.Factors.CityBike, err = r.float("CityBike", entry.Factors.CityBike); err != nil {
			return nil, err
		}
		s.Markets = append(s.Markets, entry)
	}

	bikes, err := readSheet(f, SheetBikeTypes, true)
	if err != nil {
		return nil, err
	}
	for _, r := range bikes {
		entry := commands.BikeTypeEntry{Name: r.str("Name")}
		if entry.SkilledHours, err = r.float("SkilledHours", 0); err != nil {
			return nil, err
		}
		if entry.UnskilledHours, err = r.float("UnskilledHours", 0); err != nil {
			return nil, err
		}
		s.BikeTypes = append(s.BikeTypes, entry)
	}

	competitors, err := readSheet(f, SheetCompetitors, false)
	if err != nil {
		return nil, err
	}
	for _, r := range competitors {
		entry := commands.CompetitorEntry{Name: r.str("Name"), Strategy: r.str("Strategy")}
		if entry.Resources, err = r.money("Resources"); err != nil {
			return nil, err
		}
		if entry.MarketPresence, err = r.float("MarketPresence", 0); err != nil {
			return nil, err
		}
		if entry.Aggressiveness, err = r.float("Aggressiveness", 0); err != nil {
			return nil, err
		}
		if entry.Efficiency, err = r.float("Efficiency", 0); err != nil {
			return nil, err
		}
		s.Competitors = append(s.Competitors, entry)
	}

	demand, err := readSheet(f, SheetDemand, false)
	if err != nil {
		return nil, err
	}
	for _, r := range demand {
		entry := commands.DemandEntry{Market: r.str("Market"), BikeType: r.str("BikeType")}
		if entry.Percentage, err = r.float("Percentage", 0); err != nil {
			return nil, err
		}
		s.Demand = append(s.Demand, entry)
	}

	sensitivity, err := readSheet(f, SheetSensitivity, false)
	if err != nil {
		return nil, err
	}
	for _, r := range sensitivity {
		entry := commands.SensitivityEntry{Market: r.str("Market"), Segment: r.str("Segment")}
		if entry.Percentage, err = r.float("Percentage", 0); err != nil {
			return nil, err
		}
		s.Sensitivities = append(s.Sensitivities, entry)
	}

	prices, err := readSheet(f, SheetPrices, false)
	if err != nil {
		return nil, err
	}
	for _, r := range prices {
		entry := commands.PriceEntry{BikeType: r.str("BikeType"), Segment: r.str("Segment")}
		if entry.Price, err = r.money("Price"); err != nil {
			return nil, err
		}
		s.Prices = append(s.Prices, entry)
	}

	stock, err := readSheet(f, SheetStock, false)
	if err != nil {
		return nil, err
	}
	for _, r := range stock {
		entry := commands.StockEntry{BikeType: r.str("BikeType"), Segment: r.str("Segment")}
		if entry.Quantity, err = r.integer("Quantity", 0); err != nil {
			return nil, err
		}
		if entry.UnitCost, err = r.money("UnitCost"); err != nil {
			return nil, err
		}
		s.OpeningStock = append(s.OpeningStock, entry)
	}

	strategy, err := readSheet(f, SheetStrategy, false)
	if err != nil {
		return nil, err
	}
	if len(strategy) > 0 {
		effects := market.NeutralBusinessEffects()
		if effects.DemandBoost, err = strategy[0].float("DemandBoost", 0); err != nil {
			return nil, err
		}
		if effects.DemandModifier, err = strategy[0].float("DemandModifier", 1.0); err != nil {
			return nil, err
		}
		s.Effects = &effects
	}

	return s, nil
}

// row is one data line keyed by header name
type row struct {
	sheet  string
	line   int
	values map[string]string
}

func (r row) str(column string) string {
	return strings.TrimSpace(r.values[column])
}

func (r row) float(column string, fallback float64) (float64, error) {
	raw := r.str(column)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, r.cellError(column, raw, err)
	}
	return v, nil
}

func (r row) integer(column string, fallback int) (int, error) {
	raw := r.str(column)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, r.cellError(column, raw, err)
	}
	return v, nil
}

func (r row) money(column string) (decimal.Decimal, error) {
	raw := r.str(column)
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, r.cellError(column, raw, err)
	}
	return v, nil
}

func (r row) cellError(column, raw string, err error) error {
	return fmt.Errorf("sheet %s row %d column %s: invalid value %q: %w", r.sheet, r.line, column, raw, err)
}

// readSheet returns the data rows of a sheet; the first row names the columns
func readSheet(f *excelize.File, sheet string, required bool) ([]row, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		if required {
			return nil, fmt.Errorf("missing required sheet %s", sheet)
		}
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = canonicalColumn(sheet, name)
	}

	var out []row
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		values := make(map[string]string, len(header))
		for c, name := range header {
			if c < len(cells) && name != "" {
				values[name] = cells[c]
			}
		}
		out = append(out, row{sheet: sheet, line: i + 2, values: values})
	}
	return out, nil
}

// canonicalColumn matches header cells case-insensitively and ignoring spaces
func canonicalColumn(sheet, name string) string {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	for _, known := range sheetHeaders[sheet] {
		if strings.ToLower(known) == normalized {
			return known
		}
	}
	return ""
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
