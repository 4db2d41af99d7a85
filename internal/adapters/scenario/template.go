package scenario

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/andrescamacho/bikesim-go/internal/application/session/commands"
)

// WriteWorkbook saves a scenario in the layout WorkbookLoader reads
func WriteWorkbook(s *commands.Scenario, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	data := map[string][][]interface{}{}
	for _, m := range s.Markets {
		data[SheetMarkets] = append(data[SheetMarkets], []interface{}{
			m.Name, m.Location, m.MonthlyCapacity, m.ElasticityFactor,
			m.TransportHome.String(), m.TransportForeign.String(),
			m.Factors.GreenCity, m.Factors.MountainBike, m.Factors.RoadBike, m.Factors.CityBike,
		})
	}
	for _, b := range s.BikeTypes {
		data[SheetBikeTypes] = append(data[SheetBikeTypes], []interface{}{b.Name, b.SkilledHours, b.UnskilledHours})
	}
	for _, c := range s.Competitors {
		data[SheetCompetitors] = append(data[SheetCompetitors], []interface{}{
			c.Name, c.Strategy, c.Resources.String(), c.MarketPresence, c.Aggressiveness, c.Efficiency,
		})
	}
	for _, d := range s.Demand {
		data[SheetDemand] = append(data[SheetDemand], []interface{}{d.Market, d.BikeType, d.Percentage})
	}
	for _, p := range s.Sensitivities {
		data[SheetSensitivity] = append(data[SheetSensitivity], []interface{}{p.Market, p.Segment, p.Percentage})
	}
	for _, p := range s.Prices {
		data[SheetPrices] = append(data[SheetPrices], []interface{}{p.BikeType, p.Segment, p.Price.String()})
	}
	for _, st := range s.OpeningStock {
		data[SheetStock] = append(data[SheetStock], []interface{}{st.BikeType, st.Segment, st.Quantity, st.UnitCost.String()})
	}
	if s.Effects != nil {
		data[SheetStrategy] = [][]interface{}{{s.Effects.DemandBoost, s.Effects.DemandModifier}}
	}

	for i, sheet := range sheetOrder {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		if err := writeRow(f, sheet, 1, toRow(sheetHeaders[sheet])); err != nil {
			return err
		}
		for r, values := range data[sheet] {
			if err := writeRow(f, sheet, r+2, values); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, line int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, line, err)
	}
	return nil
}

func toRow(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}
