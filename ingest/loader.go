// Package ingest reads the crop plan spreadsheets (exported as CSV)
// into the planning data model. Columns are positional; blank fields
// follow per-column default rules.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/exarkun/farmplan/plan"
)

// field extracts a column that may be absent from a short row.
func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// floatOrZero parses a numeric field; blank means 0.
func floatOrZero(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// floatPtr parses an optional numeric field; blank means unknown.
func floatPtr(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func intPtr(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// dayOfYearPtr parses an M/D/Y date field into a zero-based day of
// the year. The year in the data is irrelevant: the plan is cyclic
// with a period of one year.
func dayOfYearPtr(s string, year int) (*int, error) {
	if s == "" {
		return nil, nil
	}
	var month, day, junkYear int
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &month, &day, &junkYear); err != nil {
		return nil, fmt.Errorf("bad date %q: %w", s, err)
	}
	v := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).YearDay() - 1
	return &v, nil
}

// Crop sheet columns, after the name in column 0.
const (
	cropColFreshLbs = iota + 1
	cropColFreshWeeks
	cropColStorageLbs
	cropColStorageWeeks
	cropColVariety // historical, unused
	cropColHarvestWeeks
	cropColRowFeetPerOz // historical, unused
	cropColYieldPerFoot
	cropColRowsPerBed
	cropColSpacing
	cropColBedFeet
)

// LoadCrops reads the crop sheet. The first two rows are a title and
// the column headers; both are skipped. Blank numerics default to
// zero except the per-foot yield, which stays unknown, and a blank
// bed feet override means a zero-length planting.
func LoadCrops(r io.Reader) (map[string]*plan.Crop, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading crop sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("crop sheet is missing its header rows")
	}

	crops := make(map[string]*plan.Crop)
	for n, row := range rows[2:] {
		name := field(row, 0)
		if name == "" {
			continue
		}

		var c plan.Crop
		c.Name = name

		numbers := []struct {
			col  int
			dest *float64
		}{
			{cropColFreshLbs, &c.FreshEatingLbs},
			{cropColFreshWeeks, &c.FreshEatingWeeks},
			{cropColStorageLbs, &c.StorageEatingLbs},
			{cropColStorageWeeks, &c.StorageEatingWeeks},
			{cropColHarvestWeeks, &c.HarvestWeeks},
			{cropColRowsPerBed, &c.RowsPerBed},
			{cropColSpacing, &c.InRowSpacing},
		}
		for _, num := range numbers {
			v, err := floatOrZero(field(row, num.col))
			if err != nil {
				return nil, fmt.Errorf("crop sheet row %d (%s): %w", n+3, name, err)
			}
			*num.dest = v
		}

		if c.YieldLbsPerBedFoot, err = floatPtr(field(row, cropColYieldPerFoot)); err != nil {
			return nil, fmt.Errorf("crop sheet row %d (%s): %w", n+3, name, err)
		}

		override, err := floatOrZero(field(row, cropColBedFeet))
		if err != nil {
			return nil, fmt.Errorf("crop sheet row %d (%s): %w", n+3, name, err)
		}
		c.BedFeetOverride = &override

		crop, err := plan.NewCrop(c)
		if err != nil {
			return nil, fmt.Errorf("crop sheet row %d: %w", n+3, err)
		}
		crops[name] = crop
	}
	return crops, nil
}

// Variety sheet columns.
const (
	seedColCrop = iota
	seedColVariety
	seedColPartsPerCrop
	seedColProductID
	seedColGreenhouseDays
	seedColBeginningOfSeason
	seedColMaturityDays
	seedColEndOfSeason
	seedColSeedsPerPacket
	seedColRowFootPerPacket
	seedColSeedsPerOz
	seedColDollarsPerPacket
	seedColDollarsPerHundred
	seedColDollarsPerTwoFifty
	seedColDollarsPerFiveHundred
	seedColDollarsPerThousand
	seedColDollarsPerFiveThousand
	seedColDollarsPerQuarterOz
	seedColDollarsPerHalfOz
	seedColDollarsPerOz
	seedColDollarsPerEighthLb
	seedColDollarsPerQuarterLb
	seedColDollarsPerHalfLb
	seedColDollarsPerLb
	seedColRowFootPerOz
	seedColDollarsPerMini
	seedColSeedsPerMini
	seedColRowFootPerMini
	seedColHarvestDuration
	seedColNotes
	seedColFreshGenerations
	seedColStorageGenerations
	seedColIntergenerationalWeeks
)

// LoadSeeds reads the variety sheet against already-loaded crops. The
// single header row is skipped, as is any row with a blank crop name.
// Blank optional fields stay unknown rather than becoming zero. The
// succession planting columns trail the sheet and older exports omit
// them entirely.
func LoadSeeds(r io.Reader, crops map[string]*plan.Crop, year int) ([]*plan.Seed, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading variety sheet: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("variety sheet is missing its header row")
	}

	var seeds []*plan.Seed
	for n, row := range rows[1:] {
		cropName := field(row, seedColCrop)
		if cropName == "" {
			continue
		}
		crop, ok := crops[cropName]
		if !ok {
			return nil, fmt.Errorf(
				"variety sheet row %d names unknown crop %q", n+2, cropName)
		}

		var s plan.Seed
		s.Crop = crop
		s.Variety = field(row, seedColVariety)
		s.ProductID = field(row, seedColProductID)
		s.Notes = field(row, seedColNotes)

		rowErr := func(err error) error {
			return fmt.Errorf("variety sheet row %d (%s/%s): %w",
				n+2, cropName, s.Variety, err)
		}

		parts, err := intPtr(field(row, seedColPartsPerCrop))
		if err != nil {
			return nil, rowErr(err)
		}
		if parts != nil {
			s.PartsPerCrop = float64(*parts)
		}

		intFields := []struct {
			col  int
			dest **int
		}{
			{seedColGreenhouseDays, &s.GreenhouseDays},
			{seedColMaturityDays, &s.MaturityDays},
			{seedColHarvestDuration, &s.HarvestDuration},
			{seedColFreshGenerations, &s.FreshGenerations},
			{seedColStorageGenerations, &s.StorageGenerations},
			{seedColIntergenerationalWeeks, &s.IntergenerationalWeeks},
		}
		for _, num := range intFields {
			if *num.dest, err = intPtr(field(row, num.col)); err != nil {
				return nil, rowErr(err)
			}
		}

		if s.BeginningOfSeason, err = dayOfYearPtr(field(row, seedColBeginningOfSeason), year); err != nil {
			return nil, rowErr(err)
		}
		if s.EndOfSeason, err = dayOfYearPtr(field(row, seedColEndOfSeason), year); err != nil {
			return nil, rowErr(err)
		}

		floatFields := []struct {
			col  int
			dest **float64
		}{
			{seedColSeedsPerPacket, &s.SeedsPerPacket},
			{seedColRowFootPerPacket, &s.RowFootPerPacket},
			{seedColSeedsPerOz, &s.SeedsPerOz},
			{seedColDollarsPerPacket, &s.DollarsPerPacket},
			{seedColDollarsPerHundred, &s.DollarsPerHundred},
			{seedColDollarsPerTwoFifty, &s.DollarsPerTwoFifty},
			{seedColDollarsPerFiveHundred, &s.DollarsPerFiveHundred},
			{seedColDollarsPerThousand, &s.DollarsPerThousand},
			{seedColDollarsPerQuarterOz, &s.DollarsPerQuarterOz},
			{seedColDollarsPerHalfOz, &s.DollarsPerHalfOz},
			{seedColDollarsPerOz, &s.DollarsPerOz},
			{seedColDollarsPerEighthLb, &s.DollarsPerEighthLb},
			{seedColDollarsPerQuarterLb, &s.DollarsPerQuarterLb},
			{seedColDollarsPerHalfLb, &s.DollarsPerHalfLb},
			{seedColDollarsPerLb, &s.DollarsPerLb},
			{seedColRowFootPerOz, &s.RowFootPerOz},
			{seedColDollarsPerMini, &s.DollarsPerMini},
			{seedColSeedsPerMini, &s.SeedsPerMini},
			{seedColRowFootPerMini, &s.RowFootPerMini},
		}
		for _, num := range floatFields {
			if *num.dest, err = floatPtr(field(row, num.col)); err != nil {
				return nil, rowErr(err)
			}
		}

		// The five-thousand column records a per-thousand figure.
		fiveThousand, err := floatPtr(field(row, seedColDollarsPerFiveThousand))
		if err != nil {
			return nil, rowErr(err)
		}
		if fiveThousand != nil {
			v := *fiveThousand * 5
			s.DollarsPerFiveThousand = &v
		}

		seeds = append(seeds, plan.NewSeed(s))
	}
	return seeds, nil
}
