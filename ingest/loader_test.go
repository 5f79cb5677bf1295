package ingest

import (
	"strings"
	"testing"
)

const cropSheet = `2026 Crop Plan,,,,,,,,,,,,
Crop,Eating lb/wk,Fresh Eating Weeks,Storage Pounds Per Week,Storage Eating Weeks,Variety,Harvest wks,Row Feet Per Ounce Seed,Yield Pounds Per Foot,Rows / Bed,Spacing (inches),Bed Feet,equipment
carrots,3,5,6,10,,4,,2,4,16,,
lettuce,2,8,,,,3,,,2,10,120,
,,,,,,,,,,,,
`

const seedHeader = `Crop,Variety,Parts,Product ID,Greenhouse Days,Beginning of Season,Maturity Days,End of Season,Seeds/Packet,Row Feet/Packet,Seeds/oz,$/Packet,$/100,$/250,$/500,$/M,$/M (5M+),$/quarter oz,$/half oz,$/oz,$/eighth lb,$/quarter lb,$/half lb,$/lb,Row Feet/oz,$/Mini,Seeds/Mini,Row Feet/Mini,Harvest Duration,Notes,Fresh Generations,Storage Generations,Weeks Between
`

func TestLoadCrops(t *testing.T) {
	crops, err := LoadCrops(strings.NewReader(cropSheet))
	if err != nil {
		t.Fatalf("Expected crops, got %v", err)
	}
	if len(crops) != 2 {
		t.Fatalf("Expected 2 crops, got %d", len(crops))
	}

	carrots := crops["carrots"]
	if carrots == nil {
		t.Fatal("Expected a carrots crop")
	}
	if carrots.FreshEatingLbs != 3 || carrots.FreshEatingWeeks != 5 {
		t.Errorf("Expected fresh eating 3 lbs for 5 weeks, got %v for %v",
			carrots.FreshEatingLbs, carrots.FreshEatingWeeks)
	}
	if carrots.YieldLbsPerBedFoot == nil || *carrots.YieldLbsPerBedFoot != 2 {
		t.Errorf("Expected yield 2, got %v", carrots.YieldLbsPerBedFoot)
	}
	feet, err := carrots.BedFeet()
	if err != nil {
		t.Fatal(err)
	}
	if feet != 37.5 {
		t.Errorf("Expected 37.5 bed feet of carrots, got %v", feet)
	}

	lettuce := crops["lettuce"]
	if lettuce == nil {
		t.Fatal("Expected a lettuce crop")
	}
	if lettuce.YieldLbsPerBedFoot != nil {
		t.Error("Expected lettuce yield to stay unknown")
	}
	// Blank storage fields default to zero, not unknown.
	if lettuce.StorageEatingLbs != 0 || lettuce.StorageEatingWeeks != 0 {
		t.Error("Expected blank storage eating fields to default to zero")
	}
	feet, err = lettuce.BedFeet()
	if err != nil {
		t.Fatal(err)
	}
	if feet != 120 {
		t.Errorf("Expected the explicit 120 foot override, got %v", feet)
	}
}

func TestLoadCropsRejectsBadYield(t *testing.T) {
	sheet := strings.Replace(cropSheet, "carrots,3,5,6,10,,4,,2,", "carrots,3,5,6,10,,4,,-2,", 1)
	if _, err := LoadCrops(strings.NewReader(sheet)); err == nil {
		t.Fatal("Expected a negative yield to be rejected")
	}
}

func TestLoadSeeds(t *testing.T) {
	crops, err := LoadCrops(strings.NewReader(cropSheet))
	if err != nil {
		t.Fatal(err)
	}

	sheet := seedHeader +
		"carrots,nantes,3,1234g,10,4/1/2012,68,9/1/2012,20,10,500,5.5,,,,20.5,8.1,,,10.25,,,,,50,,,,14,keeper,2,1,3\n" +
		",,,,,,,,,,,,,,,,,,,,,,,,,,,,,\n" +
		"lettuce,buttercrunch,,5678,0,4/15/2012,50,,,,,3.25,,,,,,,,,,,,,,,,,,\n"

	seeds, err := LoadSeeds(strings.NewReader(sheet), crops, 2026)
	if err != nil {
		t.Fatalf("Expected seeds, got %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("Expected 2 seeds (blank row skipped), got %d", len(seeds))
	}

	nantes := seeds[0]
	if nantes.Crop.Name != "carrots" || nantes.Variety != "nantes" {
		t.Fatalf("Expected carrots/nantes, got %s", nantes.Key())
	}
	if nantes.PartsPerCrop != 3 {
		t.Errorf("Expected 3 parts per crop, got %v", nantes.PartsPerCrop)
	}
	// 4/1 is the 91st day of the year; days are zero based and the
	// year in the data is discarded.
	if nantes.BeginningOfSeason == nil || *nantes.BeginningOfSeason != 90 {
		t.Errorf("Expected season start day 90, got %v", nantes.BeginningOfSeason)
	}
	if nantes.MaturityDays == nil || *nantes.MaturityDays != 68 {
		t.Errorf("Expected 68 maturity days, got %v", nantes.MaturityDays)
	}
	// The five-thousand column holds a per-thousand price.
	if nantes.DollarsPerFiveThousand == nil || *nantes.DollarsPerFiveThousand != 40.5 {
		t.Errorf("Expected $40.50 per five thousand, got %v", nantes.DollarsPerFiveThousand)
	}
	if nantes.DollarsPerHundred != nil {
		t.Error("Expected the blank hundred price to stay unknown")
	}
	if nantes.FreshGenerations == nil || *nantes.FreshGenerations != 2 {
		t.Errorf("Expected 2 fresh generations, got %v", nantes.FreshGenerations)
	}
	if nantes.IntergenerationalWeeks == nil || *nantes.IntergenerationalWeeks != 3 {
		t.Errorf("Expected 3 weeks between generations, got %v", nantes.IntergenerationalWeeks)
	}
	if nantes.Notes != "keeper" {
		t.Errorf("Expected notes to survive, got %q", nantes.Notes)
	}

	buttercrunch := seeds[1]
	if buttercrunch.PartsPerCrop != 1 {
		t.Errorf("Expected parts per crop default 1, got %v", buttercrunch.PartsPerCrop)
	}
	if buttercrunch.GreenhouseDays == nil || *buttercrunch.GreenhouseDays != 0 {
		t.Errorf("Expected 0 greenhouse days (direct seeded), got %v", buttercrunch.GreenhouseDays)
	}
	if buttercrunch.EndOfSeason != nil {
		t.Error("Expected the blank end of season to stay unknown")
	}
	if buttercrunch.FreshGenerations != nil {
		t.Error("Expected missing succession columns to stay unknown")
	}

	// Loading attaches varieties to their crops.
	if len(crops["carrots"].Varieties) != 1 {
		t.Errorf("Expected 1 carrot variety, got %d", len(crops["carrots"].Varieties))
	}
}

func TestLoadSeedsUnknownCrop(t *testing.T) {
	crops, err := LoadCrops(strings.NewReader(cropSheet))
	if err != nil {
		t.Fatal(err)
	}
	sheet := seedHeader + "rutabaga,mystery,,,,,,,,,,,,,,,,,,,,,,,,,,,,\n"
	if _, err := LoadSeeds(strings.NewReader(sheet), crops, 2026); err == nil {
		t.Fatal("Expected an unknown crop error")
	}
}
