package plan

import (
	"testing"
	"time"
)

const testYear = 2026

func epochDay(dayOfYear int) time.Time {
	return time.Date(testYear, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, dayOfYear)
}

func kinds(tasks []*Task) []TaskKind {
	out := make([]TaskKind, len(tasks))
	for i, task := range tasks {
		out[i] = task.Kind
	}
	return out
}

// TestCreateTasksGreenhouseVariety: a transplanted seed gets bed
// prep, flats seeding, transplant and harvest, dated off the season
// start.
func TestCreateTasksGreenhouseVariety(t *testing.T) {
	seed := testSeed(testCrop(nil), nil)

	tasks, err := CreateTasks([]*Seed{seed}, testYear)
	if err != nil {
		t.Fatalf("Expected tasks, got %v", err)
	}
	if len(tasks) != 4 {
		t.Fatalf("Expected 4 tasks, got %d: %v", len(tasks), kinds(tasks))
	}

	expected := []struct {
		kind TaskKind
		day  int
	}{
		{TaskBedPreparation, 76}, // 14 days ahead of the season
		{TaskSeedFlats, 80},      // greenhouse lead
		{TaskTransplant, 90},
		{TaskHarvest, 100}, // maturity less greenhouse time
	}
	for i, e := range expected {
		if tasks[i].Kind != e.kind {
			t.Errorf("Task %d: expected %s, got %s", i, e.kind, tasks[i].Kind)
		}
		if !tasks[i].When.Equal(epochDay(e.day)) {
			t.Errorf("Task %d: expected day %d (%v), got %v",
				i, e.day, epochDay(e.day), tasks[i].When)
		}
		if tasks[i].Quantity != 37.5 {
			t.Errorf("Task %d: expected quantity 37.5, got %v", i, tasks[i].Quantity)
		}
	}
}

// TestCreateTasksDirectSeeded: zero greenhouse days means a single
// direct seeding instead of the flats/transplant pair, and the
// greenhouse offset drops out of the harvest date.
func TestCreateTasksDirectSeeded(t *testing.T) {
	seed := testSeed(testCrop(nil), func(s *Seed) { s.GreenhouseDays = i(0) })

	tasks, err := CreateTasks([]*Seed{seed}, testYear)
	if err != nil {
		t.Fatalf("Expected tasks, got %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d: %v", len(tasks), kinds(tasks))
	}
	if tasks[1].Kind != TaskDirectSeed {
		t.Errorf("Expected a direct seeding, got %s", tasks[1].Kind)
	}
	if !tasks[1].When.Equal(epochDay(90)) {
		t.Errorf("Expected seeding on day 90, got %v", tasks[1].When)
	}
	if !tasks[2].When.Equal(epochDay(110)) {
		t.Errorf("Expected harvest on day 110, got %v", tasks[2].When)
	}
}

// TestCreateTasksFinishPlanningGate: unknown season start or
// greenhouse time yields exactly one finish-planning task at the
// start of the year.
func TestCreateTasksFinishPlanningGate(t *testing.T) {
	noSeason := testSeed(testCrop(nil), func(s *Seed) { s.BeginningOfSeason = nil })
	noGreenhouse := testSeed(testCrop(nil), func(s *Seed) { s.GreenhouseDays = nil })

	for _, seed := range []*Seed{noSeason, noGreenhouse} {
		tasks, err := CreateTasks([]*Seed{seed}, testYear)
		if err != nil {
			t.Fatalf("Expected tasks, got %v", err)
		}
		if len(tasks) != 1 {
			t.Fatalf("Expected 1 task, got %d", len(tasks))
		}
		if tasks[0].Kind != TaskFinishPlanning {
			t.Errorf("Expected finish planning, got %s", tasks[0].Kind)
		}
		if !tasks[0].When.Equal(epochDay(0)) {
			t.Errorf("Expected the start of the year, got %v", tasks[0].When)
		}
	}
}

func TestCreateTasksSkipsUnplantedSeed(t *testing.T) {
	crop := testCrop(func(c *Crop) {
		c.FreshEatingLbs = 0
		c.StorageEatingLbs = 0
	})
	seed := testSeed(crop, nil)

	tasks, err := CreateTasks([]*Seed{seed}, testYear)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected no tasks, got %d", len(tasks))
	}
}

// TestCreateTasksSuccession: fresh generations step forward from the
// season start; storage generations step backward so the last
// harvest lands exactly on the end of the season; the footage is
// shared evenly across generations.
func TestCreateTasksSuccession(t *testing.T) {
	seed := testSeed(testCrop(nil), func(s *Seed) {
		s.FreshGenerations = i(2)
		s.StorageGenerations = i(2)
		s.IntergenerationalWeeks = i(2)
	})

	tasks, err := CreateTasks([]*Seed{seed}, testYear)
	if err != nil {
		t.Fatalf("Expected tasks, got %v", err)
	}
	// Four generations, four tasks each.
	if len(tasks) != 16 {
		t.Fatalf("Expected 16 tasks, got %d", len(tasks))
	}

	for _, task := range tasks {
		if task.Quantity != 37.5/4 {
			t.Errorf("Expected quantity %v, got %v", 37.5/4, task.Quantity)
		}
	}

	var transplants []int
	var harvests []int
	for _, task := range tasks {
		day := int(task.When.Sub(epochDay(0)).Hours() / 24)
		switch task.Kind {
		case TaskTransplant:
			transplants = append(transplants, day)
		case TaskHarvest:
			harvests = append(harvests, day)
		}
	}

	// Fresh: days 90 and 104. Storage: backed off from end of season
	// (day 200) by the 10 remaining field days, so 176 and 190.
	wantTransplants := []int{90, 104, 176, 190}
	if len(transplants) != len(wantTransplants) {
		t.Fatalf("Expected %d transplants, got %d", len(wantTransplants), len(transplants))
	}
	for i, want := range wantTransplants {
		if transplants[i] != want {
			t.Errorf("Transplant %d: expected day %d, got %d", i, want, transplants[i])
		}
	}

	// The final storage harvest lands on the end of the season.
	if last := harvests[len(harvests)-1]; last != 200 {
		t.Errorf("Expected the last harvest on day 200, got %d", last)
	}

	for i := 1; i < len(tasks); i++ {
		if tasks[i].When.Before(tasks[i-1].When) {
			t.Fatal("Expected tasks sorted by time")
		}
	}
}

func TestCreateTasksSuccessionWithoutSpacing(t *testing.T) {
	seed := testSeed(testCrop(nil), func(s *Seed) {
		s.FreshGenerations = i(3)
	})
	if _, err := CreateTasks([]*Seed{seed}, testYear); err == nil {
		t.Fatal("Expected a configuration error without intergenerational weeks")
	}
}

func TestCreateTasksUnknownMaturity(t *testing.T) {
	seed := testSeed(testCrop(nil), func(s *Seed) { s.MaturityDays = nil })
	if _, err := CreateTasks([]*Seed{seed}, testYear); err == nil {
		t.Fatal("Expected a data error for unknown maturity days")
	}
}

func TestCreateTasksSorted(t *testing.T) {
	crop := testCrop(nil)
	late := testSeed(crop, func(s *Seed) { s.Variety = "late"; s.BeginningOfSeason = i(150) })
	early := testSeed(crop, func(s *Seed) { s.Variety = "early" })

	tasks, err := CreateTasks([]*Seed{late, early}, testYear)
	if err != nil {
		t.Fatalf("Expected tasks, got %v", err)
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i].When.Before(tasks[i-1].When) {
			t.Fatalf("Expected chronological order, got %v before %v",
				tasks[i-1].When, tasks[i].When)
		}
	}
}
