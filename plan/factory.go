package plan

import (
	"fmt"
	"sort"
	"time"
)

// BedPrepLeadDays is how far ahead of planting a bed gets prepared.
const BedPrepLeadDays = 14

// CreateTasks expands every seed variety's planting plan into dated
// tasks, as early as possible; the scheduler spreads them out
// afterwards. All dates land in the given plan year.
//
// A seed whose season start or greenhouse time is still unknown gets
// a single finish-planning task at the start of the year and nothing
// else. A seed with no footage allocated gets nothing at all.
func CreateTasks(seeds []*Seed, year int) ([]*Task, error) {
	epoch := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	var tasks []*Task
	for _, seed := range seeds {
		if seed.BeginningOfSeason == nil || seed.GreenhouseDays == nil {
			tasks = append(tasks, NewTask(TaskFinishPlanning, epoch, seed, 0))
			continue
		}

		bedFeet, err := seed.BedFeet()
		if err != nil {
			return nil, err
		}
		if bedFeet == 0 {
			continue
		}

		if seed.MaturityDays == nil {
			return nil, fmt.Errorf(
				"%s/%s: maturity days unknown, cannot compute harvest date",
				seed.Crop.Name, seed.Variety)
		}

		starts, err := generationStarts(seed)
		if err != nil {
			return nil, err
		}

		quantity := bedFeet / float64(len(starts))
		for _, start := range starts {
			tasks = append(tasks, generationTasks(seed, epoch, start, quantity)...)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].When.Before(tasks[j].When)
	})
	return tasks, nil
}

// generationStarts computes the effective season-start day of each
// planting generation. Fresh generations step forward from the
// beginning of the season; storage generations step backward from the
// end of the season so that the final generation's harvest lands on
// end_of_season.
func generationStarts(seed *Seed) ([]int, error) {
	fresh := 1
	if seed.FreshGenerations != nil {
		fresh = *seed.FreshGenerations
	}
	storage := 0
	if seed.StorageGenerations != nil {
		storage = *seed.StorageGenerations
	}
	if fresh < 1 {
		fresh = 1
	}
	if storage < 0 {
		storage = 0
	}

	step := 0
	if fresh > 1 || storage > 1 {
		if seed.IntergenerationalWeeks == nil {
			return nil, fmt.Errorf(
				"%s/%s: multiple generations requested without intergenerational weeks",
				seed.Crop.Name, seed.Variety)
		}
		step = *seed.IntergenerationalWeeks * 7
	}

	starts := make([]int, 0, fresh+storage)
	for g := 0; g < fresh; g++ {
		starts = append(starts, *seed.BeginningOfSeason+g*step)
	}

	if storage > 0 {
		if seed.EndOfSeason == nil {
			return nil, fmt.Errorf(
				"%s/%s: storage generations requested without an end of season",
				seed.Crop.Name, seed.Variety)
		}
		// The last storage planting matures exactly at season's end.
		lastStart := *seed.EndOfSeason - (*seed.MaturityDays - *seed.GreenhouseDays)
		for g := 0; g < storage; g++ {
			starts = append(starts, lastStart-(storage-1-g)*step)
		}
	}
	return starts, nil
}

// generationTasks emits the task chain for one planting generation:
// bed prep ahead of the start, then either a greenhouse pair (seed
// flats, transplant) or a direct seeding, then the harvest once the
// planting matures.
func generationTasks(seed *Seed, epoch time.Time, start int, quantity float64) []*Task {
	dayN := func(n int) time.Time {
		return epoch.AddDate(0, 0, n)
	}

	tasks := []*Task{
		NewTask(TaskBedPreparation, dayN(start-BedPrepLeadDays), seed, quantity),
	}

	if *seed.GreenhouseDays != 0 {
		tasks = append(tasks,
			NewTask(TaskSeedFlats, dayN(start-*seed.GreenhouseDays), seed, quantity),
			NewTask(TaskTransplant, dayN(start), seed, quantity))
	} else {
		tasks = append(tasks,
			NewTask(TaskDirectSeed, dayN(start), seed, quantity))
	}

	// Greenhouse time counts toward maturity; only the field days
	// remain after transplanting.
	harvestDay := start + *seed.MaturityDays - *seed.GreenhouseDays
	tasks = append(tasks, NewTask(TaskHarvest, dayN(harvestDay), seed, quantity))
	return tasks
}
