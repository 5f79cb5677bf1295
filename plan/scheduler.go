package plan

import (
	"fmt"
	"time"
)

// ScheduleConfig is the scheduler's capacity model: how many labor
// hours a day holds, the smallest end-of-day remainder worth filling
// with a piece of a larger task, and the clock time work begins.
type ScheduleConfig struct {
	MaxHoursPerDay time.Duration
	EndOfDayWaste  time.Duration
	StartOfDay     time.Duration
}

func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		MaxHoursPerDay: 3 * time.Hour,
		EndOfDayWaste:  30 * time.Minute,
		StartOfDay:     8 * time.Hour,
	}
}

// ScheduleTasks walks forward day by day from the first task's date,
// packing tasks into each day without exceeding the daily labor
// budget. Tasks are taken strictly in order of availability: earlier
// due dates first, original order among equals. A task too big for
// the rest of the day is split when enough of the day remains to be
// worth it, otherwise it rolls over to the next morning. Delaying a
// task delays every queued task of the same variety by the same
// amount, preserving the spacing of the variety's chain.
//
// Input must be sorted by time (CreateTasks output). Task times are
// rewritten in place; the returned slice is the commit order.
func ScheduleTasks(tasks []*Task, cfg ScheduleConfig) ([]*Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	remaining := make([]*Task, len(tasks))
	copy(remaining, tasks)

	day := remaining[0].Date()
	var available []*Task
	var schedule []*Task

	for len(remaining) > 0 || len(available) > 0 {
		// Everything due today or earlier becomes available, FIFO.
		for len(remaining) > 0 && !remaining[0].Date().After(day) {
			available = append(available, remaining[0])
			remaining = remaining[1:]
		}

		var hours time.Duration
		for len(available) > 0 {
			next := available[0]

			if hours+next.Duration() > cfg.MaxHoursPerDay {
				if cfg.MaxHoursPerDay > hours+cfg.EndOfDayWaste {
					// Enough of today is left to split off a piece.
					first, second, err := next.Split(cfg.MaxHoursPerDay - hours)
					if err != nil {
						return nil, err
					}
					if first.Quantity < 1 {
						// Not even one foot of work fits in the rest
						// of today.
						if hours == 0 {
							return nil, unschedulable(next, cfg)
						}
						break
					}
					available = append([]*Task{first, second}, available[1:]...)
					continue
				}
				if hours == 0 {
					// An empty day cannot hold this task and the
					// waste threshold forbids splitting; no later day
					// will do better.
					return nil, unschedulable(next, cfg)
				}
				// Not enough time left today to bother; resume
				// tomorrow.
				break
			}

			available = available[1:]
			schedule = append(schedule, next)

			shift := day.Sub(next.Date())
			next.When = next.When.Add(cfg.StartOfDay + hours)
			if shift > 0 {
				next.When = next.When.Add(shift)
				// Push back the variety's queued successors so their
				// relative spacing survives the delay.
				for _, dep := range remaining {
					if dep.Seed.Key() == next.Seed.Key() {
						dep.When = dep.When.Add(shift)
					}
				}
			}

			hours += next.Duration()
		}

		day = day.AddDate(0, 0, 1)
	}

	return schedule, nil
}

func unschedulable(t *Task, cfg ScheduleConfig) error {
	return fmt.Errorf(
		"cannot schedule %s: needs %s but at most %s fits in one day",
		t.Summarize(), t.Duration(), cfg.MaxHoursPerDay)
}
