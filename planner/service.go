package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/exarkun/farmplan/plan"
)

// InputSource produces the planning inputs. The crop catalog service
// implements this over the database; the CLI implements it over CSV
// files.
type InputSource interface {
	LoadPlanInputs(ctx context.Context) (map[string]*plan.Crop, []*plan.Seed, error)
}

type PlanConfig struct {
	// Year anchors day-of-year task dates to real calendar dates.
	Year           int
	MinimumOverrun float64
	Schedule       plan.ScheduleConfig
	Timezone       *time.Location
}

func DefaultPlanConfig() PlanConfig {
	tz, err := time.LoadLocation("US/Eastern")
	if err != nil {
		tz = time.UTC
	}
	return PlanConfig{
		Year:           time.Now().Year(),
		MinimumOverrun: plan.DefaultMinimumOverrun,
		Schedule:       plan.DefaultScheduleConfig(),
		Timezone:       tz,
	}
}

// Plan is one complete planning run: what to buy, when to do the
// work, and which varieties could not be fully planned.
type Plan struct {
	Crops    map[string]*plan.Crop
	Orders   []plan.Order
	Schedule []*plan.Task
	Notes    []string
}

type PlanService struct {
	source InputSource
	config PlanConfig
}

func NewPlanService(source InputSource, config PlanConfig) *PlanService {
	return &PlanService{
		source: source,
		config: config,
	}
}

func (s *PlanService) Config() PlanConfig {
	return s.config
}

// Generate runs the full pipeline: load the catalog, price the seed
// order, expand seeds into dated tasks, and pack the tasks into the
// daily labor budget.
func (s *PlanService) Generate(ctx context.Context) (*Plan, error) {
	crops, seeds, err := s.source.LoadPlanInputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plan inputs: %w", err)
	}

	orders, notes, err := plan.MakeOrders(seeds, s.config.MinimumOverrun)
	if err != nil {
		return nil, fmt.Errorf("planning seed order: %w", err)
	}

	tasks, err := plan.CreateTasks(seeds, s.config.Year)
	if err != nil {
		return nil, fmt.Errorf("creating tasks: %w", err)
	}

	schedule, err := plan.ScheduleTasks(tasks, s.config.Schedule)
	if err != nil {
		return nil, fmt.Errorf("scheduling tasks: %w", err)
	}

	return &Plan{
		Crops:    crops,
		Orders:   orders,
		Schedule: schedule,
		Notes:    notes,
	}, nil
}
