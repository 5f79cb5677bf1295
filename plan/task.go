package plan

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// TaskKind names one of the discrete farm activities a planting plan
// is made of.
type TaskKind string

const (
	TaskBedPreparation TaskKind = "bed-preparation"
	TaskSeedFlats      TaskKind = "seed-flats"
	TaskDirectSeed     TaskKind = "direct-seed"
	TaskWeed           TaskKind = "weed"
	TaskTransplant     TaskKind = "transplant"
	TaskHarvest        TaskKind = "harvest"
	TaskFinishPlanning TaskKind = "finish-planning"
)

// FlatCapacity is the number of cells in one seedling flat.
const FlatCapacity = 72

// taskMeta is the per-kind behavior table: how long one bed foot
// takes, whether the work can be divided, and whether the task
// consumes (+1) or frees (-1) seedling flats.
type taskMeta struct {
	timeCost   time.Duration // per bed foot
	fixed      time.Duration // flat duration for quantity-less kinds
	splittable bool
	flatsSign  int
}

var taskMetas = map[TaskKind]taskMeta{
	TaskBedPreparation: {timeCost: 2 * time.Minute, splittable: true},
	TaskSeedFlats:      {timeCost: 2 * time.Minute, splittable: true, flatsSign: 1},
	TaskDirectSeed:     {timeCost: 30 * time.Second, splittable: true},
	TaskWeed:           {timeCost: 10 * time.Minute, splittable: true},
	TaskTransplant:     {timeCost: 1 * time.Minute, splittable: true, flatsSign: -1},
	TaskHarvest:        {timeCost: 2 * time.Minute, splittable: true},
	TaskFinishPlanning: {fixed: 30 * time.Minute},
}

// Task is a dated unit of work on one seed variety. Quantity is bed
// feet, except for finish-planning which carries none. Tasks are
// created fresh for each planning run and the scheduler moves When
// forward in place; nothing persists them.
type Task struct {
	ID       uuid.UUID
	Kind     TaskKind
	When     time.Time
	Seed     *Seed
	Quantity float64
}

func NewTask(kind TaskKind, when time.Time, seed *Seed, quantity float64) *Task {
	return &Task{
		ID:       uuid.New(),
		Kind:     kind,
		When:     when,
		Seed:     seed,
		Quantity: quantity,
	}
}

// Duration estimates how long this task takes. Sub-foot quantities
// still cost a whole foot's time: close enough for scheduling, not
// for billing.
func (t *Task) Duration() time.Duration {
	meta := taskMetas[t.Kind]
	if meta.fixed != 0 {
		return meta.fixed
	}
	return meta.timeCost * time.Duration(math.Ceil(t.Quantity))
}

// Date is the calendar day When falls on.
func (t *Task) Date() time.Time {
	return time.Date(
		t.When.Year(), t.When.Month(), t.When.Day(),
		0, 0, 0, 0, t.When.Location())
}

// Split divides this task into two of the same kind covering the same
// total footage, with the first piece's duration no greater than the
// requested maximum. The footage split is computed from the duration
// ratio and rounded down, so the pieces are duration-accurate only to
// the whole foot.
func (t *Task) Split(maxDuration time.Duration) (*Task, *Task, error) {
	if !taskMetas[t.Kind].splittable {
		return nil, nil, &UnsplittableTask{Kind: t.Kind}
	}
	ratio := maxDuration.Seconds() / t.Duration().Seconds()
	quantity := math.Floor(ratio * t.Quantity)
	remaining := t.Quantity - quantity
	return NewTask(t.Kind, t.When, t.Seed, quantity),
		NewTask(t.Kind, t.When, t.Seed, remaining),
		nil
}

// RequiredFlats is the number of 72-cell flats this task ties up,
// positive for seeding flats and negative for transplanting out of
// them. Zero for kinds that never touch flats.
func (t *Task) RequiredFlats() int {
	sign := taskMetas[t.Kind].flatsSign
	if sign == 0 {
		return 0
	}
	crop := t.Seed.Crop
	seedlings := t.Quantity / (crop.InRowSpacing / 12.0) * crop.RowsPerBed
	return int(math.Ceil(seedlings/FlatCapacity)) * sign
}

// Summarize renders a one-line human description of the task.
func (t *Task) Summarize() string {
	variety := t.Seed.Variety
	crop := t.Seed.Crop.Name
	switch t.Kind {
	case TaskBedPreparation:
		return fmt.Sprintf("Prepare %d bed feet for %s (%s)", int(t.Quantity), variety, crop)
	case TaskSeedFlats:
		return fmt.Sprintf("Seed flats for %d bed feet of %s (%s)", int(t.Quantity), variety, crop)
	case TaskDirectSeed:
		return fmt.Sprintf("Direct seed %d bed feet of %s (%s)", int(t.Quantity), variety, crop)
	case TaskWeed:
		return fmt.Sprintf("Weed %d bed feet of %s (%s)", int(t.Quantity), variety, crop)
	case TaskTransplant:
		return fmt.Sprintf("Transplant %d bed feet of %s (%s)", int(t.Quantity), variety, crop)
	case TaskHarvest:
		return fmt.Sprintf("Harvest %s (%s)", variety, crop)
	case TaskFinishPlanning:
		return fmt.Sprintf("Finish planning %s (%s)", variety, crop)
	}
	return fmt.Sprintf("%s %s (%s)", t.Kind, variety, crop)
}

func (t *Task) String() string {
	return "(" + t.Summarize() + ")"
}
