// Package render turns schedules, orders, and crop data into the
// output formats the planning tools emit: plaintext reports, an
// iCalendar feed, and tabular order summaries.
package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/olekukonko/tablewriter"

	"github.com/exarkun/farmplan/plan"
)

const timeLayout = "2006-01-02 15:04:05"

// WriteSchedule writes one line per scheduled task.
func WriteSchedule(w io.Writer, schedule []*plan.Task) {
	for _, task := range schedule {
		fmt.Fprintf(w, "%s on %s\n", task.Summarize(), task.When.Format(timeLayout))
	}
}

// ScheduleICS renders the schedule as an iCalendar document with one
// event per task, localized to the given zone.
func ScheduleICS(schedule []*plan.Task, zone *time.Location) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	for _, task := range schedule {
		when := time.Date(
			task.When.Year(), task.When.Month(), task.When.Day(),
			task.When.Hour(), task.When.Minute(), task.When.Second(), 0, zone)
		event := cal.AddEvent(task.ID.String())
		event.SetStartAt(when)
		event.SetEndAt(when.Add(task.Duration()))
		event.SetSummary(task.Summarize())
	}
	return cal.Serialize()
}

// WriteOrderSummary writes the per-item purchase report: a planting
// line for each order with its actual, ideal, and overbuy figures, a
// per-pound cost line where the yield is known, then an itemized
// table with the order and ideal totals.
func WriteOrderSummary(w io.Writer, orders []plan.Order) {
	var orderTotal, idealTotal float64

	for _, item := range orders {
		cost := item.Cost()
		orderTotal += cost
		idealTotal += cost / item.Excess()

		bedFeet := item.RowFeet / item.Seed.Crop.RowsPerBed
		fmt.Fprintf(w,
			"Plant %v feet of %s (%s - Product ID %s) at $%5.2f (ideally %5.2f; %5.2f%%)\n",
			bedFeet, item.Seed.Variety, item.Seed.Crop.Name,
			item.Seed.ProductID, cost, cost/item.Excess(), item.Excess()*100)
	}

	for _, item := range orders {
		totalYield := item.Seed.Crop.TotalYield()
		cost := "(unknown yield)"
		if totalYield != 0 {
			cost = fmt.Sprintf("%5.2f", item.Cost()/totalYield)
		}
		fmt.Fprintf(w, "%s (%s - Product ID %s) $%s\n",
			item.Seed.Variety, item.Seed.Crop.Name, item.Seed.ProductID, cost)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Cost", "Count", "Kind", "Variety", "Crop", "Product ID"})
	for _, item := range orders {
		table.Append([]string{
			fmt.Sprintf("$%5.2f", item.Cost()),
			fmt.Sprintf("%d", item.Count()),
			item.Price.Kind,
			item.Seed.Variety,
			item.Seed.Crop.Name,
			item.Seed.ProductID,
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("$%5.2f", orderTotal),
		fmt.Sprintf("(ideal $%5.2f)", idealTotal),
		"", "", "", "",
	})
	table.Render()
}

// WriteCropSummary writes per-crop footage and poundage with totals.
// Crops are listed alphabetically. A crop whose footage cannot be
// determined is a data error.
func WriteCropSummary(w io.Writer, crops map[string]*plan.Crop) error {
	names := make([]string, 0, len(crops))
	for name := range crops {
		names = append(names, name)
	}
	sort.Strings(names)

	var totalFeet, totalFresh, totalStorage float64
	for _, name := range names {
		crop := crops[name]
		feet, err := crop.BedFeet()
		if err != nil {
			return fmt.Errorf("summarizing %s: %w", name, err)
		}
		fresh := crop.FreshYield()
		storage := crop.StorageYield()
		totalFeet += feet
		totalFresh += fresh
		totalStorage += storage

		fmt.Fprintf(w, "%s :\n", name)
		fmt.Fprintf(w, "\tBed feet %v\n", feet)
		fmt.Fprintf(w, "\tFresh pounds %v\n", fresh)
		fmt.Fprintf(w, "\tStorage pounds %v\n", storage)
	}

	fmt.Fprintf(w, "Total crops: %d\n", len(crops))
	fmt.Fprintf(w, "Total feet: %v\n", totalFeet)
	fmt.Fprintf(w, "Fresh pounds: %v\n", totalFresh)
	fmt.Fprintf(w, "Storage pounds: %v\n", totalStorage)
	return nil
}

// WriteFlats writes the greenhouse flat count as a running total over
// the schedule. Seeding fills flats, transplanting empties them.
func WriteFlats(w io.Writer, schedule []*plan.Task) {
	flats := 0
	for _, task := range schedule {
		if task.Kind != plan.TaskSeedFlats && task.Kind != plan.TaskTransplant {
			continue
		}
		flats += task.RequiredFlats()
		fmt.Fprintf(w, "After %s in use flats is %d\n", task.Summarize(), flats)
	}
}

// WriteBeds writes the bed footage in use as a running total over the
// schedule. Plantings claim footage, harvests release it.
func WriteBeds(w io.Writer, schedule []*plan.Task) {
	var used float64
	for _, task := range schedule {
		switch task.Kind {
		case plan.TaskDirectSeed, plan.TaskTransplant:
			used += task.Quantity
		case plan.TaskHarvest:
			used -= task.Quantity
		default:
			continue
		}
		fmt.Fprintf(w, "After %s bed feet in use is %v\n", task.Summarize(), used)
	}
}

// WriteYields writes the expected poundage of each harvest.
func WriteYields(w io.Writer, schedule []*plan.Task) {
	for _, task := range schedule {
		if task.Kind != plan.TaskHarvest {
			continue
		}
		if task.Seed.Crop.YieldLbsPerBedFoot == nil {
			fmt.Fprintf(w, "Harvesting unknown lbs of %s (%s) on %s\n",
				task.Seed.Variety, task.Seed.Crop.Name, task.When.Format(timeLayout))
			continue
		}
		fmt.Fprintf(w, "Harvesting %v lbs of %s (%s) on %s\n",
			*task.Seed.Crop.YieldLbsPerBedFoot*task.Quantity,
			task.Seed.Variety, task.Seed.Crop.Name, task.When.Format(timeLayout))
	}
}
