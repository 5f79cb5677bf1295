package plan

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

// DefaultMinimumOverrun is the fraction of extra seed ordered beyond
// the planted footage, a buffer against germination failure and loss.
const DefaultMinimumOverrun = 0.3

// Order is a purchase decision: buy enough packages of one price kind
// to cover RowFeet of planting.
type Order struct {
	Seed    *Seed
	RowFeet float64
	Price   Price
}

// Count is the number of packages to buy.
func (o Order) Count() int {
	return o.Price.UnitsFor(o.RowFeet)
}

func (o Order) Cost() float64 {
	return o.Price.Dollars * float64(o.Count())
}

// Excess is the ratio of plantable footage bought to footage needed,
// always at least 1. It measures how much the package sizes forced us
// to overbuy.
func (o Order) Excess() float64 {
	plantable := float64(o.Count()) * o.Price.RowFootIncrement
	return plantable / o.RowFeet
}

// PlanOrder selects package purchases covering bedFeet of this
// variety at minimum cost, building in the overrun buffer. It returns
// a *MissingInformation error when the seed cannot be priced; that is
// recoverable and the caller should report it and continue.
//
// Selection is greedy: each round buys one unit of the package whose
// cost per useful row foot is lowest, where "useful" caps the package
// size at the footage still needed. A package that overshoots is
// therefore priced against only the remaining need, which lets an
// attractively priced bulk package win late in the process. That
// overshoot behavior is intentional.
func (s *Seed) PlanOrder(bedFeet, minimumOverrun float64) ([]Order, error) {
	if !s.HasPriceData() {
		return nil, &MissingInformation{Message: fmt.Sprintf(
			"Prices for %s/%s unavailable", s.Crop.Name, s.Variety)}
	}
	prices := s.Prices()
	if len(prices) == 0 {
		return nil, &MissingInformation{Message: fmt.Sprintf(
			"No price of %s/%s has a determinable row foot coverage",
			s.Crop.Name, s.Variety)}
	}

	requiredRowFeet := s.Crop.RowsPerBed * bedFeet * (1 + minimumOverrun)

	counts := make(map[Price]int)
	var used []Price // distinct prices in first-use order
	remaining := requiredRowFeet

	for remaining > 0 {
		best := prices[0]
		bestRate := best.Dollars / min(best.RowFootIncrement, remaining)
		for _, p := range prices[1:] {
			rate := p.Dollars / min(p.RowFootIncrement, remaining)
			if rate < bestRate {
				best = p
				bestRate = rate
			}
		}
		if counts[best] == 0 {
			used = append(used, best)
		}
		counts[best]++
		remaining -= best.RowFootIncrement
	}

	orders := make([]Order, 0, len(used))
	for _, p := range used {
		orders = append(orders, Order{
			Seed:    s,
			RowFeet: p.RowFootIncrement * float64(counts[p]),
			Price:   p,
		})
	}
	return orders, nil
}

// MakeOrders runs the order optimizer over every seed with footage
// allocated. Varieties that cannot be priced, or that have no footage
// to plant, are reported in the returned notes rather than failing
// the run. An undeterminable crop footage is fatal.
func MakeOrders(seeds []*Seed, minimumOverrun float64) ([]Order, []string, error) {
	sorted := make([]*Seed, len(seeds))
	copy(sorted, seeds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Crop.Name < sorted[j].Crop.Name
	})

	var orders []Order
	var notes []string
	for _, seed := range sorted {
		bedFeet, err := seed.BedFeet()
		if err != nil {
			return nil, nil, err
		}
		if bedFeet <= 0 {
			note := fmt.Sprintf(
				"Not ordering %s (%s) because it has no bed feet allocated",
				seed.Variety, seed.Crop.Name)
			log.Printf("[INFO] %s", note)
			notes = append(notes, note)
			continue
		}
		seedOrders, err := seed.PlanOrder(bedFeet, minimumOverrun)
		if err != nil {
			var missing *MissingInformation
			if errors.As(err, &missing) {
				log.Printf("[WARN] %s", missing.Message)
				notes = append(notes, missing.Message)
				continue
			}
			return nil, nil, err
		}
		orders = append(orders, seedOrders...)
	}
	return orders, notes, nil
}
