package plan

import (
	"strings"
	"testing"
)

// orderCrop keeps the row math trivial: one row per bed.
func orderCrop(name string) *Crop {
	crop, err := NewCrop(Crop{
		Name:               name,
		FreshEatingLbs:     10,
		FreshEatingWeeks:   10,
		YieldLbsPerBedFoot: f(1),
		RowsPerBed:         1,
		InRowSpacing:       12,
	})
	if err != nil {
		panic(err)
	}
	return crop
}

// packetSeed is purchasable only by the packet: $2 for 10 row feet.
func packetSeed(crop *Crop) *Seed {
	return NewSeed(Seed{
		Crop:             crop,
		Variety:          "packets-only",
		SeedsPerPacket:   f(20),
		RowFootPerPacket: f(10),
		DollarsPerPacket: f(2),
	})
}

func TestPlanOrderNoPriceData(t *testing.T) {
	seed := NewSeed(Seed{Crop: orderCrop("beets"), Variety: "bare"})
	_, err := seed.PlanOrder(10, DefaultMinimumOverrun)
	missing, ok := err.(*MissingInformation)
	if !ok {
		t.Fatalf("Expected MissingInformation, got %v", err)
	}
	if !strings.Contains(missing.Message, "unavailable") {
		t.Errorf("Expected an unavailability message, got %q", missing.Message)
	}
}

func TestPlanOrderNoUsableCoverage(t *testing.T) {
	seed := NewSeed(Seed{
		Crop:               orderCrop("beets"),
		Variety:            "priced-blind",
		DollarsPerThousand: f(12),
	})
	_, err := seed.PlanOrder(10, DefaultMinimumOverrun)
	missing, ok := err.(*MissingInformation)
	if !ok {
		t.Fatalf("Expected MissingInformation, got %v", err)
	}
	if !strings.Contains(missing.Message, "row foot") {
		t.Errorf("Expected a coverage message, got %q", missing.Message)
	}
}

// TestPlanOrderRepeatPurchase verifies that repeated selections of
// the same package aggregate into a single order line.
func TestPlanOrderRepeatPurchase(t *testing.T) {
	seed := packetSeed(orderCrop("beets"))

	// 10 bed feet, one row per bed, 30% overrun: 13 row feet needed,
	// two 10-foot packets.
	orders, err := seed.PlanOrder(10, DefaultMinimumOverrun)
	if err != nil {
		t.Fatalf("Expected an order, got %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order line, got %d", len(orders))
	}
	order := orders[0]
	if order.Count() != 2 {
		t.Errorf("Expected 2 packets, got %d", order.Count())
	}
	if order.RowFeet != 20 {
		t.Errorf("Expected order row feet 20, got %v", order.RowFeet)
	}
	if order.Cost() != 4 {
		t.Errorf("Expected cost $4, got %v", order.Cost())
	}
	if order.Excess() < 1 {
		t.Errorf("Expected excess >= 1, got %v", order.Excess())
	}
}

// TestPlanOrderBulkOvershoot exercises the deliberate tie-break: a
// bulk package priced against only the remaining need still wins when
// cheap enough, overshooting the requirement.
func TestPlanOrderBulkOvershoot(t *testing.T) {
	seed := NewSeed(Seed{
		Crop:    orderCrop("carrots"),
		Variety: "bulk",
		// Packet density: half a foot per seed, so a thousand covers
		// 500 row feet.
		SeedsPerPacket:     f(20),
		RowFootPerPacket:   f(10),
		DollarsPerPacket:   f(2),
		DollarsPerThousand: f(10),
	})

	// 100 bed feet -> 130 row feet required. $10 against 130 needed
	// feet beats $2 against 10.
	orders, err := seed.PlanOrder(100, DefaultMinimumOverrun)
	if err != nil {
		t.Fatalf("Expected an order, got %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order line, got %d", len(orders))
	}
	if orders[0].Price.Kind != "thousand" {
		t.Errorf("Expected the thousand package, got %q", orders[0].Price.Kind)
	}
	if orders[0].Count() != 1 {
		t.Errorf("Expected a single unit, got %d", orders[0].Count())
	}
}

// TestPlanOrderCoversRequirement checks purchase conservation: the
// footage bought always covers the requirement including overrun.
func TestPlanOrderCoversRequirement(t *testing.T) {
	seed := packetSeed(orderCrop("beets"))
	for _, bedFeet := range []float64{1, 7, 10, 33.4, 96} {
		orders, err := seed.PlanOrder(bedFeet, DefaultMinimumOverrun)
		if err != nil {
			t.Fatalf("Expected an order for %v bed feet, got %v", bedFeet, err)
		}
		required := seed.Crop.RowsPerBed * bedFeet * 1.3
		var purchased float64
		for _, o := range orders {
			purchased += float64(o.Count()) * o.Price.RowFootIncrement
			if o.Excess() < 1 {
				t.Errorf("Expected excess >= 1, got %v", o.Excess())
			}
		}
		if purchased < required {
			t.Errorf("Expected at least %v row feet purchased for %v bed feet, got %v",
				required, bedFeet, purchased)
		}
	}
}

func TestMakeOrdersCollectsNotes(t *testing.T) {
	priced := packetSeed(orderCrop("beets"))

	unpriced := NewSeed(Seed{Crop: orderCrop("carrots"), Variety: "mystery"})

	idle := NewSeed(Seed{
		Crop: mustCrop(Crop{Name: "dill", YieldLbsPerBedFoot: f(1), RowsPerBed: 1}),
		Variety: "unplanted",
	})

	orders, notes, err := MakeOrders([]*Seed{priced, unpriced, idle}, DefaultMinimumOverrun)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	if orders[0].Seed != priced {
		t.Error("Expected the order to belong to the priced seed")
	}
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d: %v", len(notes), notes)
	}
}

func TestMakeOrdersFatalOnUnknowableCrop(t *testing.T) {
	seed := NewSeed(Seed{
		Crop:    mustCrop(Crop{Name: "squash", RowsPerBed: 1}),
		Variety: "lost",
	})
	_, _, err := MakeOrders([]*Seed{seed}, DefaultMinimumOverrun)
	if err == nil {
		t.Fatal("Expected a fatal error for an unknowable crop")
	}
}

func mustCrop(c Crop) *Crop {
	crop, err := NewCrop(c)
	if err != nil {
		panic(err)
	}
	return crop
}
