package plan

import "math"

// Price describes one way to buy a seed variety: a package kind, what
// one package costs, and how many row feet one package plants.
type Price struct {
	Kind             string
	Dollars          float64
	RowFootIncrement float64
}

func (p Price) DollarsPerRowFoot() float64 {
	return p.Dollars / p.RowFootIncrement
}

// UnitsFor is the number of packages needed to cover the given row
// footage.
func (p Price) UnitsFor(rowFeet float64) int {
	return int(math.Ceil(rowFeet / p.RowFootIncrement))
}

// priceKind describes how to resolve one package form from a seed's
// raw fields: where the dollar figure lives, and how row-foot
// coverage is determined (directly, from a stored seed count, or from
// a fixed count). The table below is the full set of supported
// package forms, iterated in a fixed order.
type priceKind struct {
	kind string

	dollars func(*Seed) *float64

	// rowFeet reads a directly-recorded coverage, nil entry when the
	// form has none.
	rowFeet func(*Seed) *float64

	// seedCount reads a per-package seed count from the data, nil
	// entry when the form uses fixedCount instead.
	seedCount func(*Seed) *float64

	// fixedCount is the seed count implied by the package name
	// (hundred, thousand, ...); 0 when seedCount is used.
	fixedCount float64
}

func ozMultiple(factor float64) func(*Seed) *float64 {
	return func(s *Seed) *float64 {
		if s.SeedsPerOz == nil {
			return nil
		}
		v := *s.SeedsPerOz * factor
		return &v
	}
}

var priceKinds = []priceKind{
	{kind: "mini",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerMini },
		rowFeet:   func(s *Seed) *float64 { return s.RowFootPerMini },
		seedCount: func(s *Seed) *float64 { return s.SeedsPerMini }},
	{kind: "packet",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerPacket },
		rowFeet:   func(s *Seed) *float64 { return s.RowFootPerPacket },
		seedCount: func(s *Seed) *float64 { return s.SeedsPerPacket }},
	{kind: "hundred",
		dollars:    func(s *Seed) *float64 { return s.DollarsPerHundred },
		fixedCount: 100},
	{kind: "two hundred fifty",
		dollars:    func(s *Seed) *float64 { return s.DollarsPerTwoFifty },
		fixedCount: 250},
	{kind: "five hundred",
		dollars:    func(s *Seed) *float64 { return s.DollarsPerFiveHundred },
		fixedCount: 500},
	{kind: "thousand",
		dollars:    func(s *Seed) *float64 { return s.DollarsPerThousand },
		fixedCount: 1000},
	{kind: "five thousand",
		dollars:    func(s *Seed) *float64 { return s.DollarsPerFiveThousand },
		fixedCount: 5000},
	{kind: "1/4 oz",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerQuarterOz },
		seedCount: ozMultiple(0.25)},
	{kind: "1/2 oz",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerHalfOz },
		seedCount: ozMultiple(0.5)},
	{kind: "ounce",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerOz },
		seedCount: func(s *Seed) *float64 { return s.SeedsPerOz }},
	{kind: "1/8 lb",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerEighthLb },
		seedCount: ozMultiple(2)},
	{kind: "1/4 lb",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerQuarterLb },
		seedCount: ozMultiple(4)},
	{kind: "1/2 lb",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerHalfLb },
		seedCount: ozMultiple(8)},
	{kind: "pound",
		dollars:   func(s *Seed) *float64 { return s.DollarsPerLb },
		seedCount: ozMultiple(16)},
}

// resolve produces the Price for one package form, or nil when the
// cost, the seed count, or the row-foot coverage cannot be
// determined. A package form with a cost but no coverage is simply
// unusable, not an error.
func (k priceKind) resolve(s *Seed) *Price {
	cost := k.dollars(s)
	if cost == nil {
		return nil
	}

	var count *float64
	if k.seedCount != nil {
		count = k.seedCount(s)
	} else {
		c := k.fixedCount
		count = &c
	}
	if count == nil {
		return nil
	}

	var feet *float64
	if k.rowFeet != nil {
		feet = k.rowFeet(s)
	} else {
		feet = s.countToFeet(*count)
	}
	if feet == nil {
		return nil
	}

	return &Price{Kind: k.kind, Dollars: *cost, RowFootIncrement: *feet}
}

// Prices enumerates every package form of this seed for which both a
// cost and a row-foot coverage could be determined.
func (s *Seed) Prices() []Price {
	var prices []Price
	for _, k := range priceKinds {
		if p := k.resolve(s); p != nil {
			prices = append(prices, *p)
		}
	}
	return prices
}

// HasPriceData reports whether any package form has a dollar figure
// at all, usable or not. It distinguishes "no price data" from
// "priced, but coverage is unknown" for order diagnostics.
func (s *Seed) HasPriceData() bool {
	for _, k := range priceKinds {
		if k.dollars(s) != nil {
			return true
		}
	}
	return false
}
