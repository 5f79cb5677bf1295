// Package plan holds the crop planning core: the crop/seed data
// model, seed price resolution, the purchase order optimizer, the
// task factory and the capacity-constrained labor scheduler.
package plan

import "fmt"

// Crop is a named plant species group. Quantities are per-week eating
// rates (pounds) and durations (weeks); blank numeric fields in the
// source data arrive as 0, except YieldLbsPerBedFoot and
// BedFeetOverride which stay nil when unknown.
type Crop struct {
	Name string

	FreshEatingLbs     float64
	FreshEatingWeeks   float64
	StorageEatingLbs   float64
	StorageEatingWeeks float64

	HarvestWeeks float64

	// YieldLbsPerBedFoot is the expected yield of one bed foot, nil
	// when nobody has measured it yet.
	YieldLbsPerBedFoot *float64

	RowsPerBed   float64
	InRowSpacing float64 // inches between plants within a row

	// BedFeetOverride is an explicit planting length used when yield
	// data is missing.
	BedFeetOverride *float64

	// Varieties collects the Seed records belonging to this crop so
	// that the crop's total footage can be apportioned among them.
	Varieties []*Seed
}

// NewCrop validates and returns a crop. A known yield must be
// strictly positive; zero would make the bed feet computation divide
// by zero and a negative yield is nonsense data.
func NewCrop(c Crop) (*Crop, error) {
	if c.YieldLbsPerBedFoot != nil && *c.YieldLbsPerBedFoot <= 0 {
		return nil, fmt.Errorf(
			"%s: yield lbs per bed foot must be unknown or positive, not %v",
			c.Name, *c.YieldLbsPerBedFoot)
	}
	return &c, nil
}

// FreshYield is the total pounds of this crop eaten fresh.
func (c *Crop) FreshYield() float64 {
	return c.FreshEatingWeeks * c.FreshEatingLbs
}

// StorageYield is the total pounds of this crop eaten from storage.
func (c *Crop) StorageYield() float64 {
	return c.StorageEatingWeeks * c.StorageEatingLbs
}

func (c *Crop) TotalYield() float64 {
	return c.FreshYield() + c.StorageYield()
}

// BedFeet is the number of bed feet of this crop to plant, derived
// from the demanded yield when the per-foot yield is known, falling
// back to the explicit override. With neither, the answer is
// unknowable and that is a data error.
func (c *Crop) BedFeet() (float64, error) {
	if c.YieldLbsPerBedFoot != nil {
		return c.TotalYield() / *c.YieldLbsPerBedFoot, nil
	}
	if c.BedFeetOverride != nil {
		return *c.BedFeetOverride, nil
	}
	return 0, fmt.Errorf("%s: bed feet cannot be determined (no yield data, no override)", c.Name)
}

// Seed is one variety of a crop, together with how it is planted and
// every way it can be bought. Optional numeric fields are nil when
// the source data left them blank; nil means unknown, never zero.
type Seed struct {
	Crop    *Crop
	Variety string

	// PartsPerCrop is the relative weight used to split the crop's
	// total footage among its varieties (75ft sauce / 25ft cherry
	// tomatoes is weights 3 and 1).
	PartsPerCrop float64

	ProductID string

	GreenhouseDays    *int // 0 means direct seeded
	BeginningOfSeason *int // zero-based day of year
	MaturityDays      *int
	EndOfSeason       *int // zero-based day of year

	SeedsPerPacket   *float64
	RowFootPerPacket *float64
	SeedsPerOz       *float64

	DollarsPerPacket       *float64
	DollarsPerHundred      *float64
	DollarsPerTwoFifty     *float64
	DollarsPerFiveHundred  *float64
	DollarsPerThousand     *float64
	DollarsPerFiveThousand *float64
	DollarsPerQuarterOz    *float64
	DollarsPerHalfOz       *float64
	DollarsPerOz           *float64
	DollarsPerEighthLb     *float64
	DollarsPerQuarterLb    *float64
	DollarsPerHalfLb       *float64
	DollarsPerLb           *float64

	RowFootPerOz *float64

	DollarsPerMini *float64
	SeedsPerMini   *float64
	RowFootPerMini *float64

	HarvestDuration *int

	// Succession planting: how many staggered plantings feed fresh
	// eating and how many feed storage, and the spacing between them.
	FreshGenerations       *int
	StorageGenerations     *int
	IntergenerationalWeeks *int

	Notes string
}

// NewSeed applies defaults and attaches the seed to its crop's
// variety list.
func NewSeed(s Seed) *Seed {
	if s.PartsPerCrop == 0 {
		s.PartsPerCrop = 1
	}
	seed := &s
	if seed.Crop != nil {
		seed.Crop.Varieties = append(seed.Crop.Varieties, seed)
	}
	return seed
}

// Key identifies a seed stably across copies; scheduling uses it to
// find tasks belonging to the same variety.
func (s *Seed) Key() string {
	return s.Crop.Name + "/" + s.Variety
}

// RowFootPerThousand estimates how many row feet a thousand seeds
// plant. The packet-derived density is preferred; the per-ounce
// density is the fallback. Nil when neither is available.
func (s *Seed) RowFootPerThousand() *float64 {
	if s.SeedsPerPacket != nil && s.RowFootPerPacket != nil {
		perSeed := *s.RowFootPerPacket / *s.SeedsPerPacket
		v := perSeed * 1000
		return &v
	}
	if s.SeedsPerOz != nil && s.RowFootPerOz != nil {
		perSeed := *s.RowFootPerOz / *s.SeedsPerOz
		v := perSeed * 1000
		return &v
	}
	return nil
}

// countToFeet converts a seed count into row feet via the per-thousand
// density, nil when the density is unknown.
func (s *Seed) countToFeet(count float64) *float64 {
	perThousand := s.RowFootPerThousand()
	if perThousand == nil {
		return nil
	}
	v := *perThousand * (count / 1000.0)
	return &v
}

// BedFeet is this variety's share of the crop's total footage,
// apportioned by PartsPerCrop. The shares of all varieties of a crop
// sum to the crop's bed feet.
func (s *Seed) BedFeet() (float64, error) {
	total, err := s.Crop.BedFeet()
	if err != nil {
		return 0, err
	}
	var totalWeight float64
	for _, variety := range s.Crop.Varieties {
		totalWeight += variety.PartsPerCrop
	}
	return total * (s.PartsPerCrop / totalWeight), nil
}
