// Package crops persists the farm's crop and seed catalog and exposes
// it over HTTP. Records convert into the planning data model so the
// planner can run straight off the database.
package crops

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exarkun/farmplan/plan"
)

type CropRecord struct {
	gorm.Model
	UUID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name string    `gorm:"uniqueIndex"`

	FreshEatingLbs     float64
	FreshEatingWeeks   float64
	StorageEatingLbs   float64
	StorageEatingWeeks float64
	HarvestWeeks       float64

	YieldLbsPerBedFoot *float64
	RowsPerBed         float64
	InRowSpacing       float64
	BedFeetOverride    *float64

	Seeds []SeedRecord `gorm:"foreignKey:CropRecordID"`
}

func (r *CropRecord) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == uuid.Nil { // Only generate if not already set
		r.UUID = uuid.New()
	}
	return nil
}

// ToPlan converts the stored record into a planning crop.
func (r *CropRecord) ToPlan() (*plan.Crop, error) {
	return plan.NewCrop(plan.Crop{
		Name:               r.Name,
		FreshEatingLbs:     r.FreshEatingLbs,
		FreshEatingWeeks:   r.FreshEatingWeeks,
		StorageEatingLbs:   r.StorageEatingLbs,
		StorageEatingWeeks: r.StorageEatingWeeks,
		HarvestWeeks:       r.HarvestWeeks,
		YieldLbsPerBedFoot: r.YieldLbsPerBedFoot,
		RowsPerBed:         r.RowsPerBed,
		InRowSpacing:       r.InRowSpacing,
		BedFeetOverride:    r.BedFeetOverride,
	})
}

type SeedRecord struct {
	gorm.Model
	UUID         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CropRecordID uint      `gorm:"index"`

	Variety      string
	ProductID    string
	PartsPerCrop float64
	Notes        string

	// Season dates are zero-based days of the year, matching the
	// planning model.
	GreenhouseDays    *int
	BeginningOfSeason *int
	MaturityDays      *int
	EndOfSeason       *int
	HarvestDuration   *int

	FreshGenerations       *int
	StorageGenerations     *int
	IntergenerationalWeeks *int

	SeedsPerPacket   *float64
	RowFootPerPacket *float64
	SeedsPerOz       *float64
	RowFootPerOz     *float64

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

	DollarsPerMini *float64
	SeedsPerMini   *float64
	RowFootPerMini *float64
}

func (r *SeedRecord) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == uuid.Nil {
		r.UUID = uuid.New()
	}
	return nil
}

// ToPlan converts the stored record into a planning seed attached to
// the given crop.
func (r *SeedRecord) ToPlan(crop *plan.Crop) *plan.Seed {
	return plan.NewSeed(plan.Seed{
		Crop:         crop,
		Variety:      r.Variety,
		ProductID:    r.ProductID,
		PartsPerCrop: r.PartsPerCrop,
		Notes:        r.Notes,

		GreenhouseDays:    r.GreenhouseDays,
		BeginningOfSeason: r.BeginningOfSeason,
		MaturityDays:      r.MaturityDays,
		EndOfSeason:       r.EndOfSeason,
		HarvestDuration:   r.HarvestDuration,

		FreshGenerations:       r.FreshGenerations,
		StorageGenerations:     r.StorageGenerations,
		IntergenerationalWeeks: r.IntergenerationalWeeks,

		SeedsPerPacket:   r.SeedsPerPacket,
		RowFootPerPacket: r.RowFootPerPacket,
		SeedsPerOz:       r.SeedsPerOz,
		RowFootPerOz:     r.RowFootPerOz,

		DollarsPerPacket:       r.DollarsPerPacket,
		DollarsPerHundred:      r.DollarsPerHundred,
		DollarsPerTwoFifty:     r.DollarsPerTwoFifty,
		DollarsPerFiveHundred:  r.DollarsPerFiveHundred,
		DollarsPerThousand:     r.DollarsPerThousand,
		DollarsPerFiveThousand: r.DollarsPerFiveThousand,
		DollarsPerQuarterOz:    r.DollarsPerQuarterOz,
		DollarsPerHalfOz:       r.DollarsPerHalfOz,
		DollarsPerOz:           r.DollarsPerOz,
		DollarsPerEighthLb:     r.DollarsPerEighthLb,
		DollarsPerQuarterLb:    r.DollarsPerQuarterLb,
		DollarsPerHalfLb:       r.DollarsPerHalfLb,
		DollarsPerLb:           r.DollarsPerLb,

		DollarsPerMini: r.DollarsPerMini,
		SeedsPerMini:   r.SeedsPerMini,
		RowFootPerMini: r.RowFootPerMini,
	})
}
