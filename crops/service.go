package crops

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exarkun/farmplan/plan"
)

// ReplanNotifier receives a nudge whenever the catalog changes so the
// schedule can be regenerated.
type ReplanNotifier interface {
	RequestReplan(ctx context.Context, reason string)
}

type CropService struct {
	db       *gorm.DB
	notifier ReplanNotifier
	appCtx   context.Context
}

func NewCropService(db *gorm.DB, notifier ReplanNotifier, appCtx context.Context) *CropService {
	return &CropService{
		db:       db,
		notifier: notifier,
		appCtx:   appCtx,
	}
}

type CropReq struct {
	Name               string   `json:"name" validate:"required,max=100"`
	FreshEatingLbs     float64  `json:"fresh_eating_lbs" validate:"min=0"`
	FreshEatingWeeks   float64  `json:"fresh_eating_weeks" validate:"min=0"`
	StorageEatingLbs   float64  `json:"storage_eating_lbs" validate:"min=0"`
	StorageEatingWeeks float64  `json:"storage_eating_weeks" validate:"min=0"`
	HarvestWeeks       float64  `json:"harvest_weeks" validate:"min=0"`
	YieldLbsPerBedFoot *float64 `json:"yield_lbs_per_bed_foot" validate:"omitempty,gt=0"`
	RowsPerBed         float64  `json:"rows_per_bed" validate:"min=0"`
	InRowSpacing       float64  `json:"in_row_spacing" validate:"min=0"`
	BedFeetOverride    *float64 `json:"bed_feet_override" validate:"omitempty,min=0"`
}

type SeedReq struct {
	Variety      string  `json:"variety" validate:"required,max=100"`
	ProductID    string  `json:"product_id" validate:"max=100"`
	PartsPerCrop float64 `json:"parts_per_crop" validate:"min=0"`
	Notes        string  `json:"notes"`

	GreenhouseDays    *int `json:"greenhouse_days" validate:"omitempty,min=0"`
	BeginningOfSeason *int `json:"beginning_of_season" validate:"omitempty,min=0,max=365"`
	MaturityDays      *int `json:"maturity_days" validate:"omitempty,min=0"`
	EndOfSeason       *int `json:"end_of_season" validate:"omitempty,min=0,max=365"`
	HarvestDuration   *int `json:"harvest_duration" validate:"omitempty,min=0"`

	FreshGenerations       *int `json:"fresh_generations" validate:"omitempty,min=0"`
	StorageGenerations     *int `json:"storage_generations" validate:"omitempty,min=0"`
	IntergenerationalWeeks *int `json:"intergenerational_weeks" validate:"omitempty,min=1"`

	SeedsPerPacket   *float64 `json:"seeds_per_packet" validate:"omitempty,gt=0"`
	RowFootPerPacket *float64 `json:"row_foot_per_packet" validate:"omitempty,gt=0"`
	SeedsPerOz       *float64 `json:"seeds_per_oz" validate:"omitempty,gt=0"`
	RowFootPerOz     *float64 `json:"row_foot_per_oz" validate:"omitempty,gt=0"`

	DollarsPerPacket       *float64 `json:"dollars_per_packet" validate:"omitempty,min=0"`
	DollarsPerHundred      *float64 `json:"dollars_per_hundred" validate:"omitempty,min=0"`
	DollarsPerTwoFifty     *float64 `json:"dollars_per_two_fifty" validate:"omitempty,min=0"`
	DollarsPerFiveHundred  *float64 `json:"dollars_per_five_hundred" validate:"omitempty,min=0"`
	DollarsPerThousand     *float64 `json:"dollars_per_thousand" validate:"omitempty,min=0"`
	DollarsPerFiveThousand *float64 `json:"dollars_per_five_thousand" validate:"omitempty,min=0"`
	DollarsPerQuarterOz    *float64 `json:"dollars_per_quarter_oz" validate:"omitempty,min=0"`
	DollarsPerHalfOz       *float64 `json:"dollars_per_half_oz" validate:"omitempty,min=0"`
	DollarsPerOz           *float64 `json:"dollars_per_oz" validate:"omitempty,min=0"`
	DollarsPerEighthLb     *float64 `json:"dollars_per_eighth_lb" validate:"omitempty,min=0"`
	DollarsPerQuarterLb    *float64 `json:"dollars_per_quarter_lb" validate:"omitempty,min=0"`
	DollarsPerHalfLb       *float64 `json:"dollars_per_half_lb" validate:"omitempty,min=0"`
	DollarsPerLb           *float64 `json:"dollars_per_lb" validate:"omitempty,min=0"`

	DollarsPerMini *float64 `json:"dollars_per_mini" validate:"omitempty,min=0"`
	SeedsPerMini   *float64 `json:"seeds_per_mini" validate:"omitempty,gt=0"`
	RowFootPerMini *float64 `json:"row_foot_per_mini" validate:"omitempty,gt=0"`
}

func (req CropReq) apply(r *CropRecord) {
	r.Name = req.Name
	r.FreshEatingLbs = req.FreshEatingLbs
	r.FreshEatingWeeks = req.FreshEatingWeeks
	r.StorageEatingLbs = req.StorageEatingLbs
	r.StorageEatingWeeks = req.StorageEatingWeeks
	r.HarvestWeeks = req.HarvestWeeks
	r.YieldLbsPerBedFoot = req.YieldLbsPerBedFoot
	r.RowsPerBed = req.RowsPerBed
	r.InRowSpacing = req.InRowSpacing
	r.BedFeetOverride = req.BedFeetOverride
}

func (req SeedReq) apply(r *SeedRecord) {
	r.Variety = req.Variety
	r.ProductID = req.ProductID
	r.PartsPerCrop = req.PartsPerCrop
	r.Notes = req.Notes
	r.GreenhouseDays = req.GreenhouseDays
	r.BeginningOfSeason = req.BeginningOfSeason
	r.MaturityDays = req.MaturityDays
	r.EndOfSeason = req.EndOfSeason
	r.HarvestDuration = req.HarvestDuration
	r.FreshGenerations = req.FreshGenerations
	r.StorageGenerations = req.StorageGenerations
	r.IntergenerationalWeeks = req.IntergenerationalWeeks
	r.SeedsPerPacket = req.SeedsPerPacket
	r.RowFootPerPacket = req.RowFootPerPacket
	r.SeedsPerOz = req.SeedsPerOz
	r.RowFootPerOz = req.RowFootPerOz
	r.DollarsPerPacket = req.DollarsPerPacket
	r.DollarsPerHundred = req.DollarsPerHundred
	r.DollarsPerTwoFifty = req.DollarsPerTwoFifty
	r.DollarsPerFiveHundred = req.DollarsPerFiveHundred
	r.DollarsPerThousand = req.DollarsPerThousand
	r.DollarsPerFiveThousand = req.DollarsPerFiveThousand
	r.DollarsPerQuarterOz = req.DollarsPerQuarterOz
	r.DollarsPerHalfOz = req.DollarsPerHalfOz
	r.DollarsPerOz = req.DollarsPerOz
	r.DollarsPerEighthLb = req.DollarsPerEighthLb
	r.DollarsPerQuarterLb = req.DollarsPerQuarterLb
	r.DollarsPerHalfLb = req.DollarsPerHalfLb
	r.DollarsPerLb = req.DollarsPerLb
	r.DollarsPerMini = req.DollarsPerMini
	r.SeedsPerMini = req.SeedsPerMini
	r.RowFootPerMini = req.RowFootPerMini
}

func (s *CropService) CreateCrop(ctx context.Context, req CropReq) (*CropRecord, error) {
	record := &CropRecord{}
	req.apply(record)
	// Reject bad yields before they reach the database.
	if _, err := record.ToPlan(); err != nil {
		return nil, err
	}
	if err := gorm.G[CropRecord](s.db).Create(ctx, record); err != nil {
		return nil, err
	}
	log.Printf("successfully created crop: %s", record.UUID)
	s.replan(ctx, fmt.Sprintf("crop %s created", record.Name))
	return record, nil
}

func (s *CropService) ListCrops(ctx context.Context) ([]CropRecord, error) {
	return gorm.G[CropRecord](s.db).Order("name").Find(ctx)
}

func (s *CropService) GetCrop(ctx context.Context, id uuid.UUID) (*CropRecord, error) {
	record, err := gorm.G[CropRecord](s.db).Where("uuid = ?", id).First(ctx)
	if err != nil {
		return nil, fmt.Errorf("crop %s: %w", id, err)
	}
	return &record, nil
}

func (s *CropService) UpdateCrop(ctx context.Context, id uuid.UUID, req CropReq) (*CropRecord, error) {
	record, err := s.GetCrop(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(record)
	if _, err := record.ToPlan(); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	s.replan(ctx, fmt.Sprintf("crop %s updated", record.Name))
	return record, nil
}

func (s *CropService) CreateSeed(ctx context.Context, cropID uuid.UUID, req SeedReq) (*SeedRecord, error) {
	crop, err := s.GetCrop(ctx, cropID)
	if err != nil {
		return nil, err
	}
	record := &SeedRecord{CropRecordID: crop.ID}
	req.apply(record)
	if err := gorm.G[SeedRecord](s.db).Create(ctx, record); err != nil {
		return nil, err
	}
	log.Printf("successfully created seed: %s", record.UUID)
	s.replan(ctx, fmt.Sprintf("seed %s/%s created", crop.Name, record.Variety))
	return record, nil
}

func (s *CropService) ListSeeds(ctx context.Context, cropID uuid.UUID) ([]SeedRecord, error) {
	crop, err := s.GetCrop(ctx, cropID)
	if err != nil {
		return nil, err
	}
	return gorm.G[SeedRecord](s.db).Where("crop_record_id = ?", crop.ID).Order("variety").Find(ctx)
}

// LoadPlanInputs converts the whole catalog into planning inputs. The
// returned seeds are attached to their crops so footage apportioning
// works.
func (s *CropService) LoadPlanInputs(ctx context.Context) (map[string]*plan.Crop, []*plan.Seed, error) {
	records, err := s.ListCrops(ctx)
	if err != nil {
		return nil, nil, err
	}

	crops := make(map[string]*plan.Crop, len(records))
	var seeds []*plan.Seed
	for _, record := range records {
		crop, err := record.ToPlan()
		if err != nil {
			return nil, nil, err
		}
		crops[crop.Name] = crop

		seedRecords, err := gorm.G[SeedRecord](s.db).
			Where("crop_record_id = ?", record.ID).Order("variety").Find(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, seedRecord := range seedRecords {
			seeds = append(seeds, seedRecord.ToPlan(crop))
		}
	}
	return crops, seeds, nil
}

func (s *CropService) replan(ctx context.Context, reason string) {
	if s.notifier == nil {
		return
	}
	s.notifier.RequestReplan(ctx, reason)
}
