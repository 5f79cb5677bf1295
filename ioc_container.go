package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/exarkun/farmplan/crops"
	"github.com/exarkun/farmplan/database"
	"github.com/exarkun/farmplan/plan"
	"github.com/exarkun/farmplan/planner"
)

// IOC container
type App struct {
	broker      planner.Broker
	db          *gorm.DB
	cropService *crops.CropService
	planService *planner.PlanService
	writer      *planner.ScheduleWriter
	appCtx      context.Context
	config      *AppConfig
}

type AppConfig struct {
	AppName             string
	Port                int
	DBPath              string
	AutoMigrate         bool
	PlanYear            int
	MinimumOverrun      float64
	MaxHoursPerDay      time.Duration
	EndOfDayWaste       time.Duration
	StartOfDay          time.Duration
	Timezone            string
	ScheduleDestination string
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		AppName:             "FarmPlan",
		Port:                3000,
		DBPath:              "cropplan.db",
		AutoMigrate:         true,
		PlanYear:            time.Now().Year(),
		MinimumOverrun:      plan.DefaultMinimumOverrun,
		MaxHoursPerDay:      3 * time.Hour,
		EndOfDayWaste:       30 * time.Minute,
		StartOfDay:          8 * time.Hour,
		Timezone:            "US/Eastern",
		ScheduleDestination: "schedule.ics",
	}
}

// loadEnv layers .env and process environment values over the config.
func (c *AppConfig) loadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using defaults")
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PLAN_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			c.PlanYear = year
		}
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("SCHEDULE_DESTINATION"); v != "" {
		c.ScheduleDestination = v
	}
	if v := os.Getenv("MAX_HOURS_PER_DAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxHoursPerDay = d
		}
	}
}

func (c *AppConfig) planConfig() (planner.PlanConfig, error) {
	tz, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return planner.PlanConfig{}, fmt.Errorf("bad timezone %q: %w", c.Timezone, err)
	}
	return planner.PlanConfig{
		Year:           c.PlanYear,
		MinimumOverrun: c.MinimumOverrun,
		Schedule: plan.ScheduleConfig{
			MaxHoursPerDay: c.MaxHoursPerDay,
			EndOfDayWaste:  c.EndOfDayWaste,
			StartOfDay:     c.StartOfDay,
		},
		Timezone: tz,
	}, nil
}

type AppOption func(*App) error

func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	config := DefaultConfig()
	config.loadEnv()

	app := &App{
		broker: planner.NewMessageBroker(), // Default broker
		config: config,
		appCtx: ctx,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	// Initialize database if not provided
	if app.db == nil {
		db, err := database.InitDatabase(app.config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	}

	// Auto-migrate if enabled
	if app.config.AutoMigrate {
		if err := database.AutoMigrate(app.db, &crops.CropRecord{}, &crops.SeedRecord{}); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	planConfig, err := app.config.planConfig()
	if err != nil {
		return nil, err
	}

	notifier := planner.NewReplanRequester(app.broker)
	app.cropService = crops.NewCropService(app.db, notifier, ctx)
	app.planService = planner.NewPlanService(app.cropService, planConfig)

	app.writer = planner.NewScheduleWriter(
		app.planService, app.broker, app.config.ScheduleDestination)
	app.writer.Start(ctx)

	return app, nil
}

func (a *App) Shutdown() {
	a.writer.Shutdown()
}

func WithDatabase(db *gorm.DB) AppOption {
	return func(app *App) error {
		app.db = db
		return nil
	}
}

func WithAppName(name string) AppOption {
	return func(app *App) error {
		app.config.AppName = name
		return nil
	}
}

func WithPort(port int) AppOption {
	return func(app *App) error {
		app.config.Port = port
		return nil
	}
}

func WithPlanYear(year int) AppOption {
	return func(app *App) error {
		app.config.PlanYear = year
		return nil
	}
}

func WithScheduleDestination(path string) AppOption {
	return func(app *App) error {
		app.config.ScheduleDestination = path
		return nil
	}
}
