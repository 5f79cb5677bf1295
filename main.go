package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/exarkun/farmplan/crops"
	"github.com/exarkun/farmplan/ingest"
	"github.com/exarkun/farmplan/plan"
	"github.com/exarkun/farmplan/planner"
	"github.com/exarkun/farmplan/render"
)

func main() {
	var (
		cropPath     = flag.String("crops", "", "crop sheet CSV; with -seeds, run offline instead of serving")
		seedPath     = flag.String("seeds", "", "variety sheet CSV")
		year         = flag.Int("year", 0, "plan year (defaults to the current year)")
		scheduleMode = flag.String("schedule", "", "print the schedule: text or ical")
		order        = flag.Bool("order", false, "print the seed order")
		summary      = flag.Bool("summary", false, "print the crop summary")
		flats        = flag.Bool("flats", false, "print greenhouse flat usage")
		beds         = flag.Bool("beds", false, "print bed footage usage")
		yields       = flag.Bool("yields", false, "print expected harvest yields")
	)
	flag.Parse()

	if *cropPath != "" || *seedPath != "" {
		if *cropPath == "" || *seedPath == "" {
			log.Fatal("offline mode needs both -crops and -seeds")
		}
		runOffline(offlineOptions{
			cropPath:     *cropPath,
			seedPath:     *seedPath,
			year:         *year,
			scheduleMode: *scheduleMode,
			order:        *order,
			summary:      *summary,
			flats:        *flats,
			beds:         *beds,
			yields:       *yields,
		})
		return
	}

	serve()
}

func serve() {
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	setupShutdownListener(appCancel)

	farm, err := NewApp(appCtx)
	if err != nil {
		log.Fatal("Failed to initialize app:", err)
	}
	defer farm.Shutdown()

	app := fiber.New(fiber.Config{
		AppName: farm.config.AppName,
	})

	mapRoutes(app, farm)

	go func() {
		<-appCtx.Done()
		log.Println("Shutting down HTTP server...")
		app.Shutdown()
	}()

	log.Fatal(app.Listen(fmt.Sprintf(":%d", farm.config.Port)))
}

func setupShutdownListener(appCancel context.CancelFunc) {
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutdown signal received")
		appCancel()
	}()
}

func mapRoutes(app *fiber.App, farm *App) {
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	api := app.Group("/api")

	crops.RegisterCropRoutes(api, crops.NewCropHandler(farm.cropService))
	planner.RegisterPlanRoutes(api, planner.NewPlanHandler(farm.planService))
}

type offlineOptions struct {
	cropPath, seedPath string
	year               int
	scheduleMode       string
	order              bool
	summary            bool
	flats              bool
	beds               bool
	yields             bool
}

// fileSource loads planning inputs from CSV exports instead of the
// database.
type fileSource struct {
	cropPath string
	seedPath string
	year     int
}

func (f fileSource) LoadPlanInputs(ctx context.Context) (map[string]*plan.Crop, []*plan.Seed, error) {
	cropFile, err := os.Open(f.cropPath)
	if err != nil {
		return nil, nil, err
	}
	defer cropFile.Close()
	loaded, err := ingest.LoadCrops(cropFile)
	if err != nil {
		return nil, nil, err
	}

	seedFile, err := os.Open(f.seedPath)
	if err != nil {
		return nil, nil, err
	}
	defer seedFile.Close()
	seeds, err := ingest.LoadSeeds(seedFile, loaded, f.year)
	if err != nil {
		return nil, nil, err
	}
	return loaded, seeds, nil
}

func runOffline(opts offlineOptions) {
	config := DefaultConfig()
	config.loadEnv()
	if opts.year != 0 {
		config.PlanYear = opts.year
	}
	planConfig, err := config.planConfig()
	if err != nil {
		log.Fatal(err)
	}

	source := fileSource{
		cropPath: opts.cropPath,
		seedPath: opts.seedPath,
		year:     config.PlanYear,
	}
	service := planner.NewPlanService(source, planConfig)

	result, err := service.Generate(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	if opts.summary {
		if err := render.WriteCropSummary(os.Stdout, result.Crops); err != nil {
			log.Fatal(err)
		}
	}
	if opts.order {
		render.WriteOrderSummary(os.Stdout, result.Orders)
	}
	switch opts.scheduleMode {
	case "":
	case "text":
		render.WriteSchedule(os.Stdout, result.Schedule)
	case "ical":
		fmt.Print(render.ScheduleICS(result.Schedule, planConfig.Timezone))
	default:
		log.Fatalf("unknown schedule format %q (want text or ical)", opts.scheduleMode)
	}
	if opts.flats {
		render.WriteFlats(os.Stdout, result.Schedule)
	}
	if opts.beds {
		render.WriteBeds(os.Stdout, result.Schedule)
	}
	if opts.yields {
		render.WriteYields(os.Stdout, result.Schedule)
	}
}
