package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"ai-growth-planner/internal/app"
	"ai-growth-planner/internal/clipper"
	"ai-growth-planner/internal/config"
	"ai-growth-planner/internal/ghost"
	"ai-growth-planner/internal/httpapi"
	"ai-growth-planner/internal/llm"
	"ai-growth-planner/internal/logger"
	"ai-growth-planner/internal/metrics"
	"ai-growth-planner/internal/plan"
	"ai-growth-planner/internal/planner"
	"ai-growth-planner/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	store, err := storage.NewFileStore(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	metricsStore, err := metrics.NewStore(cfg.MetricsDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize metrics store: %v", err)
	}
	defer metricsStore.Close()

	application := newApp(ctx, cfg, zlog, store, metricsStore)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		zlog.Info("starting http api", "addr", cfg.ListenAddr)
		if err := httpapi.NewServer(application, zlog).Run(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}

	case "generate":
		genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		customer := genCmd.String("customer", "", "Target customer")
		offer := genCmd.String("offer", "", "What you sell")
		differentiator := genCmd.String("differentiator", "", "What sets you apart")
		price := genCmd.String("price", "", "Price point")
		geography := genCmd.String("geography", "", "Where you operate")
		goal := genCmd.String("goal", "", "14-day goal")
		notes := genCmd.String("notes", "", "Anything else")
		genCmd.Parse(os.Args[2:])

		if genCmd.NArg() < 1 {
			log.Fatal("Usage: ai-growth-planner generate [flags] \"<idea>\"")
		}

		inputs := plan.Inputs{
			Customer:       *customer,
			Offer:          *offer,
			Differentiator: *differentiator,
			Price:          *price,
			Geography:      *geography,
			Goal:           *goal,
			Notes:          *notes,
		}
		if _, err := application.GeneratePlan(ctx, genCmd.Arg(0), inputs); err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		text, err := application.ExportPlanText()
		if err != nil {
			log.Fatalf("Failed to render plan: %v", err)
		}
		fmt.Println(text)

	case "plan":
		text, err := application.ExportPlanText()
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(text)

	case "calendar":
		fmt.Println(application.ExportCalendarText())

	case "clip":
		if len(os.Args) < 3 {
			log.Fatal("Usage: ai-growth-planner clip <url>")
		}
		brief, err := application.ClipURL(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Clip failed: %v", err)
		}
		fmt.Printf("Idea: %s\n", brief.Idea)
		fmt.Printf("Customer: %s\n", brief.Customer)
		fmt.Printf("Offer: %s\n", brief.Offer)
		fmt.Printf("Differentiator: %s\n", brief.Differentiator)
		fmt.Printf("Price: %s\n", brief.Price)
		fmt.Printf("Geography: %s\n", brief.Geography)
		fmt.Printf("Goal: %s\n", brief.Goal)
		fmt.Printf("Notes: %s\n", brief.Notes)

	case "publish":
		post, err := application.PublishPlan()
		if err != nil {
			log.Fatalf("Publish failed: %v", err)
		}
		fmt.Printf("Draft created: %s (%s)\n", post.Title, post.URL)

	case "clear":
		if err := application.ClearPlan(); err != nil {
			log.Fatalf("Clear failed: %v", err)
		}
		fmt.Println("Plan cleared.")

	case "reset-checks":
		if err := application.ResetChecks(); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		fmt.Println("Checkmarks cleared.")

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// newApp assembles the application. Provider-backed components are left nil
// when their configuration is absent so the server can still start; the
// affected operations report the missing configuration at call time.
func newApp(ctx context.Context, cfg *config.Config, zlog *logger.Logger, store storage.Store, metricsStore *metrics.Store) *app.App {
	var generator *planner.Generator
	var briefClipper *clipper.Clipper
	textGen, err := llm.NewClient(ctx, cfg)
	if err != nil {
		zlog.Warn("text provider unavailable", "error", err)
	} else {
		generator = planner.NewGenerator(textGen)
		briefClipper = clipper.NewClipper(textGen)
	}

	var ghostClient ghost.Client
	if cfg.GhostURL != "" && cfg.GhostAdminKey != "" {
		ghostClient = ghost.NewClient(cfg)
	}

	return app.NewApp(cfg, zlog, store, generator, briefClipper, ghostClient, metricsStore)
}

func printUsage() {
	fmt.Println("Usage: ai-growth-planner <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  serve                      Start the HTTP API")
	fmt.Println("  generate [flags] \"<idea>\"  Generate a growth plan")
	fmt.Println("  plan                       Print the current plan")
	fmt.Println("  calendar                   Print the 14-day calendar")
	fmt.Println("  clip <url>                 Extract a business brief from a web page")
	fmt.Println("  publish                    Publish the plan as a Ghost draft")
	fmt.Println("  clear                      Delete the current plan")
	fmt.Println("  reset-checks               Clear all completion checkmarks")
	fmt.Println("  metrics-cleanup [-days N]  Remove old metric records")
}
