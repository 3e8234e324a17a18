// Command impactreport builds a single impact report outside the HTTP server.
// Features come from a saved Overpass JSON response (--elements) or from a
// live Overpass query. The report is written as JSON, suitable for frontend
// fixtures, and a per-zone summary is printed.
//
// Usage:
//
//	go run ./cmd/impactreport --lat 41.0082 --lng 28.9784 --energy 8e15 \
//	  --elements overpass.json --out report.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/adapter/overpass"
	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/impact"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Lat      float64       `long:"lat" description:"Impact latitude" required:"true"`
	Lng      float64       `long:"lng" description:"Impact longitude" required:"true"`
	Energy   float64       `long:"energy" description:"Kinetic energy in joules" required:"true"`
	Elements string        `long:"elements" description:"Saved Overpass JSON response; queries Overpass when empty"`
	URL      string        `long:"overpass-url" env:"OVERPASS_URL" description:"Overpass interpreter URL"`
	Timeout  time.Duration `long:"timeout" description:"Overpass request timeout" default:"30s"`
	Out      string        `short:"o" long:"out" description:"Output path for the report JSON; stdout when empty"`
}

// fileSource serves elements parsed from a saved Overpass response.
type fileSource struct {
	elements []domain.OSMElement
}

func (f fileSource) Nearby(context.Context, float64, float64, int) []domain.OSMElement {
	return f.elements
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			return
		}
		log.Fatal(err)
	}
}

func run(args []string) error {
	var opts options
	if _, err := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash).ParseArgs(args); err != nil {
		return err
	}

	if err := domain.ValidateCoords(opts.Lat, opts.Lng); err != nil {
		return err
	}
	if math.IsNaN(opts.Energy) || math.IsInf(opts.Energy, 0) || opts.Energy <= 0 {
		return fmt.Errorf("energy must be a positive finite number, got %g", opts.Energy)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsForTesting()

	var source impact.FeatureSource
	if opts.Elements != "" {
		elements, err := loadElements(opts.Elements)
		if err != nil {
			return fmt.Errorf("loading %s: %w", opts.Elements, err)
		}
		source = fileSource{elements: elements}
		log.Printf("loaded %d elements from %s", len(elements), opts.Elements)
	} else {
		url := opts.URL
		if url == "" {
			url = config.DefaultOverpassURL
		}
		source = overpass.NewClient(url, opts.Timeout, metrics, logger)
	}

	report := impact.NewAggregator(source, metrics, logger).Report(context.Background(), opts.Lat, opts.Lng, opts.Energy)

	if opts.Out == "" {
		if err := encode(os.Stdout, report); err != nil {
			return err
		}
	} else {
		if err := writeJSON(opts.Out, report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		log.Printf("wrote report: %s", opts.Out)
	}

	printSummary(report)
	return nil
}

func loadElements(path string) ([]domain.OSMElement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	elements, skipped, err := overpass.ParseElements(data)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Printf("skipped %d unusable elements", skipped)
	}
	return elements, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := encode(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(r domain.ImpactReport) {
	zones := map[domain.Zone]int{}
	for _, item := range r.Infrastructure {
		zones[item.Zone]++
	}

	log.Printf("radii: thermal %.2f km, pressure %.2f km, shrapnel %.2f km",
		r.ThermalRadiusKm, r.PressureRadiusKm, r.ShrapnelRadiusKm)
	log.Printf("items: %d (thermal %d, pressure %d, shrapnel %d)",
		len(r.Infrastructure), zones[domain.ZoneThermal], zones[domain.ZonePressure], zones[domain.ZoneShrapnel])
	log.Printf("hospitals %d, schools %d, industrial %d, farmland %d",
		r.HospitalsAffected, r.SchoolsAffected, r.IndustrialAffected, r.FarmlandAffected)
}
