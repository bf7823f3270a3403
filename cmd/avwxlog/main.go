package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/lox/avwxlog/internal/avwx"
	"github.com/lox/avwxlog/internal/ingest"
	"github.com/lox/avwxlog/internal/models"
	"github.com/lox/avwxlog/internal/store"
)

var defaultAirports = []models.Airport{
	{Name: "NRT", ICAO: "RJAA"},
	{Name: "HND", ICAO: "RJTT"},
	{Name: "TSN", ICAO: "ZBTJ"},
	{Name: "DLC", ICAO: "ZYTL"},
	{Name: "SJW", ICAO: "ZBSJ"},
}

type cli struct {
	Out         string            `help:"Directory for CSV output." default:"data" type:"path"`
	DB          string            `help:"SQLite database for the raw payload archive (empty disables archival)." env:"AVWXLOG_DB"`
	Token       string            `help:"AVWX API token." env:"AVWX_TOKEN"`
	BaseURL     string            `help:"AVWX API base URL." default:"https://avwx.rest/api" env:"AVWX_BASE_URL"`
	UTCOffset   int               `help:"Fixed UTC offset in hours for timestamps and file dates." default:"9"`
	Interval    time.Duration     `help:"Re-fetch continuously at this interval (0 runs once and exits)." default:"0"`
	MetricsAddr string            `help:"Serve Prometheus metrics on this address when running continuously."`
	Airports    map[string]string `help:"Airport table as NAME=ICAO pairs (defaults to the built-in set)." mapsep:","`
}

func main() {
	var flags cli
	kong.Parse(&flags,
		kong.Name("avwxlog"),
		kong.Description("Append METAR observations and hourly-expanded TAF forecasts to per-day CSV files."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	airports := defaultAirports
	if len(flags.Airports) > 0 {
		airports = make([]models.Airport, 0, len(flags.Airports))
		for name, icao := range flags.Airports {
			airports = append(airports, models.Airport{Name: name, ICAO: icao})
		}
		sort.Slice(airports, func(i, j int) bool { return airports[i].Name < airports[j].Name })
	}

	loc := time.FixedZone(fmt.Sprintf("UTC%+d", flags.UTCOffset), flags.UTCOffset*3600)

	var st *store.Store
	if flags.DB != "" {
		db, err := sql.Open("sqlite", flags.DB)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		db.Exec("PRAGMA journal_mode=WAL")
		db.Exec("PRAGMA busy_timeout=5000")

		st = store.New(db)
		if err := st.Migrate(); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		log.Printf("archiving raw payloads to %s", flags.DB)
	}

	client := avwx.NewClient(flags.BaseURL, flags.Token)
	runner := ingest.NewRunner(client, st, airports, flags.Out, loc, clockwork.NewRealClock(), flags.Interval)

	if flags.Interval <= 0 {
		if err := runner.RunOnce(context.Background()); err != nil {
			log.Printf("run: %v", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if flags.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: flags.MetricsAddr, Handler: mux}
		go func() {
			log.Printf("metrics listening on %s", flags.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics server: %v", err)
			}
		}()
		defer srv.Close()
	}

	log.Printf("polling every %s for %d airports", flags.Interval, len(airports))
	runner.Run(ctx)
}
