package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lox/avwxlog/internal/avwx"
	"github.com/lox/avwxlog/internal/csvout"
	"github.com/lox/avwxlog/internal/metrics"
	"github.com/lox/avwxlog/internal/models"
	"github.com/lox/avwxlog/internal/report"
	"github.com/lox/avwxlog/internal/store"
)

// Fetcher retrieves reports for one ICAO station. Each report kind is an
// independent call; a METAR result is never reused for a TAF.
type Fetcher interface {
	FetchMETAR(ctx context.Context, icao string) (*avwx.METARResponse, []byte, error)
	FetchTAF(ctx context.Context, icao string) (*avwx.TAFResponse, []byte, error)
}

// Runner drives the fetch-normalize-write cycle for a fixed set of airports.
// Airports are processed sequentially; one airport's failure never stops the
// rest. Output files are keyed by airport, report kind, and run date, so no
// two cycles ever share a file.
type Runner struct {
	fetcher  Fetcher
	store    *store.Store // optional payload archive, may be nil
	airports []models.Airport
	outDir   string
	loc      *time.Location
	clock    clockwork.Clock
	interval time.Duration
	runDate  string
}

// NewRunner builds a Runner. The run date is fixed here, once, in the
// configured zone; a long watch session keeps writing to the same files.
func NewRunner(fetcher Fetcher, st *store.Store, airports []models.Airport, outDir string, loc *time.Location, clock clockwork.Clock, interval time.Duration) *Runner {
	return &Runner{
		fetcher:  fetcher,
		store:    st,
		airports: airports,
		outDir:   outDir,
		loc:      loc,
		clock:    clock,
		interval: interval,
		runDate:  clock.Now().In(loc).Format("2006-01-02"),
	}
}

// Run re-ingests on a fixed interval until the context is cancelled.
func (r *Runner) Run(ctx context.Context) {
	if err := r.RunOnce(ctx); err != nil {
		log.Printf("runner: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("runner: shutting down")
			return
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				log.Printf("runner: %v", err)
			}
		}
	}
}

// RunOnce fetches and writes both report kinds for every airport. Failures
// are logged per airport and report kind and never abort the loop; the
// returned error summarizes how many reports failed, so callers can exit
// nonzero on a partial run.
func (r *Runner) RunOnce(ctx context.Context) error {
	if err := csvout.EnsureDir(r.outDir); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}

	failed, total := 0, 0
	for _, apt := range r.airports {
		total += 2
		if err := r.ingestMETAR(ctx, apt); err != nil {
			log.Printf("runner: metar %s (%s): %v", apt.Name, apt.ICAO, err)
			metrics.ReportFailures.WithLabelValues(apt.Name, "metar").Inc()
			failed++
		}
		if err := r.ingestTAF(ctx, apt); err != nil {
			log.Printf("runner: taf %s (%s): %v", apt.Name, apt.ICAO, err)
			metrics.ReportFailures.WithLabelValues(apt.Name, "taf").Inc()
			failed++
		}
	}

	log.Printf("runner: completed, %d/%d reports ok", total-failed, total)
	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed", failed, total)
	}
	return nil
}

func (r *Runner) ingestMETAR(ctx context.Context, apt models.Airport) error {
	run := r.startRun("metar", apt.ICAO)

	m, rawBody, err := r.fetcher.FetchMETAR(ctx, apt.ICAO)
	r.archivePayload(run, "metar", apt.ICAO, rawBody)
	if err != nil {
		r.completeRun(run, 0, err)
		return err
	}

	row := report.NormalizeMetar(apt, r.clock.Now().In(r.loc), m)
	path := filepath.Join(r.outDir, fmt.Sprintf("metar-%s-%s.csv", apt.Name, r.runDate))
	if err := csvout.Append(path, models.MetarFields, [][]string{row.Record()}); err != nil {
		err = fmt.Errorf("append %s: %w", path, err)
		r.completeRun(run, 0, err)
		return err
	}

	metrics.RowsWritten.WithLabelValues("metar").Inc()
	r.completeRun(run, 1, nil)
	return nil
}

func (r *Runner) ingestTAF(ctx context.Context, apt models.Airport) error {
	run := r.startRun("taf", apt.ICAO)

	taf, rawBody, err := r.fetcher.FetchTAF(ctx, apt.ICAO)
	r.archivePayload(run, "taf", apt.ICAO, rawBody)
	if err != nil {
		r.completeRun(run, 0, err)
		return err
	}

	rows, err := report.ExpandHourly(apt.Name, taf)
	if err != nil {
		r.completeRun(run, 0, err)
		return err
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}

	path := filepath.Join(r.outDir, fmt.Sprintf("taf-%s-%s.csv", apt.Name, r.runDate))
	if err := csvout.Append(path, models.TafFields, records); err != nil {
		err = fmt.Errorf("append %s: %w", path, err)
		r.completeRun(run, 0, err)
		return err
	}

	metrics.RowsWritten.WithLabelValues("taf").Add(float64(len(records)))
	r.completeRun(run, len(records), nil)
	return nil
}

func (r *Runner) startRun(reportKind, station string) *store.IngestRun {
	if r.store == nil {
		return nil
	}
	run, err := r.store.StartIngestRun(reportKind, station)
	if err != nil {
		log.Printf("runner: start ingest run: %v", err)
		return nil
	}
	return run
}

func (r *Runner) archivePayload(run *store.IngestRun, reportKind, station string, body []byte) {
	if r.store == nil || len(body) == 0 {
		return
	}
	var runID *int64
	if run != nil {
		runID = &run.ID
	}
	if _, err := r.store.StoreRawPayload(runID, reportKind, station, body); err != nil {
		log.Printf("runner: store raw payload %s %s: %v", reportKind, station, err)
	}
}

func (r *Runner) completeRun(run *store.IngestRun, rows int, runErr error) {
	if r.store == nil || run == nil {
		return
	}
	run.Success = runErr == nil
	run.RowsWritten = sql.NullInt64{Int64: int64(rows), Valid: true}
	if runErr != nil {
		run.ErrorMessage = sql.NullString{String: runErr.Error(), Valid: true}
	}
	if err := r.store.CompleteIngestRun(run); err != nil {
		log.Printf("runner: complete ingest run: %v", err)
	}
}
