// Package engine orchestrates the scan, export, import, and diff workflows
// over the registered scanner set.
package engine

import (
	_ "embed"
	"encoding/json"
	"time"

	"dario.cat/mergo"
	"github.com/hashicorp/go-multierror"

	"github.com/stylesmith/stylesmith/internal/analyzer"
	"github.com/stylesmith/stylesmith/internal/catalog"
	"github.com/stylesmith/stylesmith/internal/logger"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/internal/scanners"
	"github.com/stylesmith/stylesmith/pkg/types"
)

//go:embed data/defaults.json
var embeddedDefaults []byte

// Config wires a StyleEngine. Zero-value fields get sensible defaults: the
// real adapters, the full scanner set, a nop logger.
type Config struct {
	Store      platform.KeyValueStore
	FS         platform.FileSystem
	Checkpoint platform.Checkpoint
	Logger     logger.Logger
	Scanners   []scanners.Scanner
	Catalog    *catalog.Catalog
}

// StyleEngine owns the ordered scanner list and the defaults baseline. The
// baseline is loaded once at construction and never mutated afterwards.
type StyleEngine struct {
	scanners   []scanners.Scanner
	baseline   analyzer.Baseline
	store      platform.KeyValueStore
	fs         platform.FileSystem
	checkpoint platform.Checkpoint
	log        logger.Logger
}

// New builds an engine. A missing or unparseable bundled defaults document
// degrades to an empty baseline rather than failing construction.
func New(cfg Config) *StyleEngine {
	if cfg.Store == nil {
		cfg.Store = platform.NewMemoryKeyValueStore(nil)
	}
	if cfg.FS == nil {
		cfg.FS = platform.NewOSFileSystem()
	}
	if cfg.Checkpoint == nil {
		cfg.Checkpoint = platform.NoopCheckpoint{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.LoadEmbedded()
	}
	if cfg.Scanners == nil {
		cfg.Scanners = scanners.DefaultScanners(cfg.Store, cfg.FS, cfg.Catalog)
	}

	e := &StyleEngine{
		scanners:   cfg.Scanners,
		baseline:   loadBaseline(embeddedDefaults),
		store:      cfg.Store,
		fs:         cfg.FS,
		checkpoint: cfg.Checkpoint,
		log:        cfg.Logger,
	}
	e.mergeScannerDefaults()
	return e
}

// loadBaseline parses the bundled defaults document into the flattened
// category → dotted key → value shape the analyzer consumes.
func loadBaseline(raw []byte) analyzer.Baseline {
	baseline := analyzer.Baseline{}
	var doc map[string]map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return baseline
	}
	for category, values := range doc {
		if len(values) > 0 {
			baseline[category] = values
		}
	}
	return baseline
}

// mergeScannerDefaults folds each scanner's hard-coded defaults over the
// bundled baseline. Scanner-provided values take precedence.
func (e *StyleEngine) mergeScannerDefaults() {
	for _, scanner := range e.scanners {
		defaults := scanner.DefaultValues()
		if len(defaults) == 0 {
			continue
		}
		merged := map[string]any{}
		for k, v := range defaults {
			merged[k] = v
		}
		if existing := e.baseline[scanner.Category()]; existing != nil {
			if err := mergo.Merge(&merged, existing); err != nil {
				continue
			}
		}
		e.baseline[scanner.Category()] = merged
	}
}

// Baseline exposes the merged defaults, primarily for reporting.
func (e *StyleEngine) Baseline() analyzer.Baseline { return e.baseline }

// Scanners returns the registered scanner list in registration order.
func (e *StyleEngine) Scanners() []scanners.Scanner { return e.scanners }

// ScanAll runs every scanner whose category is in the requested set (or all
// of them when the set is empty) and classifies the collected items against
// the baseline. A single scanner's failure is logged, aggregated into the
// returned error, and excluded from the result; the result itself is always
// usable.
func (e *StyleEngine) ScanAll(categories []string) (*types.ScanResult, error) {
	start := time.Now()

	wanted := map[string]bool{}
	for _, c := range categories {
		wanted[c] = true
	}

	var items []types.ScannedItem
	var failures *multierror.Error
	for _, scanner := range e.scanners {
		if len(wanted) > 0 && !wanted[scanner.Category()] {
			continue
		}
		scanned, err := scanner.Scan()
		if err != nil {
			e.log.WithField("scanner", scanner.ID()).Error("scanner failed, skipping its results", err)
			failures = multierror.Append(failures, err)
			continue
		}
		items = append(items, scanned...)
	}

	items = analyzer.Analyze(items, e.baseline)

	result := types.NewScanResult(start)
	result.OSVersion = platform.OSVersionString(e.store)
	result.Items = items
	result.BaselineLoaded = len(e.baseline) > 0
	for _, item := range items {
		result.Summary[item.Category]++
	}
	duration := time.Since(start).Milliseconds()
	result.DurationMS = &duration

	return result, failures.ErrorOrNil()
}
