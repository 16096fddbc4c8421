package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/GabrielZirk/Magic-ring/config"
)

// OutputManager writes run output: a config snapshot and CSV logs.
type OutputManager struct {
	dir        string
	perfFile   *os.File
	fieldFile  *os.File
	eventsFile *os.File

	perfHeaderWritten   bool
	fieldHeaderWritten  bool
	eventsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "field.csv"))
	if err != nil {
		om.perfFile.Close()
		return nil, fmt.Errorf("creating field.csv: %w", err)
	}
	om.fieldFile = f

	f, err = os.Create(filepath.Join(dir, "events.csv"))
	if err != nil {
		om.perfFile.Close()
		om.fieldFile.Close()
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}
	om.eventsFile = f

	return om, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(frame)}
	if err := writeRecords(om.perfFile, records, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteField appends a field statistics record to field.csv.
func (om *OutputManager) WriteField(fs FieldStats) error {
	if om == nil {
		return nil
	}
	records := []FieldStats{fs}
	if err := writeRecords(om.fieldFile, records, &om.fieldHeaderWritten); err != nil {
		return fmt.Errorf("writing field stats: %w", err)
	}
	return nil
}

// WriteEvents appends a window of event counts to events.csv.
func (om *OutputManager) WriteEvents(ev WindowEvents) error {
	if om == nil {
		return nil
	}
	records := []WindowEvents{ev}
	if err := writeRecords(om.eventsFile, records, &om.eventsHeaderWritten); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// writeRecords marshals records, including the header only on the first write.
func writeRecords(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	if om.perfFile != nil {
		errs = append(errs, om.perfFile.Close())
	}
	if om.fieldFile != nil {
		errs = append(errs, om.fieldFile.Close())
	}
	if om.eventsFile != nil {
		errs = append(errs, om.eventsFile.Close())
	}
	return errors.Join(errs...)
}
