package datasets

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// unitScale converts the workbook's native concentration unit to the
// working scale used downstream.
const unitScale = 1e6

// Config holds the construction options for an FNIRSDataset. Zero values
// get sensible defaults from OpenFNIRSDataset.
type Config struct {
	// Path to the xlsx workbook.
	Path string

	// Split selects the subject subset: "train", "test", "all" or
	// "validation".
	Split Split

	// BatchSize used by Yield when iterating epochs (default 32).
	BatchSize int

	// Workers bounds how many samples Batch materializes concurrently,
	// each over its own workbook handle (default 1, i.e. serial).
	Workers int

	// Logger receives construction diagnostics and data-quality warnings.
	// Nil uses slog.Default().
	Logger *slog.Logger
}

// FNIRSDataset provides lazy access to the subject-event recordings of one
// workbook. Construction resolves the schema and subject split once; every
// Sample call re-opens the workbook, reads the needed columns and returns a
// freshly windowed buffer. Apart from the Yield cursor the dataset is
// read-only after construction.
type FNIRSDataset struct {
	path      string
	schema    *schema
	meta      []sampleMeta
	batchSize int
	workers   int
	logger    *slog.Logger

	// cursor is the epoch position consumed by Yield and reset by Restart.
	cursor int
}

// NewFNIRSDataset opens the workbook at path with default options.
func NewFNIRSDataset(path string, split Split) (*FNIRSDataset, error) {
	return OpenFNIRSDataset(Config{Path: path, Split: split})
}

// OpenFNIRSDataset resolves a workbook's schema and subject split and
// returns a dataset handle. It fails with ErrSchema when no paired HbO/HbR
// sheets exist or the event vocabulary is unsupported, and with ErrSplit for
// an unrecognized split name.
func OpenFNIRSDataset(cfg Config) (*FNIRSDataset, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	f, err := excelize.OpenFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", cfg.Path, err)
	}
	defer f.Close()

	sch, err := resolveSchema(f)
	if err != nil {
		return nil, err
	}
	meta, err := partitionSubjects(sch.headers, cfg.Split, cfg.Logger)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Debug("fnirs dataset ready",
		slog.String("path", cfg.Path),
		slog.String("split", string(cfg.Split)),
		slog.String("regime", sch.regime.String()),
		slog.Int("channels", len(sch.channels)),
		slog.Int("samples", len(meta)),
		slog.Int("time_points", sch.timePoints))

	return &FNIRSDataset{
		path:      cfg.Path,
		schema:    sch,
		meta:      meta,
		batchSize: cfg.BatchSize,
		workers:   cfg.Workers,
		logger:    cfg.Logger,
	}, nil
}

// Len returns the number of subject-event recordings in the selected split.
func (d *FNIRSDataset) Len() int {
	return len(d.meta)
}

// Channels returns the paired channel ids in stacking order.
func (d *FNIRSDataset) Channels() []ChannelID {
	ids := make([]ChannelID, len(d.schema.channels))
	for i, ch := range d.schema.channels {
		ids[i] = ch.id
	}
	return ids
}

// Regime reports which labeling regime the workbook's vocabulary selected.
func (d *FNIRSDataset) Regime() Regime {
	return d.schema.regime
}

// Shape returns the (measurement, channel, time) dimensions every sample of
// this dataset has. Downstream model construction sizes itself from this.
func (d *FNIRSDataset) Shape() []int {
	return []int{numMeasurements, len(d.schema.channels), d.schema.regime.TargetLength()}
}

// Sample materializes the recording at index i: it reads the column's values
// from every channel's HbO and HbR sheets, stacks them into a
// (measurement, channel, time) buffer and applies the regime's windowing
// rule for the recording's event. The label is the event's class index, or
// -1 for an event outside the regime's vocabulary.
func (d *FNIRSDataset) Sample(i int) (*Sample, int, error) {
	if i < 0 || i >= len(d.meta) {
		return nil, 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(d.meta))
	}
	m := d.meta[i]
	col := m.Column
	if d.schema.dropFirst {
		col++
	}

	f, err := excelize.OpenFile(d.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open workbook %s: %w", d.path, err)
	}
	defer f.Close()

	raw, err := d.readRaw(f, col)
	if err != nil {
		return nil, 0, err
	}

	sample := d.window(raw, m.Event)
	label := d.schema.regime.Label(m.Event)
	if label < 0 {
		// Reaching this path means the column's event escaped regime
		// detection; worth surfacing since it usually signals a schema
		// mismatch upstream.
		d.logger.Warn("unmapped event code",
			slog.String("event", m.Event),
			slog.String("subject", m.Subject),
			slog.Int("column", m.Column))
	}
	return sample, label, nil
}

// readRaw reads one column across all channel sheets into a flat
// (measurement, channel, time) buffer of the sheet's full length.
func (d *FNIRSDataset) readRaw(f *excelize.File, col int) ([]float32, error) {
	nch := len(d.schema.channels)
	t := d.schema.timePoints
	raw := make([]float32, numMeasurements*nch*t)
	for ci, ch := range d.schema.channels {
		hboStart := (int(measurementHbO)*nch + ci) * t
		if err := readColumn(f, ch.hbo, col, raw[hboStart:hboStart+t]); err != nil {
			return nil, err
		}
		hbrStart := (int(measurementHbR)*nch + ci) * t
		if err := readColumn(f, ch.hbr, col, raw[hbrStart:hbrStart+t]); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// readColumn fills dst with one data column of a sheet, scaled to the
// working unit. dst is as long as the sheet's data rows; missing rows,
// missing cells and unparsable values all read as zero.
func readColumn(f *excelize.File, sheet string, col int, dst []float32) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	for t := range dst {
		r := t + headerRows
		if r >= len(rows) {
			break
		}
		row := rows[r]
		if col >= len(row) {
			continue
		}
		dst[t] = cellValue(row[col]) * unitScale
	}
	return nil
}

// window collapses a raw (measurement, channel, time) buffer to the regime's
// target length. Events whose native length exceeds the target average two
// overlapping windows - one at offset zero, one at the regime's per-event
// offset - which aligns the recording while suppressing the jitter between
// the two passes. Everything else takes the leading window verbatim.
// Reads past the end of a short recording contribute zero.
func (d *FNIRSDataset) window(raw []float32, event string) *Sample {
	nch := len(d.schema.channels)
	t := d.schema.timePoints
	target := d.schema.regime.TargetLength()
	sample := &Sample{
		Data:       make([]float32, numMeasurements*nch*target),
		Kinds:      numMeasurements,
		Channels:   nch,
		TimePoints: target,
	}

	offset, averaged := d.schema.regime.windowOffset(event)
	for kc := 0; kc < numMeasurements*nch; kc++ {
		src := raw[kc*t : (kc+1)*t]
		dst := sample.Data[kc*target : (kc+1)*target]
		if !averaged {
			copy(dst, src[:min(target, t)])
			continue
		}
		for i := range dst {
			var a, b float32
			if i < t {
				a = src[i]
			}
			if i+offset < t {
				b = src[i+offset]
			}
			dst[i] = (a + b) / 2
		}
	}
	return sample
}
