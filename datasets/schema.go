package datasets

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// measurement distinguishes the two signal kinds recorded per channel.
type measurement int

const (
	measurementHbO measurement = iota
	measurementHbR

	// numMeasurements is the first axis of every sample: HbO then HbR.
	numMeasurements = 2
)

// headerRows is the number of metadata rows preceding the time series in
// every sheet (row 1: event codes, row 2: subject ids).
const headerRows = 2

// ChannelID identifies a recording channel by its optode pair as written in
// the sheet name ("3,1" in "HbO 3,1").
type ChannelID struct {
	Source   int
	Detector int
}

func (c ChannelID) String() string {
	return fmt.Sprintf("%d,%d", c.Source, c.Detector)
}

// less orders channel ids by source then detector. Channel iteration order
// everywhere in the package follows this ordering so stacking is
// deterministic.
func (c ChannelID) less(o ChannelID) bool {
	if c.Source != o.Source {
		return c.Source < o.Source
	}
	return c.Detector < o.Detector
}

var channelIDPattern = regexp.MustCompile(`(\d+),(\d+)`)

// ParseChannelID extracts a channel id from a sheet name by matching two
// integers separated by a comma anywhere in the name. Names without a match
// report ok=false; they carry no channel data and are skipped by schema
// resolution. This is the single point where a misnamed sheet silently drops
// out of the dataset, so keep its behavior obvious.
func ParseChannelID(sheetName string) (id ChannelID, ok bool) {
	m := channelIDPattern.FindStringSubmatch(sheetName)
	if m == nil {
		return ChannelID{}, false
	}
	src, err := strconv.Atoi(m[1])
	if err != nil {
		return ChannelID{}, false
	}
	det, err := strconv.Atoi(m[2])
	if err != nil {
		return ChannelID{}, false
	}
	return ChannelID{Source: src, Detector: det}, true
}

// classifySheet reports which measurement a sheet carries based on a
// case-insensitive substring of its name. Sheets naming neither kind are not
// an error; the workbook may hold unrelated sheets.
func classifySheet(name string) (measurement, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "hbo"):
		return measurementHbO, true
	case strings.Contains(lower, "hbr"):
		return measurementHbR, true
	}
	return 0, false
}

// channel pairs the two sheets holding one recording location's data.
type channel struct {
	id  ChannelID
	hbo string
	hbr string
}

// headerEntry describes one data column: the experimental condition under
// which it was recorded and the subject it belongs to.
type headerEntry struct {
	Event   string
	Subject string
}

// schema holds everything resolved from the workbook at construction time.
// It is immutable once built; sample access only reads it.
type schema struct {
	channels []channel
	headers  []headerEntry

	// dropFirst records that the first column of every sheet is a
	// non-data column (e.g. timestamps) and data columns are offset by one.
	dropFirst bool

	regime Regime

	// timePoints is the number of data rows available per sheet, used to
	// size the raw buffer before windowing.
	timePoints int
}

// resolveSchema scans the workbook's sheet names, pairs HbO/HbR sheets by
// channel id, reads the header rows from one representative sheet and
// determines the labeling regime from the observed event vocabulary.
func resolveSchema(f *excelize.File) (*schema, error) {
	byID := make(map[ChannelID]*channel)
	for _, name := range f.GetSheetList() {
		kind, ok := classifySheet(name)
		if !ok {
			continue
		}
		id, ok := ParseChannelID(name)
		if !ok {
			continue
		}
		ch := byID[id]
		if ch == nil {
			ch = &channel{id: id}
			byID[id] = ch
		}
		if kind == measurementHbO {
			ch.hbo = name
		} else {
			ch.hbr = name
		}
	}

	// A channel is usable only with both measurements present; half-paired
	// ids are dropped without complaint.
	channels := make([]channel, 0, len(byID))
	for _, ch := range byID {
		if ch.hbo == "" || ch.hbr == "" {
			continue
		}
		channels = append(channels, *ch)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no paired HbO/HbR sheets found", ErrSchema)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i].id.less(channels[j].id) })

	// The header layout is identical across sheets; read it from the first
	// channel's HbO sheet.
	rows, err := f.GetRows(channels[0].hbo)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", channels[0].hbo, err)
	}
	if len(rows) < headerRows {
		return nil, fmt.Errorf("%w: sheet %q has fewer than %d header rows", ErrSchema, channels[0].hbo, headerRows)
	}
	events := rows[0]
	subjects := rows[1]

	// A leading cell that is not an event code marks a non-data first
	// column (timestamps); shift both header rows past it.
	dropFirst := false
	if len(events) > 0 && !isEventCode(strings.TrimSpace(events[0])) {
		events = events[1:]
		if len(subjects) > 0 {
			subjects = subjects[1:]
		}
		dropFirst = true
	}

	headers := make([]headerEntry, len(events))
	for i, ev := range events {
		subj := ""
		if i < len(subjects) {
			subj = strings.TrimSpace(subjects[i])
		}
		headers[i] = headerEntry{Event: strings.TrimSpace(ev), Subject: subj}
	}

	regime, err := detectRegime(headers)
	if err != nil {
		return nil, err
	}

	return &schema{
		channels:   channels,
		headers:    headers,
		dropFirst:  dropFirst,
		regime:     regime,
		timePoints: len(rows) - headerRows,
	}, nil
}

func isEventCode(s string) bool {
	switch s {
	case "S", "F", "H":
		return true
	}
	return false
}

// detectRegime maps the observed event vocabulary onto one of the two
// supported regimes. Anything else is unsupported data.
func detectRegime(headers []headerEntry) (Regime, error) {
	seen := make(map[string]bool)
	for _, h := range headers {
		seen[h.Event] = true
	}
	switch {
	case len(seen) == 3 && seen["S"] && seen["F"] && seen["H"]:
		return Tertiary, nil
	case len(seen) == 2 && seen["F"] && seen["H"]:
		return Binary, nil
	}
	vocab := make([]string, 0, len(seen))
	for ev := range seen {
		vocab = append(vocab, ev)
	}
	sort.Strings(vocab)
	return 0, fmt.Errorf("%w: unsupported event vocabulary %v", ErrSchema, vocab)
}
