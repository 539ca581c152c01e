package datasets

import (
	"fmt"
	"log/slog"
	"sort"
)

// Split selects which subjects a dataset exposes. The partition is
// positional over the lexicographically sorted subject list, so the same
// workbook always produces the same train/test membership.
type Split string

const (
	TrainSplit      Split = "train"
	TestSplit       Split = "test"
	AllSplit        Split = "all"
	ValidationSplit Split = "validation"
)

const (
	// expectedSubjects is the subject count of the reference recordings.
	// A deviation is worth flagging but not fatal; studies legitimately
	// vary.
	expectedSubjects = 20
	// trainSubjects is how many of the sorted subjects the train split
	// keeps; the remainder form the test split.
	trainSubjects = 16
)

// sampleMeta locates one retained subject-event recording. Column is the
// position within the full header list, before any non-data column offset.
type sampleMeta struct {
	Event   string
	Subject string
	Column  int
}

// partitionSubjects filters the header entries down to the subjects
// belonging to the requested split, preserving original column order.
func partitionSubjects(headers []headerEntry, split Split, log *slog.Logger) ([]sampleMeta, error) {
	distinct := make(map[string]bool)
	for _, h := range headers {
		distinct[h.Subject] = true
	}
	subjects := make([]string, 0, len(distinct))
	for s := range distinct {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	if len(subjects) != expectedSubjects {
		log.Warn("unexpected subject count",
			slog.Int("want", expectedSubjects),
			slog.Int("got", len(subjects)))
	}

	var selected []string
	switch split {
	case TrainSplit:
		selected = subjects[:min(trainSubjects, len(subjects))]
	case TestSplit:
		selected = subjects[min(trainSubjects, len(subjects)):]
	case AllSplit, ValidationSplit:
		selected = subjects
	default:
		return nil, fmt.Errorf("%w: %q", ErrSplit, split)
	}

	keep := make(map[string]bool, len(selected))
	for _, s := range selected {
		keep[s] = true
	}

	var meta []sampleMeta
	for col, h := range headers {
		if keep[h.Subject] {
			meta = append(meta, sampleMeta{Event: h.Event, Subject: h.Subject, Column: col})
		}
	}
	return meta, nil
}
