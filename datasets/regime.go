package datasets

// Regime is the closed two-way choice fixed by a workbook's event vocabulary.
// It determines the label mapping, the fixed sample length and the window
// offsets used to align variable-length recordings to that length.
type Regime int

const (
	// Tertiary covers workbooks labeled with all three conditions S, F, H.
	Tertiary Regime = iota
	// Binary covers workbooks labeled with F and H only.
	Binary
)

func (r Regime) String() string {
	if r == Binary {
		return "binary"
	}
	return "tertiary"
}

// TargetLength is the fixed number of time points every sample of this
// regime has after windowing.
func (r Regime) TargetLength() int {
	if r == Binary {
		return 4801
	}
	return 4549
}

// Label maps an event code to its class index, or -1 for codes outside the
// regime's vocabulary. The -1 path keeps malformed columns readable for
// inspection instead of failing the access.
func (r Regime) Label(event string) int {
	switch r {
	case Tertiary:
		switch event {
		case "S":
			return 0
		case "F":
			return 1
		case "H":
			return 2
		}
	case Binary:
		switch event {
		case "F":
			return 0
		case "H":
			return 1
		}
	}
	return -1
}

// windowOffset returns the second-window shift for an event and whether two
// windows are averaged at all. Events whose native recording length already
// equals the target (S in tertiary, F in binary) take the leading window
// verbatim, as does any unmapped event.
//
// The offsets are the native-minus-target differences: in the tertiary
// regime F runs 4801 points (offset 252) and H runs 6801 (offset 2252); in
// the binary regime H's 6801 points shrink to 4801 with offset 2000.
func (r Regime) windowOffset(event string) (offset int, averaged bool) {
	switch r {
	case Tertiary:
		switch event {
		case "F":
			return 252, true
		case "H":
			return 2252, true
		}
	case Binary:
		if event == "H" {
			return 2000, true
		}
	}
	return 0, false
}
