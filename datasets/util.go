package datasets

import (
	"strconv"
	"strings"
)

// cellValue parses one spreadsheet cell. Empty and unparsable cells read as
// zero; a bad cell never fails the sample that contains it.
func cellValue(s string) float32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0
	}
	return float32(v)
}
