package datasets

import "github.com/gomlx/gomlx/pkg/core/tensors"

// Sample is one fixed-length recording: a contiguous float32 buffer in
// (measurement, channel, time) row-major order. Kinds is always 2 (HbO
// first, then HbR); TimePoints equals the regime's target length.
//
// Samples are produced fresh per access and never retained by the dataset.
type Sample struct {
	Data       []float32
	Kinds      int
	Channels   int
	TimePoints int
}

// At returns the value for one (measurement, channel, time) coordinate.
func (s *Sample) At(kind, channel, t int) float32 {
	return s.Data[(kind*s.Channels+channel)*s.TimePoints+t]
}

// Shape returns the sample dimensions in (measurement, channel, time) order.
func (s *Sample) Shape() []int {
	return []int{s.Kinds, s.Channels, s.TimePoints}
}

// series returns the time series of one (measurement, channel) pair as a
// view into the buffer.
func (s *Sample) series(kind, channel int) []float32 {
	start := (kind*s.Channels + channel) * s.TimePoints
	return s.Data[start : start+s.TimePoints]
}

// ToGomlxTensor converts the sample into a gomlx tensor of shape
// [Kinds, Channels, TimePoints].
func (s *Sample) ToGomlxTensor() (*tensors.Tensor, error) {
	if s.Kinds == 0 || s.Channels == 0 || s.TimePoints == 0 {
		empty := make([][][]float32, 0)
		return tensors.FromAnyValue(empty), nil
	}
	// Reshape the flat buffer into a 3D slice
	data := make([][][]float32, s.Kinds)
	idx := 0
	for k := range data {
		data[k] = make([][]float32, s.Channels)
		for c := 0; c < s.Channels; c++ {
			data[k][c] = s.Data[idx : idx+s.TimePoints]
			idx += s.TimePoints
		}
	}
	return tensors.FromAnyValue(data), nil
}
