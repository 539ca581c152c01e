package datasets

import (
	"fmt"
	"io"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"golang.org/x/sync/errgroup"
)

// Batch materializes the samples at the given indices. Workers samples are
// read concurrently, each over its own workbook handle; since no access
// mutates dataset state this changes throughput, not semantics.
func (d *FNIRSDataset) Batch(indices []int) ([]*Sample, []int, error) {
	samples := make([]*Sample, len(indices))
	labels := make([]int, len(indices))

	var g errgroup.Group
	g.SetLimit(d.workers)
	for pos, idx := range indices {
		g.Go(func() error {
			s, label, err := d.Sample(idx)
			if err != nil {
				return err
			}
			samples[pos] = s
			labels[pos] = label
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return samples, labels, nil
}

// Tensors materializes a batch and converts it to gomlx tensors.
func (d *FNIRSDataset) Tensors(indices []int) (inputs *tensors.Tensor, labels *tensors.Tensor, err error) {
	samples, labelInts, err := d.Batch(indices)
	if err != nil {
		return nil, nil, err
	}
	flat, err := MakeSampleBatchFlat(samples, labelInts)
	if err != nil {
		return nil, nil, err
	}
	return flat.ToGomlxTensors()
}

// Name returns the name of the dataset.
func (d *FNIRSDataset) Name() string {
	return "FNIRSDataset"
}

// Yield returns the next batch of data for the gomlx Dataset interface.
// Batch size is determined by the BatchSize config field. Yield walks the
// split sequentially and returns io.EOF once the epoch is exhausted.
func (d *FNIRSDataset) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	if d.cursor >= len(d.meta) {
		return nil, nil, nil, io.EOF
	}
	end := min(d.cursor+d.batchSize, len(d.meta))
	indices := make([]int, 0, end-d.cursor)
	for i := d.cursor; i < end; i++ {
		indices = append(indices, i)
	}
	d.cursor = end

	in, lab, err := d.Tensors(indices)
	if err != nil {
		return nil, nil, nil, err
	}
	return nil, []*tensors.Tensor{in}, []*tensors.Tensor{lab}, nil
}

// Restart rewinds the Yield cursor for a new epoch.
func (d *FNIRSDataset) Restart() error {
	d.cursor = 0
	return nil
}

// SampleBatchFlat stores a batch in a flat contiguous buffer with shape
// metadata, in (batch, measurement, channel, time) order.
type SampleBatchFlat struct {
	Data       []float32
	Labels     []int32
	Batch      int
	Kinds      int
	Channels   int
	TimePoints int
}

// MakeSampleBatchFlat flattens a batch of samples into contiguous buffers,
// verifying that every sample has the same shape.
func MakeSampleBatchFlat(samples []*Sample, labels []int) (*SampleBatchFlat, error) {
	if len(samples) != len(labels) {
		return nil, fmt.Errorf("samples and labels batch sizes don't match: %d != %d", len(samples), len(labels))
	}
	if len(samples) == 0 {
		return &SampleBatchFlat{}, nil
	}

	first := samples[0]
	stride := first.Kinds * first.Channels * first.TimePoints
	flat := &SampleBatchFlat{
		Data:       make([]float32, len(samples)*stride),
		Labels:     make([]int32, len(labels)),
		Batch:      len(samples),
		Kinds:      first.Kinds,
		Channels:   first.Channels,
		TimePoints: first.TimePoints,
	}
	for i, s := range samples {
		if s.Kinds != first.Kinds || s.Channels != first.Channels || s.TimePoints != first.TimePoints {
			return nil, fmt.Errorf("inconsistent sample shape at %d: expected %v, got %v", i, first.Shape(), s.Shape())
		}
		copy(flat.Data[i*stride:], s.Data)
		flat.Labels[i] = int32(labels[i])
	}
	return flat, nil
}

// ToGomlxTensors converts the flat batch to gomlx tensors of shapes
// [batch, kinds, channels, time] and [batch].
func (b *SampleBatchFlat) ToGomlxTensors() (*tensors.Tensor, *tensors.Tensor, error) {
	// handle empty batch gracefully
	if b.Batch == 0 || b.Kinds == 0 || b.Channels == 0 || b.TimePoints == 0 {
		emptyInputs := make([][][][]float32, 0)
		emptyLabels := make([]int32, 0)
		return tensors.FromAnyValue(emptyInputs), tensors.FromAnyValue(emptyLabels), nil
	}
	// Reshape flat data into a 4D slice
	data := make([][][][]float32, b.Batch)
	idx := 0
	for i := range data {
		data[i] = make([][][]float32, b.Kinds)
		for k := 0; k < b.Kinds; k++ {
			data[i][k] = make([][]float32, b.Channels)
			for c := 0; c < b.Channels; c++ {
				data[i][k][c] = b.Data[idx : idx+b.TimePoints]
				idx += b.TimePoints
			}
		}
	}
	return tensors.FromAnyValue(data), tensors.FromAnyValue(b.Labels), nil
}
