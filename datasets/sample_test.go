package datasets

import "testing"

func testSample(kinds, channels, points int) *Sample {
	s := &Sample{
		Data:       make([]float32, kinds*channels*points),
		Kinds:      kinds,
		Channels:   channels,
		TimePoints: points,
	}
	for i := range s.Data {
		s.Data[i] = float32(i)
	}
	return s
}

func TestSampleAt(t *testing.T) {
	s := testSample(2, 3, 4)
	// Row-major (kind, channel, time): flat index (k*3+c)*4+t.
	if got := s.At(0, 0, 0); got != 0 {
		t.Fatalf("At(0,0,0) = %v", got)
	}
	if got := s.At(0, 2, 3); got != 11 {
		t.Fatalf("At(0,2,3) = %v, want 11", got)
	}
	if got := s.At(1, 0, 0); got != 12 {
		t.Fatalf("At(1,0,0) = %v, want 12", got)
	}
	if got := s.At(1, 2, 3); got != 23 {
		t.Fatalf("At(1,2,3) = %v, want 23", got)
	}

	series := s.series(1, 1)
	if len(series) != 4 || series[0] != 16 || series[3] != 19 {
		t.Fatalf("series(1,1) = %v", series)
	}
}

func TestSampleToGomlxTensor(t *testing.T) {
	s := testSample(2, 3, 4)
	tensor, err := s.ToGomlxTensor()
	if err != nil {
		t.Fatalf("ToGomlxTensor error: %v", err)
	}
	if tensor == nil {
		t.Fatalf("ToGomlxTensor returned nil tensor")
	}

	empty := &Sample{}
	tensor, err = empty.ToGomlxTensor()
	if err != nil {
		t.Fatalf("ToGomlxTensor on empty sample error: %v", err)
	}
	if tensor == nil {
		t.Fatalf("ToGomlxTensor on empty sample returned nil tensor")
	}
}

func TestMakeSampleBatchFlat(t *testing.T) {
	samples := []*Sample{testSample(2, 3, 4), testSample(2, 3, 4)}
	labels := []int{1, 2}

	flat, err := MakeSampleBatchFlat(samples, labels)
	if err != nil {
		t.Fatalf("MakeSampleBatchFlat error: %v", err)
	}
	if flat.Batch != 2 || flat.Kinds != 2 || flat.Channels != 3 || flat.TimePoints != 4 {
		t.Fatalf("unexpected flat batch dims: %+v", flat)
	}
	if len(flat.Data) != 2*2*3*4 {
		t.Fatalf("flat data length mismatch: %d", len(flat.Data))
	}
	if flat.Labels[0] != 1 || flat.Labels[1] != 2 {
		t.Fatalf("unexpected flat labels: %v", flat.Labels)
	}

	inT, labT, err := flat.ToGomlxTensors()
	if err != nil {
		t.Fatalf("ToGomlxTensors error: %v", err)
	}
	if inT == nil || labT == nil {
		t.Fatalf("ToGomlxTensors returned nil tensor(s)")
	}
}

func TestMakeSampleBatchFlat_Mismatches(t *testing.T) {
	if _, err := MakeSampleBatchFlat([]*Sample{testSample(2, 3, 4)}, []int{1, 2}); err == nil {
		t.Fatalf("expected error for mismatched sample/label counts")
	}
	if _, err := MakeSampleBatchFlat([]*Sample{testSample(2, 3, 4), testSample(2, 2, 4)}, []int{1, 2}); err == nil {
		t.Fatalf("expected error for inconsistent sample shapes")
	}

	flat, err := MakeSampleBatchFlat(nil, nil)
	if err != nil {
		t.Fatalf("empty batch error: %v", err)
	}
	if flat.Batch != 0 {
		t.Fatalf("expected empty flat batch, got %+v", flat)
	}
	if _, _, err := flat.ToGomlxTensors(); err != nil {
		t.Fatalf("ToGomlxTensors on empty batch error: %v", err)
	}
}
