package datasets

import "github.com/gomlx/gomlx/pkg/core/tensors"

// This package loads fNIRS HRF recordings from an Excel workbook and presents
// them as fixed-length examples suitable for model training.
//
// The workbook holds one sheet per (channel, measurement) pair: sheet names
// carry a case-insensitive "hbo" or "hbr" marker plus a channel id written as
// two integers separated by a comma (an optode pair, e.g. "HbO 3,1"). Each
// sheet has two header rows (row 1: event codes, row 2: subject ids) followed
// by the time-series values, one column per subject-event recording.
//
// The dataset uses lazy loading - construction resolves the workbook schema
// (channel pairing, header vocabulary, subject split) once, and each access
// re-reads the needed columns from the file. Nothing is cached, which keeps
// peak memory low for large workbooks at the cost of per-access I/O. Because
// accesses never mutate shared state they can safely run in parallel over
// independent workbook handles; Batch does exactly that.
//
// Notes on gomlx tensors:
//   - Samples are contiguous float32 buffers along with shape metadata. These
//     are trivial to convert into gomlx tensors (or any other tensor type) in
//     your training code; ToGomlxTensor and ToGomlxTensors do the conversion
//     for single samples and flat batches respectively.
//
// The dataset implements this interface in order to interact with GoMLX
// training loops and batching utilities.
type Dataset interface {
	Len() int
	Sample(i int) (sample *Sample, label int, err error)
	Batch(indices []int) (samples []*Sample, labels []int, err error)

	// To implement gomlx's train.Dataset interface
	Yield() (any, []*tensors.Tensor, []*tensors.Tensor, error)
}
