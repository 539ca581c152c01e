// Command fnirsinfo opens an fNIRS workbook and prints what a training run
// would see: sample count, channels, regime and the shape of one sample.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/raindropsonr0ses/fnirs/datasets"
)

func main() {
	source := flag.String("source", "", "path to the fNIRS xlsx workbook")
	split := flag.String("split", "train", "subject split: train, test, all or validation")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *source == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ds, err := datasets.OpenFNIRSDataset(datasets.Config{
		Path:   *source,
		Split:  datasets.Split(*split),
		Logger: logger,
	})
	if err != nil {
		logger.Error("open dataset", slog.Any("err", err))
		os.Exit(1)
	}

	fmt.Printf("samples:  %d\n", ds.Len())
	fmt.Printf("channels: %d %v\n", len(ds.Channels()), ds.Channels())
	fmt.Printf("regime:   %s (target length %d)\n", ds.Regime(), ds.Regime().TargetLength())
	fmt.Printf("shape:    %v\n", ds.Shape())

	if ds.Len() > 0 {
		sample, label, err := ds.Sample(0)
		if err != nil {
			logger.Error("read sample", slog.Any("err", err))
			os.Exit(1)
		}
		fmt.Printf("sample 0: shape %v label %d\n", sample.Shape(), label)
	}
}
