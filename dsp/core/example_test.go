package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-button/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(48000),
		core.WithBlockSize(64),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=48000 blockSize=64
}

func ExampleRescale() {
	// A 0.1-2 V trigger window mapped onto a normalized level.
	for _, v := range []float64{0.1, 1.05, 2, 5} {
		fmt.Printf("%.2f V -> %.2f\n", v, core.Rescale(v, 0.1, 2, 0, 1))
	}

	// Output:
	// 0.10 V -> 0.00
	// 1.05 V -> 0.50
	// 2.00 V -> 1.00
	// 5.00 V -> 2.58
}
