// Package fir provides the moving-window FIR engine of the sample pipeline.
//
// A [Filter] keeps a fixed window of the N most recent samples and convolves
// it with N pre-computed taps. The tap set is fixed when the filter is built:
// [MovingAverage] for a causal smoother, [HighPass20] for the 20-tap
// high-pass designed for a 1 kHz sample rate, or any set read with
// [LoadTaps]. A tap set whose length differs from the declared tap count is a
// construction error.
//
// [FrequencyResponse] evaluates a tap set on an FFT grid for inspection. It
// never touches the sample stream.
package fir
