// Package effects provides the per-sample signal-conditioning kernels of the
// sensor pipeline:
//   - Rectify: folds negative samples to their magnitude.
//   - Saturate: clamps samples into [0, VPP].
//   - NoiseInjector: adds a randomized sine burst scaled by an SNR.
//
// The kernels are order-independent building blocks; the fixed ordering of
// the pipeline lives in package effectchain.
package effects
