// Package buffer provides the fixed-capacity sample history used by the
// FIR engine. [Ring] exposes "push and evict oldest" and "iterate most
// recent to oldest", keeping buffer mechanics out of the convolution math.
package buffer
