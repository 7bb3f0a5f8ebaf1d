// Package host provides the reference collaborators that let the pipeline
// run as a command-line program: sinks for the sample stream, a logging
// actuator, toggle inputs and a fixed-rate scheduler.
package host
