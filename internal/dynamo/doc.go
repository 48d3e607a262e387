// Package dynamo drives a physics.World through time.
//
// Two entry points share the same stepping rules:
//
//   - [Engine]: the interactive per-frame loop. It applies polled input,
//     recomputes gravity and collisions, integrates when the simulation is
//     running fast enough, updates the camera and refreshes velocity arrows.
//   - [Run]: a headless fixed-timestep run that feeds metrics and a trace.
//
// [Ensemble] runs several headless worlds concurrently.
//
// # Example
//
//	w := cfg.BuildWorld()
//	res, err := dynamo.Run(ctx, w, dynamo.RunConfig{Dt: 0.001, Duration: 10})
//
// # Thread Safety
//
// Engine and World instances are NOT thread-safe. Ensemble gives each run
// its own World.
package dynamo
