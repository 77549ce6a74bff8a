// Package kmeanslab provides the step-by-step k-means engine behind a
// teaching visualizer: synthetic 2-D datasets, one explicit Lloyd iteration
// per user event, and full state snapshots for rendering and persistence.
//
// Unlike a clustering library, nothing here iterates to convergence on its
// own. Every external "step" advances the algorithm exactly one round so the
// intermediate states can be drawn and discussed.
//
// # Quick Start
//
//	session, err := kmeanslab.New(
//	    kmeanslab.WithSeed(42),
//	    kmeanslab.WithK(3),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	for {
//	    rs, err := session.Step()
//	    if err != nil {
//	        panic(err)
//	    }
//	    if rs.State.Converged {
//	        break
//	    }
//	}
//
// Regenerate data, change K (both reset the run), or persist the session:
//
//	_ = session.Generate(synth.Params{N: 400, BlobCount: 4, SpreadMin: 0.3, SpreadMax: 1.0, NoiseProportion: 0.05})
//	_ = session.SetK(4)
//	_ = session.SaveToFile("session.kml")
//
// # Subpackages
//
//   - engine: the step state machine (Empty -> Ready -> Running -> Converged)
//   - synth: blob + noise dataset generation
//   - kmeans: assignment, centroid update, WSS primitives
//   - plot: echarts HTML exports of a render state
//   - sweep: parallel elbow-method K sweeps
//   - codec, blobstore: snapshot encoding and storage backends
package kmeanslab
