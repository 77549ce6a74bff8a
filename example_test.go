package kmeanslab_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/kmeanslab"
	"github.com/hupe1980/kmeanslab/blobstore"
	"github.com/hupe1980/kmeanslab/synth"
)

// Example_session demonstrates stepping a session.
func Example_session() {
	session, err := kmeanslab.New(
		kmeanslab.WithSeed(42), // Deterministic dataset and initialization
		kmeanslab.WithK(3),     // Cluster count
	)
	if err != nil {
		log.Fatal(err)
	}

	// The first step samples initial centroids and assigns every point.
	rs, err := session.Step()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("iteration=%d phase=%s\n", rs.State.Iteration, rs.State.Phase)
	// Output: iteration=1 phase=Running
}

// Example_generate demonstrates regenerating the dataset mid-session.
func Example_generate() {
	session, err := kmeanslab.New(kmeanslab.WithSeed(7))
	if err != nil {
		log.Fatal(err)
	}

	// Replace the dataset; the run state resets, K is kept.
	err = session.Generate(synth.Params{
		N:               100,
		BlobCount:       4,
		SpreadMin:       0.3,
		SpreadMax:       0.8,
		NoiseProportion: 0.05,
		Seed:            7,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(len(session.RenderState().Dataset), session.K())
	// Output: 100 3
}

// Example_snapshot demonstrates saving a session and resuming it later.
func Example_snapshot() {
	session, _ := kmeanslab.New(kmeanslab.WithSeed(11))
	if _, err := session.Step(); err != nil {
		log.Fatal(err)
	}

	path := "./example_session.snap"
	defer os.Remove(path) // Cleanup after example

	if err := session.SaveToFile(path); err != nil {
		log.Fatal(err)
	}

	restored, err := kmeanslab.NewFromFile(path)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(restored.State().Iteration)
	// Output: 1
}

// Example_blobstore demonstrates sharing sessions through a blob store.
func Example_blobstore() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	session, _ := kmeanslab.New(kmeanslab.WithSeed(3))
	if err := session.SaveToStore(ctx, store, "lectures/demo.snap"); err != nil {
		log.Fatal(err)
	}

	names, err := store.List(ctx, "lectures/")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(names)
	// Output: [lectures/demo.snap]
}
