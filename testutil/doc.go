// Package testutil provides testing utilities for the record store.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG and deterministic record fixtures.
//
// # Deterministic Fixtures
//
//	recs := testutil.People(20)       // persons with ids 1..20
//	rec := testutil.Person(7)         // always the same fields for id 7
//
// # Seeded Random Documents
//
//	rng := testutil.NewRNG(4711)
//	docs := rng.Documents(100)        // UUID-keyed, shape-stable per seed
package testutil
