// Package testutil provides testing utilities for broadphase.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random meshes and computing
// brute-force reference answers to check the hash against.
//
// # Random Mesh Generation
//
//	rng := testutil.NewRNG(seed)
//	m := rng.RandomMesh(200, 100, 60, 10)   // 200 vertices in a 10^3 box
//	v1 := rng.Perturb(m.V, 0.5)            // second time step
//
// # Ground Truth
//
//	pairs := testutil.BruteForcePointTriangle(m.V, m.F, radius)
package testutil
