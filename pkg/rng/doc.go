// Package rng provides deterministic random number generation for the
// simulation core.
//
// # Overview
//
// The RNG type ensures a reproducible play trace by deriving
// subsystem-specific seeds from a single master seed. This allows the
// dungeon, item, and enemy subsystems to each have independent random
// sequences while the overall runtime stays fully deterministic given a
// seed and a config.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: the runtime's top-level seed
//   - stageName: subsystem identifier (e.g., "dungeon", "items", "enemies")
//   - configHash: hash of the active configuration
//
// This ensures:
//  1. Same inputs always produce the same RNG sequence (determinism)
//  2. Different subsystems get independent random sequences (isolation)
//  3. Config changes result in different sequences (sensitivity)
//
// # Usage
//
// Create an RNG for each subsystem:
//
//	configHash := cfg.Hash()
//	dungeonRNG := rng.NewRNG(masterSeed, "dungeon", configHash)
//	itemRNG := rng.NewRNG(masterSeed, "items", configHash)
//
// Use the RNG for all random decisions in that subsystem:
//
//	if dungeonRNG.Happens(cfg.MazeRateInv) {
//	    // carve a maze room instead of a normal one
//	}
//	pick := dungeonRNG.Select(0, emptyRoomCount)
//	for _, roomIdx := range pick.Take(n) {
//	    // place an item in roomIdx, never repeating a room
//	}
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance. Create subsystem-specific RNGs before spawning goroutines and
// pass them explicitly.
//
// # Performance
//
// The underlying math/rand.Rand is highly efficient:
//   - Uint64(): ~2ns per call
//   - Intn():   ~3ns per call
//   - Float64(): ~2ns per call
//
// Creating a new RNG costs ~8µs due to SHA-256 computation.
// Reuse RNG instances within a subsystem for best performance.
package rng
