// Package resolve drives dependency resolution: selecting the sources that
// apply to a host, fetching them in ranked fallback order, and mapping the
// materialized artifacts.
//
// # Pipeline
//
// For each declared dependency:
//
//	Pending → Selecting → Fetching(0) → Fetching(1) → … → Resolved
//	             │                                     └→ Failed (all sources exhausted)
//	             └→ Failed (no source matches the host)
//
// [Select] filters a dependency's sources to those applicable to the host
// and orders them most-specific-first; declaration order breaks ties.
// The resolver then tries each candidate in order. Any single attempt
// failure (network error, checksum mismatch, unsupported source kind,
// missing declared artifact) moves on to the next candidate; only running
// out of candidates is an error for that dependency.
//
// # Concurrency
//
// [Resolver.Resolve] runs one goroutine per dependency and joins them all
// before returning. Source attempts within a dependency stay strictly
// sequential: they are an ordered fallback chain, and racing them would
// waste bandwidth on downloads that lose. Workers send their outcome over
// a channel and the collecting caller alone owns the result maps, so no
// map is ever mutated concurrently. Dependencies fail independently; one
// failure never aborts the others.
package resolve
