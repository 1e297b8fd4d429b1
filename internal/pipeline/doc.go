// Package pipeline fans seeds out to a fixed pool of workers running an
// Engine-like Searcher and hands each branch's batch to a visit callback
// from a single collector goroutine.
//
// The only contract to implement is Searcher (SearchBranch).
// This keeps the pipeline swappable and testable.
package pipeline
