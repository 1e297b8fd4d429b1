// Package writers moves completed branch batches from the pipeline to the
// result sink on one dedicated goroutine.
//
// Design:
//   • Writers own persistence ordering; the sink owns the file format.
//   • Engine stays domain-only; Pipeline stays orchestration-only.
package writers
