// Package engine contains the enumeration core: bound tables, the target
// window, seed partitioning and the branch search. It never imports app,
// writers, output, cli, or pipeline; keep it domain-only.
package engine
