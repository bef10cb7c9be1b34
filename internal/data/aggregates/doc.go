// Package aggregates contains infrastructure implementations of domain aggregate contracts.
//
// Implementations compose table-level repos from internal/data/repos and own
// transaction boundaries for invariant-critical writes. Filesystem side effects
// are coordinated with the transaction outcome through a per-call fileSaga.
package aggregates
