// Package aggregates defines domain-facing aggregate contracts.
//
// Contracts avoid persistence and transport details. Each describes a write
// boundary whose invariants hold atomically across every row it touches.
package aggregates
