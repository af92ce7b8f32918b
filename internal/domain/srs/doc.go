// Package srs implements the FSRS forgetting-curve scheduler used by the
// Memoria review service. The engine is a pure function: given an
// immutable parameter set, the previous memory state (or nil on first
// exposure), a rating and a timestamp, it produces the next state, the
// promised interval and the review-log bookkeeping fields. It performs
// no I/O and never fails for a valid rating and finite previous state.
package srs
