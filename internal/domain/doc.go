// Package domain contains the core entities of the Memoria review
// service: flashcards and their decomposition into schedulable
// sub-items, per-learner memory state, and the append-only review log.
// Domain types validate themselves and carry no persistence concerns.
package domain
