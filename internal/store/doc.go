// Package store defines the persistence interfaces of the Memoria
// review service and the transaction helper shared by their
// implementations. Concrete stores live in internal/platform/postgres.
package store
