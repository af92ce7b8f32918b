// Package postgres implements the store interfaces on PostgreSQL via
// database/sql and the pgx stdlib driver. Every store accepts a
// store.DBTX so it can run against a pool or a transaction.
package postgres
