// Package errs define custom error types and utilities.
//
// Two families live here:
//   - HTTPError, the single JSON error shape returned to API clients.
//   - Domain errors (ValidationError, NotFoundError, PersistenceError)
//     raised by services and translated by FromDomain at the edge.
package errs
