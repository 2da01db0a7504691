// Package services provides domain services for rules that span the order and session
// aggregates of the production tracking system.
//
// The package includes:
//   - AvailabilityChecker: decides whether an operator may act on an order right now
//
// Services here are pure: they read the aggregates they are given and never persist anything.
package services
