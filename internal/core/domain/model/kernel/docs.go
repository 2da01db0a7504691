// Package kernel holds the shared value objects of the production tracking domain.
//
// The package includes:
//   - UUID: identifier for orders, sessions, lines, products and operators
//   - Operator: the identity (id + display name) of the person working an order
//
// Both are immutable and invalid as zero values; they must be created through their
// constructors and checked with Validate when restored from outside the domain.
package kernel
