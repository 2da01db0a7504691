// Package order models the production order aggregate and its status state machine.
//
// An order is planned for a line, a product, a shift and a production date with a number
// of planned units. Operators then work it:
//
//	Pending ──Start──> InProgress ──Complete──> Completed
//	                   │  ▲    ▲                    │
//	                   └──┘    └──────Reopen────────┘
//	             (record production,
//	              self-resume via Start)
//
// Key business rules:
//   - the explicit status is the only source of truth for the lifecycle; PlanFulfilled
//     (produced >= planned) is a display value and never moves the status
//   - produced units can only be recorded while InProgress and never decrease
//   - Reopen forces any valid status back to InProgress
//
// Which operator may act on an order is not decided here; see services.AvailabilityChecker.
package order
