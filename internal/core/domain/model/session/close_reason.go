package session

import (
	"fmt"

	"brillante/internal/pkg/errs"
)

// CloseReason records why a session stopped being active.
type CloseReason string

const (
	// ReasonNone is the reason of a session that is still active.
	ReasonNone CloseReason = ""
	// ReasonSuperseded means another session took over the order.
	ReasonSuperseded CloseReason = "superseded"
	// ReasonCompleted means the order was completed.
	ReasonCompleted CloseReason = "completed"
	// ReasonReleased means the operator closed the session explicitly.
	ReasonReleased CloseReason = "released"
	// ReasonExpired means no heartbeat arrived within the session TTL.
	ReasonExpired CloseReason = "expired"
)

// Validate accepts only the reasons a session can be closed with.
func (r CloseReason) Validate() error {
	switch r {
	case ReasonSuperseded, ReasonCompleted, ReasonReleased, ReasonExpired:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("close reason", fmt.Errorf("%q is not a valid close reason", string(r)))
	}
}

func (r CloseReason) String() string {
	return string(r)
}
