package order

import (
	"fmt"

	"brillante/internal/pkg/errs"
)

// Status is the lifecycle state of a production order.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	              ▲   │             │
//	              └───┘ <───────────┘
//	   (resume via Start, Reopen from any state)
type Status int

const (
	// Unknown is the zero value and is never valid.
	Unknown Status = iota

	// Pending is the status assigned by planning; nobody has worked the order yet.
	Pending

	// InProgress means an operator session is (or was last) open on the order.
	InProgress

	// Completed is reached only through an explicit Complete action.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InProgress: "in-progress",
		Completed:  "completed",
	}
}

// ParseStatus converts the persisted/JSON representation back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s < Pending || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Start moves Pending to InProgress. InProgress stays InProgress so an operator can
// resume their own order; Completed orders must be reopened instead.
func (s Status) Start() (Status, error) {
	if s != Pending && s != InProgress {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start", s),
		)
	}
	return InProgress, nil
}

// Reopen forces any valid status back to InProgress.
func (s Status) Reopen() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	return InProgress, nil
}

// ValidateRecordProduction allows production counts only while InProgress.
func (s Status) ValidateRecordProduction() error {
	if s != InProgress {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to record production", s),
		)
	}
	return nil
}

// Complete moves InProgress to Completed.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}
