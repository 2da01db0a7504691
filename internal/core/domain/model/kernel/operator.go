package kernel

import (
	"errors"
	"strings"

	"brillante/internal/pkg/errs"
	"brillante/internal/pkg/guard"
)

var (
	// ErrOperatorIsNotConstructed is returned when an Operator was not built via NewOperator.
	ErrOperatorIsNotConstructed = errors.New("Operator must be created via NewOperator constructor")
	// ErrOperatorNameIsRequired is returned for a blank display name.
	ErrOperatorNameIsRequired = errs.NewValueIsRequiredError("operator name")
)

// Operator is the person working a production order. The id comes from the identity
// provider; the display name is what conflict messages show to other operators.
type Operator struct {
	id    UUID
	name  string
	guard guard.ConstructorGuard
}

// NewOperator validates and creates an Operator. Surrounding whitespace in the name is dropped.
func NewOperator(id UUID, name string) (Operator, error) {
	if err := id.Validate(); err != nil {
		return Operator{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Operator{}, ErrOperatorNameIsRequired
	}

	return Operator{
		id:    id,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ID returns the operator identifier.
func (o Operator) ID() UUID {
	return o.id
}

// Name returns the operator display name.
func (o Operator) Name() string {
	return o.name
}

// IsEqual compares operators by identifier only; display names may change.
func (o Operator) IsEqual(other Operator) bool {
	return o.id.IsEqual(other.id)
}

// Validate ensures the operator was created through NewOperator.
func (o Operator) Validate() error {
	return o.guard.Validate(ErrOperatorIsNotConstructed)
}
