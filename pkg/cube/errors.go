package cube

import "errors"

// Failure modes of the axis algebra. Failures of the axis algebra wrap
// exactly one of these sentinels, so callers can classify them with
// errors.Is. Argument errors (an empty axis name, a nil axis or reducer, an
// unsupported operand type) and errors passed through from the engine wrap
// none of them.
var (
	// ErrDuplicateAxis reports two axes with the same name in one axis list.
	ErrDuplicateAxis = errors.New("duplicate axis")

	// ErrUniquenessViolation reports an Index axis that would acquire a
	// duplicate label.
	ErrUniquenessViolation = errors.New("uniqueness violation")

	// ErrLabelNotFound reports a lookup for a label absent from the axis.
	ErrLabelNotFound = errors.New("label not found")

	// ErrAxisNotFound reports a lookup for an axis name absent from the
	// axis list.
	ErrAxisNotFound = errors.New("axis not found")

	// ErrIncompatibleAxes reports a paired axis whose labels cannot be
	// reconciled.
	ErrIncompatibleAxes = errors.New("incompatible axes")

	// ErrShapeMismatch reports operand shapes that cannot be reconciled.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrIndexOutOfRange reports a positional selector exceeding the axis
	// length.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidPermutation reports a transpose argument that is not a
	// complete, duplicate-free permutation.
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrNonGroupableReducer reports a grouping request with a reducer that
	// is not order-insensitive.
	ErrNonGroupableReducer = errors.New("non-groupable reducer")
)
