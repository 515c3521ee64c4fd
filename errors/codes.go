package errors

// Root errors shared by all extensions. Codes are part of the public API,
// clients match on them, so never renumber.
var (
	// ErrUnauthorized means the signer is not allowed to run the operation,
	// for example a transporter trying to confirm a delivery.
	ErrUnauthorized = Register(2, "unauthorized")

	ErrNotFound = Register(3, "not found")

	// ErrInvalidMsg is a message that cannot be decoded or routed.
	ErrInvalidMsg = Register(4, "invalid message")

	// ErrInvalidModel is a stored entity that fails validation.
	ErrInvalidModel = Register(5, "invalid model")

	// ErrHuman marks a code path that must never be reached.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	// ErrInvalidState is an operation not allowed in the current state of
	// an entity.
	ErrInvalidState = Register(10, "invalid state")

	ErrInvalidType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when an account cannot cover a
	// transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	ErrInvalidAmount = Register(13, "invalid amount")

	ErrInvalidInput = Register(14, "invalid input")

	// ErrOverflow is an arithmetic result that does not fit its type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase wraps failures of the storage engine.
	ErrDatabase = Register(17, "database")

	// ErrPanic is a recovered panic. Its details are hidden from clients
	// unless running in debug mode.
	ErrPanic = Register(111222, "panic")
)
