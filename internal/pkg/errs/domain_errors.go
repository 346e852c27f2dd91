package errs

// Cross-layer sentinel errors shared by usecases and handlers
var (
	// Lookup errors
	ErrUserNotFound           = New("user not found")
	ErrOrderNotFound          = New("order not found")
	ErrServiceRequestNotFound = New("service request not found")

	// Escrow errors
	ErrEscrowNotFound = New("no authorized escrow payment for order")
	ErrReleaseFailed  = New("escrow release failed")

	// Validation errors
	ErrDomainValidation = New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
