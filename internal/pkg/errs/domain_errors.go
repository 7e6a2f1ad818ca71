package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Spin errors
	ErrSpinInProgress = errors.New("spin already in progress")
	ErrSpinNotFound   = errors.New("spin not found")

	// Redemption errors
	ErrInvalidRedemption = errors.New("invalid redemption")

	// Minting errors
	ErrGenerationCollision = errors.New("promo code generation collision")

	// Storage errors
	ErrPersistenceFailure = errors.New("persistence failure")
)
