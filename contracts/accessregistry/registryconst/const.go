package registryconst

const (
	// MaxBatchSize limits the number of identities a single batch operation
	// may touch. Every denial record is a separate storage item, so the
	// limit caps the number of items one transaction writes or removes.
	MaxBatchSize = 15

	// AlreadyInitializedError is returned on attempt to initialize the
	// registry again.
	AlreadyInitializedError = "registry already initialized"
	// NotInitializedError is returned when the registry is used before
	// initialization.
	NotInitializedError = "registry is not initialized"
	// AlreadyDeniedError is returned on attempt to deny an identity that
	// already has a denial record.
	AlreadyDeniedError = "identity is already denied"
	// NotDeniedError is returned on attempt to lift a denial that does
	// not exist.
	NotDeniedError = "identity is not denied"
	// SpecialIdentityError is returned on attempt to deny the registry
	// owner or the factory owner.
	SpecialIdentityError = "cannot deny registry owner or factory owner"
	// InvalidBatchSizeError is returned when a batch operation gets an
	// empty list or more than MaxBatchSize identities.
	InvalidBatchSizeError = "batch size must be between 1 and 15"
	// InvalidNomineeError is returned on attempt to nominate the registry
	// owner, the factory owner or a denied identity as the new owner, or
	// to accept ownership while the nominee is denied.
	InvalidNomineeError = "nominee cannot be a special or denied identity"
	// PendingOwnerError is returned when acceptOwnership is not witnessed
	// by the nominated owner, including the case when no ownership
	// transfer is pending.
	PendingOwnerError = "invalid pending owner"
	// OracleFailureError is returned when the sanction oracle did not
	// give a definitive answer. Approval is never assumed in that case.
	OracleFailureError = "sanction oracle call failed"
	// InvalidIdentityError is returned when an identity argument is not
	// a non-zero 20-byte script hash.
	InvalidIdentityError = "invalid identity"
)
