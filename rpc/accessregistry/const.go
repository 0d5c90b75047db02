package accessregistry

import (
	"github.com/gyldnet/gyld-contract/contracts/accessregistry/registryconst"
)

const (
	// MaxBatchSize is the maximum number of identities accepted by batch
	// operations of the registry.
	MaxBatchSize = registryconst.MaxBatchSize

	// NotInitializedError is returned on use of a registry that has not
	// been initialized yet.
	NotInitializedError = registryconst.NotInitializedError

	// AlreadyDeniedError is returned on denying an already denied identity.
	AlreadyDeniedError = registryconst.AlreadyDeniedError
	// NotDeniedError is returned on lifting a denial that does not exist.
	NotDeniedError = registryconst.NotDeniedError

	// OracleFailureError is returned when the sanction oracle gives no
	// definitive answer.
	OracleFailureError = registryconst.OracleFailureError
)
