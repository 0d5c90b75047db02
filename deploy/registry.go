package deploy

import (
	"errors"
	"fmt"

	"github.com/gyldnet/gyld-contract/contracts/accessregistry/registryconst"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// RegistrySettings describes the initial state of the GYLD access registry.
type RegistrySettings struct {
	// Registry owner account. Must witness the initializing transaction.
	Owner util.Uint160

	// Sanction oracle contract. Optional, nil disables sanction screening.
	Oracle *util.Uint160

	// Auto-approved factory owner account.
	FactoryOwner util.Uint160

	// Identities denied from the start. Optional.
	InitialDenied []util.Uint160
}

// Validate checks the settings without any network interaction.
func (s RegistrySettings) Validate() error {
	if s.Owner.Equals(util.Uint160{}) {
		return errors.New("zero owner account")
	}

	if s.FactoryOwner.Equals(util.Uint160{}) {
		return errors.New("zero factory owner account")
	}

	if s.Oracle != nil && s.Oracle.Equals(util.Uint160{}) {
		return errors.New("zero oracle contract")
	}

	if len(s.InitialDenied) > registryconst.MaxBatchSize {
		return fmt.Errorf("initial denial list is longer than %d", registryconst.MaxBatchSize)
	}

	return nil
}

// initialDeniedArg converts the denial list into an initialize argument.
func (s RegistrySettings) initialDeniedArg() []any {
	res := make([]any, 0, len(s.InitialDenied))
	for i := range s.InitialDenied {
		res = append(res, s.InitialDenied[i])
	}

	return res
}

// oracleArg converts the optional oracle into an initialize argument: empty
// bytes disable sanction screening on the contract side.
func (s RegistrySettings) oracleArg() any {
	if s.Oracle == nil {
		return []byte{}
	}

	return *s.Oracle
}
