package accessregistry

import (
	"github.com/gyldnet/gyld-contract/common"
	"github.com/gyldnet/gyld-contract/contracts/accessregistry/registryconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// DenialEntry is a per-identity denial record. An identity is denied
	// exactly when its record exists, there is no lifted-but-kept state.
	DenialEntry struct {
		// Denied identity.
		Subject interop.Hash160
		// Always true for a stored record, kept for verification.
		Denied bool
		// Block timestamp of the denial, milliseconds.
		CreatedAt int
	}
)

const (
	ownerKey        = 'o'
	pendingOwnerKey = 'p'
	oracleKey       = 'c'
	factoryOwnerKey = 'f'
	countKey        = 'n'

	denyPrefix = 'd'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)

		common.CheckVersion(version)

		return
	}

	runtime.Log("access registry contract deployed, waiting for initialization")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the registry owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(requireOwner(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("access registry contract updated")
}

// Initialize method sets up the registry: its owner, the sanction oracle
// contract, the auto-approved factory owner and an optional starting denial
// list. It must be witnessed by the owner account and can be invoked exactly
// once; the owner record doubles as the initialization marker, so a repeated
// call fails with [registryconst.AlreadyInitializedError].
//
// Oracle may be empty to disable sanction screening. InitialDenied is bounded
// by [registryconst.MaxBatchSize].
func Initialize(owner, oracle, factoryOwner interop.Hash160, initialDenied []interop.Hash160) {
	ctx := storage.GetContext()

	if storage.Get(ctx, ownerKey) != nil {
		panic(registryconst.AlreadyInitializedError)
	}

	checkIdentity(owner)
	checkIdentity(factoryOwner)
	if len(oracle) != 0 && len(oracle) != interop.Hash160Len {
		panic(registryconst.InvalidIdentityError)
	}
	if len(initialDenied) > registryconst.MaxBatchSize {
		panic(registryconst.InvalidBatchSizeError)
	}

	common.CheckOwnerWitness(owner)

	storage.Put(ctx, ownerKey, owner)
	storage.Put(ctx, factoryOwnerKey, factoryOwner)
	if len(oracle) == interop.Hash160Len {
		storage.Put(ctx, oracleKey, oracle)
	}
	storage.Put(ctx, countKey, 0)

	for i := 0; i < len(initialDenied); i++ {
		deny(ctx, initialDenied[i])
	}

	runtime.Log("access registry contract initialized")
}

// SetDenied method creates or removes the denial record of the subject. It
// can be invoked only by the registry owner.
//
// Denial is deliberately not idempotent: denying an already denied subject
// fails with [registryconst.AlreadyDeniedError] and lifting a missing denial
// fails with [registryconst.NotDeniedError], so caller mistakes surface
// early. The registry owner and the factory owner can never be denied.
//
// It produces Denied or Undenied notification.
func SetDenied(subject interop.Hash160, denied bool) {
	ctx := storage.GetContext()

	checkIdentity(subject)
	common.CheckOwnerWitness(requireOwner(ctx))

	setDenied(ctx, subject, denied)
}

// SetDeniedBatch method applies SetDenied semantics to every subject in the
// list, in the list order. The whole batch is one transaction: if any subject
// fails validation, no record is created or removed. Duplicates within one
// batch fail deterministically on the second occurrence. List length is
// limited to [registryconst.MaxBatchSize] since every record is a separate
// storage item.
//
// It produces Denied or Undenied notification per subject.
func SetDeniedBatch(subjects []interop.Hash160, denied bool) {
	ctx := storage.GetContext()

	if len(subjects) == 0 || len(subjects) > registryconst.MaxBatchSize {
		panic(registryconst.InvalidBatchSizeError)
	}
	common.CheckOwnerWitness(requireOwner(ctx))

	for i := 0; i < len(subjects); i++ {
		checkIdentity(subjects[i])
		setDenied(ctx, subjects[i], denied)
	}
}

// TransferOwnership method nominates a new registry owner. It can be invoked
// only by the current owner. The nominee must not be the owner, the factory
// owner or a denied identity, otherwise the call fails with
// [registryconst.InvalidNomineeError]. The nomination takes effect when the
// nominee invokes AcceptOwnership; until then the current owner stays in
// charge and may re-nominate, overwriting the previous nominee. The two-step
// scheme makes a transfer to a mistyped or unreachable account recoverable.
//
// It produces OwnershipTransferInitiated notification.
func TransferOwnership(newOwner interop.Hash160) {
	ctx := storage.GetContext()

	checkIdentity(newOwner)
	owner := requireOwner(ctx)
	common.CheckOwnerWitness(owner)

	if isSpecialIdentity(ctx, newOwner) || storage.Get(ctx, denialKey(newOwner)) != nil {
		panic(registryconst.InvalidNomineeError)
	}

	storage.Put(ctx, pendingOwnerKey, newOwner)
	runtime.Notify("OwnershipTransferInitiated", owner, newOwner)
}

// AcceptOwnership method completes an ownership transfer. It must be
// witnessed by the nominated owner; any other invocation, including one made
// when no transfer is pending, fails with [registryconst.PendingOwnerError].
// A nominee denied after the nomination cannot accept until the denial is
// lifted: the owner never carries a denial record.
//
// It produces OwnershipTransferred notification.
func AcceptOwnership() {
	ctx := storage.GetContext()

	rawPending := storage.Get(ctx, pendingOwnerKey)
	if rawPending == nil {
		panic(registryconst.PendingOwnerError)
	}

	pending := rawPending.(interop.Hash160)
	if !runtime.CheckWitness(pending) {
		panic(registryconst.PendingOwnerError)
	}
	if storage.Get(ctx, denialKey(pending)) != nil {
		panic(registryconst.InvalidNomineeError)
	}

	oldOwner := requireOwner(ctx)
	storage.Put(ctx, ownerKey, pending)
	storage.Delete(ctx, pendingOwnerKey)
	runtime.Notify("OwnershipTransferred", oldOwner, pending)
}

// IsApproved method tells whether the subject may access registry-gated
// resources. The registry owner and the factory owner are always approved. A
// local denial record is authoritative and rejects the subject without
// consulting the oracle. Otherwise the sanction oracle decides; when no
// oracle is configured, the subject is approved.
//
// The oracle check is fail-closed: if the oracle gives no definitive answer,
// IsApproved panics with [registryconst.OracleFailureError], and if the
// oracle contract itself faults, the whole transaction aborts. Ambiguity
// never resolves to approval.
func IsApproved(subject interop.Hash160) bool {
	checkIdentity(subject)

	ctx := storage.GetReadOnlyContext()
	return approved(ctx, subject)
}

// GetApprovedBatch method applies IsApproved decision to every subject and
// returns one boolean per input, in the input order. List length is limited
// to [registryconst.MaxBatchSize]. A single oracle failure fails the whole
// call: partial approval under oracle uncertainty is not offered.
func GetApprovedBatch(subjects []interop.Hash160) []bool {
	if len(subjects) == 0 || len(subjects) > registryconst.MaxBatchSize {
		panic(registryconst.InvalidBatchSizeError)
	}

	ctx := storage.GetReadOnlyContext()

	result := []bool{}
	for i := 0; i < len(subjects); i++ {
		checkIdentity(subjects[i])
		result = append(result, approved(ctx, subjects[i]))
	}

	return result
}

// IsDenied method tells whether the subject has a denial record.
func IsDenied(subject interop.Hash160) bool {
	checkIdentity(subject)

	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, denialKey(subject)) != nil
}

// DenialRecord method returns the denial record of the subject. It fails
// with [registryconst.NotDeniedError] if the subject is not denied.
func DenialRecord(subject interop.Hash160) DenialEntry {
	checkIdentity(subject)

	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, denialKey(subject))
	if data == nil {
		panic(registryconst.NotDeniedError)
	}

	return std.Deserialize(data.([]byte)).(DenialEntry)
}

// DenialCount method returns the number of currently denied identities. It
// always equals the number of stored denial records.
func DenialCount() int {
	ctx := storage.GetReadOnlyContext()

	raw := storage.Get(ctx, countKey)
	if raw == nil {
		return 0
	}

	return raw.(int)
}

// IterateDenied method returns an iterator over all denial records, see
// [DenialEntry].
func IterateDenied() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{denyPrefix}, storage.ValuesOnly|storage.DeserializeValues)
}

// Owner method returns the current registry owner.
func Owner() interop.Hash160 {
	return requireOwner(storage.GetReadOnlyContext())
}

// PendingOwner method returns the nominated owner of an in-progress
// ownership transfer or nil when no transfer is pending.
func PendingOwner() interop.Hash160 {
	raw := storage.Get(storage.GetReadOnlyContext(), pendingOwnerKey)
	if raw == nil {
		return nil
	}

	return raw.(interop.Hash160)
}

// Oracle method returns the sanction oracle contract hash or nil when oracle
// integration is disabled.
func Oracle() interop.Hash160 {
	raw := storage.Get(storage.GetReadOnlyContext(), oracleKey)
	if raw == nil {
		return nil
	}

	return raw.(interop.Hash160)
}

// FactoryOwner method returns the auto-approved factory owner account.
func FactoryOwner() interop.Hash160 {
	raw := storage.Get(storage.GetReadOnlyContext(), factoryOwnerKey)
	if raw == nil {
		panic(registryconst.NotInitializedError)
	}

	return raw.(interop.Hash160)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func setDenied(ctx storage.Context, subject interop.Hash160, denied bool) {
	if denied {
		deny(ctx, subject)
	} else {
		undeny(ctx, subject)
	}
}

func deny(ctx storage.Context, subject interop.Hash160) {
	if isSpecialIdentity(ctx, subject) {
		panic(registryconst.SpecialIdentityError)
	}

	key := denialKey(subject)
	if storage.Get(ctx, key) != nil {
		panic(registryconst.AlreadyDeniedError)
	}

	common.SetSerialized(ctx, key, DenialEntry{
		Subject:   subject,
		Denied:    true,
		CreatedAt: runtime.GetTime(),
	})
	addToCount(ctx, 1)
	runtime.Notify("Denied", subject)
}

func undeny(ctx storage.Context, subject interop.Hash160) {
	if isSpecialIdentity(ctx, subject) {
		panic(registryconst.SpecialIdentityError)
	}

	key := denialKey(subject)
	if storage.Get(ctx, key) == nil {
		panic(registryconst.NotDeniedError)
	}

	storage.Delete(ctx, key)
	addToCount(ctx, -1)
	runtime.Notify("Undenied", subject)
}

func approved(ctx storage.Context, subject interop.Hash160) bool {
	if subject.Equals(requireOwner(ctx)) {
		return true
	}

	rawFactory := storage.Get(ctx, factoryOwnerKey)
	if subject.Equals(rawFactory.(interop.Hash160)) {
		return true
	}

	if storage.Get(ctx, denialKey(subject)) != nil {
		return false
	}

	rawOracle := storage.Get(ctx, oracleKey)
	if rawOracle == nil {
		return true
	}

	res := contract.Call(rawOracle.(interop.Hash160), "isSanctioned", contract.ReadOnly, subject)
	if res == nil {
		panic(registryconst.OracleFailureError)
	}

	return !res.(bool)
}

func isSpecialIdentity(ctx storage.Context, subject interop.Hash160) bool {
	if subject.Equals(requireOwner(ctx)) {
		return true
	}

	rawFactory := storage.Get(ctx, factoryOwnerKey)
	return subject.Equals(rawFactory.(interop.Hash160))
}

func requireOwner(ctx storage.Context) interop.Hash160 {
	raw := storage.Get(ctx, ownerKey)
	if raw == nil {
		panic(registryconst.NotInitializedError)
	}

	return raw.(interop.Hash160)
}

func addToCount(ctx storage.Context, delta int) {
	cnt := 0
	if raw := storage.Get(ctx, countKey); raw != nil {
		cnt = raw.(int)
	}

	storage.Put(ctx, countKey, cnt+delta)
}

func denialKey(subject interop.Hash160) []byte {
	return append([]byte{denyPrefix}, subject...)
}

func checkIdentity(id interop.Hash160) {
	if len(id) != interop.Hash160Len {
		panic(registryconst.InvalidIdentityError)
	}

	for i := 0; i < len(id); i++ {
		if id[i] != 0 {
			return
		}
	}
	panic(registryconst.InvalidIdentityError)
}
