// Package accessregistry contains RPC wrappers for GYLD Access Registry contract.
package accessregistry

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// AccessregistryDenialEntry is a contract-specific accessregistry.DenialEntry type used by its methods.
type AccessregistryDenialEntry struct {
	Subject util.Uint160
	Denied bool
	CreatedAt *big.Int
}

// DeniedEvent represents "Denied" event emitted by the contract.
type DeniedEvent struct {
	Subject util.Uint160
}

// UndeniedEvent represents "Undenied" event emitted by the contract.
type UndeniedEvent struct {
	Subject util.Uint160
}

// OwnershipTransferInitiatedEvent represents "OwnershipTransferInitiated" event emitted by the contract.
type OwnershipTransferInitiatedEvent struct {
	Owner util.Uint160
	NewOwner util.Uint160
}

// OwnershipTransferredEvent represents "OwnershipTransferred" event emitted by the contract.
type OwnershipTransferredEvent struct {
	OldOwner util.Uint160
	NewOwner util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// DenialCount invokes `denialCount` method of contract.
func (c *ContractReader) DenialCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "denialCount"))
}

// DenialRecord invokes `denialRecord` method of contract.
func (c *ContractReader) DenialRecord(subject util.Uint160) (*AccessregistryDenialEntry, error) {
	return itemToAccessregistryDenialEntry(unwrap.Item(c.invoker.Call(c.hash, "denialRecord", subject)))
}

// FactoryOwner invokes `factoryOwner` method of contract.
func (c *ContractReader) FactoryOwner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "factoryOwner"))
}

// GetApprovedBatch invokes `getApprovedBatch` method of contract.
func (c *ContractReader) GetApprovedBatch(subjects []util.Uint160) ([]bool, error) {
	return unwrap.ArrayOfBools(c.invoker.Call(c.hash, "getApprovedBatch", subjects))
}

// IsApproved invokes `isApproved` method of contract.
func (c *ContractReader) IsApproved(subject util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isApproved", subject))
}

// IsDenied invokes `isDenied` method of contract.
func (c *ContractReader) IsDenied(subject util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isDenied", subject))
}

// IterateDenied invokes `iterateDenied` method of contract.
func (c *ContractReader) IterateDenied() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateDenied"))
}

// IterateDeniedExpanded is similar to IterateDenied (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateDeniedExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateDenied", _numOfIteratorItems))
}

// Oracle invokes `oracle` method of contract.
func (c *ContractReader) Oracle() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "oracle"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// PendingOwner invokes `pendingOwner` method of contract.
func (c *ContractReader) PendingOwner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "pendingOwner"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AcceptOwnership creates a transaction invoking `acceptOwnership` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AcceptOwnership() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "acceptOwnership")
}

// AcceptOwnershipTransaction creates a transaction invoking `acceptOwnership` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AcceptOwnershipTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "acceptOwnership")
}

// AcceptOwnershipUnsigned creates a transaction invoking `acceptOwnership` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AcceptOwnershipUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "acceptOwnership", nil)
}

// Initialize creates a transaction invoking `initialize` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Initialize(owner util.Uint160, oracle util.Uint160, factoryOwner util.Uint160, initialDenied []util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initialize", owner, oracle, factoryOwner, initialDenied)
}

// InitializeTransaction creates a transaction invoking `initialize` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeTransaction(owner util.Uint160, oracle util.Uint160, factoryOwner util.Uint160, initialDenied []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initialize", owner, oracle, factoryOwner, initialDenied)
}

// InitializeUnsigned creates a transaction invoking `initialize` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeUnsigned(owner util.Uint160, oracle util.Uint160, factoryOwner util.Uint160, initialDenied []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initialize", nil, owner, oracle, factoryOwner, initialDenied)
}

// SetDenied creates a transaction invoking `setDenied` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetDenied(subject util.Uint160, denied bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setDenied", subject, denied)
}

// SetDeniedTransaction creates a transaction invoking `setDenied` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetDeniedTransaction(subject util.Uint160, denied bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setDenied", subject, denied)
}

// SetDeniedUnsigned creates a transaction invoking `setDenied` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetDeniedUnsigned(subject util.Uint160, denied bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setDenied", nil, subject, denied)
}

// SetDeniedBatch creates a transaction invoking `setDeniedBatch` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetDeniedBatch(subjects []util.Uint160, denied bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setDeniedBatch", subjects, denied)
}

// SetDeniedBatchTransaction creates a transaction invoking `setDeniedBatch` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetDeniedBatchTransaction(subjects []util.Uint160, denied bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setDeniedBatch", subjects, denied)
}

// SetDeniedBatchUnsigned creates a transaction invoking `setDeniedBatch` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetDeniedBatchUnsigned(subjects []util.Uint160, denied bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setDeniedBatch", nil, subjects, denied)
}

// TransferOwnership creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferOwnership(newOwner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transferOwnership", newOwner)
}

// TransferOwnershipTransaction creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferOwnershipTransaction(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transferOwnership", newOwner)
}

// TransferOwnershipUnsigned creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferOwnershipUnsigned(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transferOwnership", nil, newOwner)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToAccessregistryDenialEntry converts stack item into *AccessregistryDenialEntry.
func itemToAccessregistryDenialEntry(item stackitem.Item, err error) (*AccessregistryDenialEntry, error) {
	if err != nil {
		return nil, err
	}
	var res = new(AccessregistryDenialEntry)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of AccessregistryDenialEntry from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *AccessregistryDenialEntry) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Subject, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Subject: %w", err)
	}

	index++
	res.Denied, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Denied: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	return nil
}

// DeniedEventsFromApplicationLog retrieves a set of all emitted events
// with "Denied" name from the provided [result.ApplicationLog].
func DeniedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DeniedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DeniedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Denied" {
				continue
			}
			event := new(DeniedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DeniedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DeniedEvent or
// returns an error if it's not possible to do to so.
func (e *DeniedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Subject, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Subject: %w", err)
	}

	return nil
}

// UndeniedEventsFromApplicationLog retrieves a set of all emitted events
// with "Undenied" name from the provided [result.ApplicationLog].
func UndeniedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UndeniedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UndeniedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Undenied" {
				continue
			}
			event := new(UndeniedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UndeniedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UndeniedEvent or
// returns an error if it's not possible to do to so.
func (e *UndeniedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Subject, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Subject: %w", err)
	}

	return nil
}

// OwnershipTransferInitiatedEventsFromApplicationLog retrieves a set of all emitted events
// with "OwnershipTransferInitiated" name from the provided [result.ApplicationLog].
func OwnershipTransferInitiatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*OwnershipTransferInitiatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OwnershipTransferInitiatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OwnershipTransferInitiated" {
				continue
			}
			event := new(OwnershipTransferInitiatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OwnershipTransferInitiatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OwnershipTransferInitiatedEvent or
// returns an error if it's not possible to do to so.
func (e *OwnershipTransferInitiatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.NewOwner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field NewOwner: %w", err)
	}

	return nil
}

// OwnershipTransferredEventsFromApplicationLog retrieves a set of all emitted events
// with "OwnershipTransferred" name from the provided [result.ApplicationLog].
func OwnershipTransferredEventsFromApplicationLog(log *result.ApplicationLog) ([]*OwnershipTransferredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OwnershipTransferredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OwnershipTransferred" {
				continue
			}
			event := new(OwnershipTransferredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OwnershipTransferredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OwnershipTransferredEvent or
// returns an error if it's not possible to do to so.
func (e *OwnershipTransferredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OldOwner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field OldOwner: %w", err)
	}

	index++
	e.NewOwner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field NewOwner: %w", err)
	}

	return nil
}
