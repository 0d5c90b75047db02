package accessregistry_test

import (
	"math/big"
	"path"
	"testing"

	"github.com/gyldnet/gyld-contract/common"
	"github.com/gyldnet/gyld-contract/contracts/accessregistry/registryconst"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	registryPath     = "."
	sanctionListPath = "../../internal/testcontracts/sanctionlist"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func deployRegistryContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, registryPath,
		path.Join(registryPath, "config.yml"))

	e.DeployContract(t, c, nil)
	return c.Hash
}

func deploySanctionList(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, sanctionListPath,
		path.Join(sanctionListPath, "config.yml"))

	e.DeployContract(t, c, nil)
	return c.Hash
}

// newRegistryInvoker deploys the registry and initializes it with the
// committee as the owner. Oracle is empty when withOracle is unset.
func newRegistryInvoker(t *testing.T, withOracle bool) (*neotest.ContractInvoker, *neotest.ContractInvoker, util.Uint160) {
	e := newExecutor(t)

	var (
		oracleInvoker *neotest.ContractInvoker
		oracleArg     any = []byte{}
	)
	if withOracle {
		oracleHash := deploySanctionList(t, e)
		oracleInvoker = e.CommitteeInvoker(oracleHash)
		oracleArg = oracleHash
	}

	h := deployRegistryContract(t, e)
	c := e.CommitteeInvoker(h)

	factoryOwner := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "initialize",
		e.CommitteeHash, oracleArg, factoryOwner.ScriptHash(), []any{})

	return c, oracleInvoker, factoryOwner.ScriptHash()
}

func denialCount(t *testing.T, c *neotest.ContractInvoker) int64 {
	s, err := c.TestInvoke(t, "denialCount")
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

func registryOwner(t *testing.T, c *neotest.ContractInvoker) util.Uint160 {
	s, err := c.TestInvoke(t, "owner")
	require.NoError(t, err)
	owner, err := util.Uint160DecodeBytesBE(s.Pop().Bytes())
	require.NoError(t, err)
	return owner
}

func TestRegistryInitialize(t *testing.T) {
	e := newExecutor(t)
	h := deployRegistryContract(t, e)
	c := e.CommitteeInvoker(h)

	factoryOwner := c.NewAccount(t).ScriptHash()

	t.Run("not initialized yet", func(t *testing.T) {
		c.InvokeFail(t, registryconst.NotInitializedError, "setDenied",
			c.NewAccount(t).ScriptHash(), true)
	})

	t.Run("oversized initial list", func(t *testing.T) {
		denied := make([]any, registryconst.MaxBatchSize+1)
		for i := range denied {
			denied[i] = c.NewAccount(t).ScriptHash()
		}
		c.InvokeFail(t, registryconst.InvalidBatchSizeError, "initialize",
			e.CommitteeHash, []byte{}, factoryOwner, denied)
	})

	t.Run("malformed oracle hash", func(t *testing.T) {
		c.InvokeFail(t, registryconst.InvalidIdentityError, "initialize",
			e.CommitteeHash, []byte{1, 2, 3}, factoryOwner, []any{})
	})

	t.Run("not witnessed by the owner", func(t *testing.T) {
		stranger := c.NewAccount(t)
		c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "initialize",
			e.CommitteeHash, []byte{}, factoryOwner, []any{})
	})

	t.Run("special identity in the initial list", func(t *testing.T) {
		c.InvokeFail(t, registryconst.SpecialIdentityError, "initialize",
			e.CommitteeHash, []byte{}, factoryOwner, []any{e.CommitteeHash})
		c.InvokeFail(t, registryconst.SpecialIdentityError, "initialize",
			e.CommitteeHash, []byte{}, factoryOwner, []any{factoryOwner})
	})

	denied := []any{
		c.NewAccount(t).ScriptHash(),
		c.NewAccount(t).ScriptHash(),
	}
	c.Invoke(t, stackitem.Null{}, "initialize",
		e.CommitteeHash, []byte{}, factoryOwner, denied)

	require.EqualValues(t, 2, denialCount(t, c))
	require.Equal(t, e.CommitteeHash, registryOwner(t, c))
	c.Invoke(t, stackitem.NewBool(true), "isDenied", denied[0])
	c.Invoke(t, stackitem.NewBool(true), "isDenied", denied[1])

	t.Run("second initialize", func(t *testing.T) {
		c.InvokeFail(t, registryconst.AlreadyInitializedError, "initialize",
			e.CommitteeHash, []byte{}, factoryOwner, []any{})
	})
}

func TestRegistrySetDenied(t *testing.T) {
	c, _, factoryOwner := newRegistryInvoker(t, false)

	subject := c.NewAccount(t).ScriptHash()

	t.Run("not witnessed by the owner", func(t *testing.T) {
		stranger := c.NewAccount(t)
		c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed,
			"setDenied", subject, true)
		require.EqualValues(t, 0, denialCount(t, c))
	})

	t.Run("special identities", func(t *testing.T) {
		c.InvokeFail(t, registryconst.SpecialIdentityError, "setDenied",
			registryOwner(t, c), true)
		c.InvokeFail(t, registryconst.SpecialIdentityError, "setDenied",
			factoryOwner, true)
		require.EqualValues(t, 0, denialCount(t, c))
	})

	t.Run("zero identity", func(t *testing.T) {
		c.InvokeFail(t, registryconst.InvalidIdentityError, "setDenied",
			util.Uint160{}, true)
	})

	c.Invoke(t, stackitem.Null{}, "setDenied", subject, true)
	require.EqualValues(t, 1, denialCount(t, c))
	c.Invoke(t, stackitem.NewBool(true), "isDenied", subject)
	c.Invoke(t, stackitem.NewBool(false), "isApproved", subject)

	t.Run("denial record", func(t *testing.T) {
		s, err := c.TestInvoke(t, "denialRecord", subject)
		require.NoError(t, err)

		fields := s.Pop().Array()
		require.Len(t, fields, 3)
		require.Equal(t, subject.BytesBE(), fields[0].Value().([]byte))
		require.Equal(t, true, fields[1].Value().(bool))
		require.Positive(t, fields[2].Value().(*big.Int).Int64())
	})

	t.Run("denial is not idempotent", func(t *testing.T) {
		c.InvokeFail(t, registryconst.AlreadyDeniedError, "setDenied", subject, true)
		require.EqualValues(t, 1, denialCount(t, c))
	})

	c.Invoke(t, stackitem.Null{}, "setDenied", subject, false)
	require.EqualValues(t, 0, denialCount(t, c))
	c.Invoke(t, stackitem.NewBool(false), "isDenied", subject)
	c.Invoke(t, stackitem.NewBool(true), "isApproved", subject)

	t.Run("lifting is not idempotent", func(t *testing.T) {
		c.InvokeFail(t, registryconst.NotDeniedError, "setDenied", subject, false)
		c.InvokeFail(t, registryconst.NotDeniedError, "denialRecord", subject)
	})
}

func TestRegistrySetDeniedBatch(t *testing.T) {
	c, _, _ := newRegistryInvoker(t, false)

	subjects := make([]util.Uint160, 3)
	batch := make([]any, len(subjects))
	for i := range subjects {
		subjects[i] = c.NewAccount(t).ScriptHash()
		batch[i] = subjects[i]
	}

	t.Run("bad batch size", func(t *testing.T) {
		c.InvokeFail(t, registryconst.InvalidBatchSizeError, "setDeniedBatch",
			[]any{}, true)

		oversized := make([]any, registryconst.MaxBatchSize+1)
		for i := range oversized {
			oversized[i] = c.NewAccount(t).ScriptHash()
		}
		c.InvokeFail(t, registryconst.InvalidBatchSizeError, "setDeniedBatch",
			oversized, true)
	})

	t.Run("atomicity", func(t *testing.T) {
		// Deny the middle subject upfront, then the whole batch must
		// bounce leaving the other two untouched.
		c.Invoke(t, stackitem.Null{}, "setDenied", subjects[1], true)
		c.InvokeFail(t, registryconst.AlreadyDeniedError, "setDeniedBatch", batch, true)

		require.EqualValues(t, 1, denialCount(t, c))
		c.Invoke(t, stackitem.NewBool(false), "isDenied", subjects[0])
		c.Invoke(t, stackitem.NewBool(false), "isDenied", subjects[2])

		c.Invoke(t, stackitem.Null{}, "setDenied", subjects[1], false)
	})

	t.Run("duplicate in one batch", func(t *testing.T) {
		c.InvokeFail(t, registryconst.AlreadyDeniedError, "setDeniedBatch",
			[]any{subjects[0], subjects[0]}, true)
		require.EqualValues(t, 0, denialCount(t, c))
	})

	c.Invoke(t, stackitem.Null{}, "setDeniedBatch", batch, true)
	require.EqualValues(t, 3, denialCount(t, c))
	for i := range subjects {
		c.Invoke(t, stackitem.NewBool(true), "isDenied", subjects[i])
	}

	t.Run("batch lifting", func(t *testing.T) {
		c.Invoke(t, stackitem.Null{}, "setDeniedBatch", batch[:2], false)
		require.EqualValues(t, 1, denialCount(t, c))

		// Atomic in the lifting direction as well.
		c.InvokeFail(t, registryconst.NotDeniedError, "setDeniedBatch", batch, false)
		c.Invoke(t, stackitem.NewBool(true), "isDenied", subjects[2])
	})
}

func TestRegistryOwnershipTransfer(t *testing.T) {
	c, _, factoryOwner := newRegistryInvoker(t, false)
	e := c.Executor

	nominee := c.NewAccount(t)
	stranger := c.NewAccount(t)

	t.Run("no transfer pending", func(t *testing.T) {
		c.WithSigners(nominee).InvokeFail(t, registryconst.PendingOwnerError,
			"acceptOwnership")
	})

	t.Run("not witnessed by the owner", func(t *testing.T) {
		c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed,
			"transferOwnership", nominee.ScriptHash())
	})

	t.Run("invalid nominee", func(t *testing.T) {
		c.InvokeFail(t, registryconst.InvalidIdentityError,
			"transferOwnership", util.Uint160{})
		c.InvokeFail(t, registryconst.InvalidNomineeError,
			"transferOwnership", registryOwner(t, c))
		c.InvokeFail(t, registryconst.InvalidNomineeError,
			"transferOwnership", factoryOwner)

		deniedNominee := c.NewAccount(t)
		c.Invoke(t, stackitem.Null{}, "setDenied", deniedNominee.ScriptHash(), true)
		c.InvokeFail(t, registryconst.InvalidNomineeError,
			"transferOwnership", deniedNominee.ScriptHash())
		c.Invoke(t, stackitem.Null{}, "setDenied", deniedNominee.ScriptHash(), false)
	})

	t.Run("nominee denied after nomination", func(t *testing.T) {
		c.Invoke(t, stackitem.Null{}, "transferOwnership", nominee.ScriptHash())
		c.Invoke(t, stackitem.Null{}, "setDenied", nominee.ScriptHash(), true)

		c.WithSigners(nominee).InvokeFail(t, registryconst.InvalidNomineeError,
			"acceptOwnership")
		require.Equal(t, e.CommitteeHash, registryOwner(t, c))

		// Lifting the denial makes the nomination acceptable again.
		c.Invoke(t, stackitem.Null{}, "setDenied", nominee.ScriptHash(), false)
	})

	c.Invoke(t, stackitem.Null{}, "transferOwnership", stranger.ScriptHash())
	// Re-nomination while pending simply overwrites the nominee.
	c.Invoke(t, stackitem.Null{}, "transferOwnership", nominee.ScriptHash())

	s, err := c.TestInvoke(t, "pendingOwner")
	require.NoError(t, err)
	pending, err := util.Uint160DecodeBytesBE(s.Pop().Bytes())
	require.NoError(t, err)
	require.Equal(t, nominee.ScriptHash(), pending)

	t.Run("accepted by a wrong account", func(t *testing.T) {
		c.WithSigners(stranger).InvokeFail(t, registryconst.PendingOwnerError,
			"acceptOwnership")
		require.Equal(t, e.CommitteeHash, registryOwner(t, c))
	})

	c.WithSigners(nominee).Invoke(t, stackitem.Null{}, "acceptOwnership")
	require.Equal(t, nominee.ScriptHash(), registryOwner(t, c))

	c.Invoke(t, stackitem.Null{}, "pendingOwner")

	t.Run("old owner lost control", func(t *testing.T) {
		c.InvokeFail(t, common.ErrOwnerWitnessFailed, "transferOwnership",
			e.CommitteeHash)
	})

	t.Run("accepting twice", func(t *testing.T) {
		c.WithSigners(nominee).InvokeFail(t, registryconst.PendingOwnerError,
			"acceptOwnership")
	})
}

func TestRegistryIsApproved(t *testing.T) {
	t.Run("no oracle", func(t *testing.T) {
		c, _, factoryOwner := newRegistryInvoker(t, false)

		c.Invoke(t, stackitem.NewBool(true), "isApproved", registryOwner(t, c))
		c.Invoke(t, stackitem.NewBool(true), "isApproved", factoryOwner)
		// No denial record and no oracle, everyone else passes too.
		c.Invoke(t, stackitem.NewBool(true), "isApproved", c.NewAccount(t).ScriptHash())
	})

	c, oracle, factoryOwner := newRegistryInvoker(t, true)

	clean := c.NewAccount(t).ScriptHash()
	sanctioned := c.NewAccount(t).ScriptHash()
	denied := c.NewAccount(t).ScriptHash()

	oracle.Invoke(t, stackitem.Null{}, "setSanctioned", sanctioned, true)
	c.Invoke(t, stackitem.Null{}, "setDenied", denied, true)

	c.Invoke(t, stackitem.NewBool(true), "isApproved", clean)
	c.Invoke(t, stackitem.NewBool(false), "isApproved", sanctioned)
	c.Invoke(t, stackitem.NewBool(false), "isApproved", denied)

	t.Run("special identities skip the oracle", func(t *testing.T) {
		oracle.Invoke(t, stackitem.Null{}, "setAvailable", false)
		defer oracle.Invoke(t, stackitem.Null{}, "setAvailable", true)

		c.Invoke(t, stackitem.NewBool(true), "isApproved", registryOwner(t, c))
		c.Invoke(t, stackitem.NewBool(true), "isApproved", factoryOwner)
		// Local denial is authoritative, no oracle roundtrip either.
		c.Invoke(t, stackitem.NewBool(false), "isApproved", denied)
	})

	t.Run("fail-closed on oracle downtime", func(t *testing.T) {
		oracle.Invoke(t, stackitem.Null{}, "setSanctioned", sanctioned, false)
		oracle.Invoke(t, stackitem.Null{}, "setAvailable", false)

		c.InvokeFail(t, registryconst.OracleFailureError, "isApproved", clean)
		c.InvokeFail(t, registryconst.OracleFailureError, "isApproved", sanctioned)

		oracle.Invoke(t, stackitem.Null{}, "setAvailable", true)
		c.Invoke(t, stackitem.NewBool(true), "isApproved", sanctioned)
	})
}

func TestRegistryGetApprovedBatch(t *testing.T) {
	c, oracle, _ := newRegistryInvoker(t, true)

	clean := c.NewAccount(t).ScriptHash()
	sanctioned := c.NewAccount(t).ScriptHash()
	denied := c.NewAccount(t).ScriptHash()

	oracle.Invoke(t, stackitem.Null{}, "setSanctioned", sanctioned, true)
	c.Invoke(t, stackitem.Null{}, "setDenied", denied, true)

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewBool(true),
		stackitem.NewBool(false),
		stackitem.NewBool(false),
		stackitem.NewBool(true),
	}), "getApprovedBatch", []any{clean, sanctioned, denied, registryOwner(t, c)})

	t.Run("bad batch size", func(t *testing.T) {
		c.InvokeFail(t, registryconst.InvalidBatchSizeError, "getApprovedBatch", []any{})
	})

	t.Run("one oracle failure fails the whole batch", func(t *testing.T) {
		oracle.Invoke(t, stackitem.Null{}, "setAvailable", false)

		c.InvokeFail(t, registryconst.OracleFailureError, "getApprovedBatch",
			[]any{denied, clean})
	})
}

func TestRegistryIterateDenied(t *testing.T) {
	c, _, _ := newRegistryInvoker(t, false)

	subjects := []any{
		c.NewAccount(t).ScriptHash(),
		c.NewAccount(t).ScriptHash(),
	}
	c.Invoke(t, stackitem.Null{}, "setDeniedBatch", subjects, true)

	s, err := c.TestInvoke(t, "iterateDenied")
	require.NoError(t, err)

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	var got []util.Uint160
	for iter.Next() {
		fields := iter.Value().Value().([]stackitem.Item)
		u, err := util.Uint160DecodeBytesBE(fields[0].Value().([]byte))
		require.NoError(t, err)
		got = append(got, u)
	}
	require.ElementsMatch(t, []util.Uint160{
		subjects[0].(util.Uint160),
		subjects[1].(util.Uint160),
	}, got)
}

func TestRegistryVersion(t *testing.T) {
	c, _, _ := newRegistryInvoker(t, false)
	c.Invoke(t, stackitem.Make(common.Version), "version")
}
