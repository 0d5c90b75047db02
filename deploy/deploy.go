/*
Package deploy provides GYLD contracts deployment routine.
*/
package deploy

import (
	"context"
	"fmt"
	"strings"

	registryrpc "github.com/gyldnet/gyld-contract/rpc/accessregistry"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for GYLD contracts deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose, send and track
	// transactions on the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract
	// by its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// AccessRegistryPrm groups deployment parameters of the GYLD Access Registry
// contract.
type AccessRegistryPrm struct {
	Common   CommonDeployPrm
	Settings RegistrySettings
}

// GYLDTokenPrm groups deployment parameters of the GYLD Token contract.
type GYLDTokenPrm struct {
	Common CommonDeployPrm

	// Token admin account allowed to mint and burn.
	Admin util.Uint160
}

// Prm groups all parameters of the GYLD contracts deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance hosting the contracts.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It pays for deployment and must witness the registry initialization,
	// so in practice it is the registry owner account.
	LocalAccount *wallet.Account

	AccessRegistry AccessRegistryPrm
	GYLDToken      GYLDTokenPrm
}

// Addresses groups on-chain addresses of the deployed GYLD contracts.
type Addresses struct {
	AccessRegistry util.Uint160
	GYLDToken      util.Uint160
}

// Deploy sets up GYLD contracts on the Neo network represented by given
// Prm.Blockchain: the access registry first, the token on top of it. The
// procedure is idempotent: contracts already present on the chain are left
// intact, an already initialized registry is not re-initialized, so Deploy
// may be safely re-run after a failure.
//
// Deployed contract addresses are a function of the deployer account, so
// repeated runs from the same account converge to the same Addresses.
func Deploy(ctx context.Context, prm Prm) (Addresses, error) {
	var res Addresses

	err := prm.AccessRegistry.Settings.Validate()
	if err != nil {
		return res, fmt.Errorf("invalid access registry settings: %w", err)
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	mgmt := management.New(act)
	sender := prm.LocalAccount.ScriptHash()

	prm.Logger.Info("synchronizing access registry contract with the chain...")

	res.AccessRegistry, err = syncContract(ctx, act, mgmt, prm.Blockchain, syncContractPrm{
		logger: prm.Logger,
		sender: sender,
		common: prm.AccessRegistry.Common,
	})
	if err != nil {
		return res, fmt.Errorf("sync access registry contract with the chain: %w", err)
	}

	prm.Logger.Info("access registry contract is on the chain", zap.Stringer("address", res.AccessRegistry))

	err = initAccessRegistry(ctx, act, prm.Blockchain, res.AccessRegistry, prm.AccessRegistry.Settings, prm.Logger)
	if err != nil {
		return res, fmt.Errorf("init access registry contract: %w", err)
	}

	tokenAdmin := prm.GYLDToken.Admin
	if tokenAdmin.Equals(util.Uint160{}) {
		tokenAdmin = sender
	}

	prm.Logger.Info("synchronizing token contract with the chain...")

	res.GYLDToken, err = syncContract(ctx, act, mgmt, prm.Blockchain, syncContractPrm{
		logger:     prm.Logger,
		sender:     sender,
		common:     prm.GYLDToken.Common,
		deployArgs: []any{tokenAdmin, res.AccessRegistry},
	})
	if err != nil {
		return res, fmt.Errorf("sync token contract with the chain: %w", err)
	}

	prm.Logger.Info("token contract is on the chain", zap.Stringer("address", res.GYLDToken))

	return res, nil
}

type syncContractPrm struct {
	logger     *zap.Logger
	sender     util.Uint160
	common     CommonDeployPrm
	deployArgs []any
}

// syncContract deploys the contract unless it is already on the chain. The
// address is calculated from the sender and the contract itself, it never
// depends on the chain state.
func syncContract(ctx context.Context, act *actor.Actor, mgmt *management.Contract, b Blockchain, prm syncContractPrm) (util.Uint160, error) {
	onChainAddress := state.CreateContractHash(prm.sender, prm.common.NEF.Checksum, prm.common.Manifest.Name)

	stateOnChain, err := b.GetContractStateByHash(onChainAddress)
	if err == nil {
		prm.logger.Info("contract is already on the chain, skip deployment",
			zap.String("name", prm.common.Manifest.Name), zap.Int32("id", stateOnChain.ID))
		return onChainAddress, nil
	} else if !strings.Contains(err.Error(), "Unknown contract") {
		return onChainAddress, fmt.Errorf("read on-chain state of the contract: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return onChainAddress, fmt.Errorf("wait for deployment: %w", err)
	}

	var deployArgs any
	if prm.deployArgs != nil {
		deployArgs = prm.deployArgs
	}

	txHash, vub, err := mgmt.Deploy(&prm.common.NEF, &prm.common.Manifest, deployArgs)
	if err != nil {
		return onChainAddress, fmt.Errorf("send deployment transaction: %w", err)
	}

	prm.logger.Info("deployment transaction sent, waiting for it to be accepted...",
		zap.String("name", prm.common.Manifest.Name), zap.Stringer("tx", txHash))

	appExec, err := act.Wait(txHash, vub, nil)
	if err != nil {
		return onChainAddress, fmt.Errorf("wait for deployment transaction: %w", err)
	}

	if appExec.VMState != vmstate.Halt {
		return onChainAddress, fmt.Errorf("deployment transaction faulted: %s", appExec.FaultException)
	}

	return onChainAddress, nil
}

// initAccessRegistry invokes registry's initialize method unless this has
// been done before. An initialized registry with an owner different from the
// requested one is a configuration error, not a reason to re-initialize.
func initAccessRegistry(ctx context.Context, act *actor.Actor, b Blockchain, addr util.Uint160, settings RegistrySettings, l *zap.Logger) error {
	reader := registryrpc.NewReader(invoker.New(b, nil), addr)

	owner, err := reader.Owner()
	if err == nil {
		if !owner.Equals(settings.Owner) {
			return fmt.Errorf("registry is already initialized with different owner %s", owner)
		}

		l.Info("access registry is already initialized", zap.Stringer("owner", owner))
		return nil
	} else if !strings.Contains(err.Error(), registryrpc.NotInitializedError) {
		return fmt.Errorf("read registry owner: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("wait for initialization: %w", err)
	}

	l.Info("initializing access registry...", zap.Stringer("owner", settings.Owner))

	txHash, vub, err := act.SendCall(addr, "initialize",
		settings.Owner, settings.oracleArg(), settings.FactoryOwner, settings.initialDeniedArg())
	if err != nil {
		return fmt.Errorf("send initializing transaction: %w", err)
	}

	appExec, err := act.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for initializing transaction: %w", err)
	}

	if appExec.VMState != vmstate.Halt {
		return fmt.Errorf("initializing transaction faulted: %s", appExec.FaultException)
	}

	l.Info("access registry successfully initialized")

	return nil
}
