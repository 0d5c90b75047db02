package gyldtoken

import (
	"github.com/gyldnet/gyld-contract/common"
	"github.com/gyldnet/gyld-contract/contracts/gyldtoken/tokenconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Token holds all token info.
	Token struct {
		// Ticker symbol
		Symbol string
		// Amount of decimals
		Decimals int
		// Storage key for circulation value
		CirculationKey string
	}
)

const (
	symbol      = "GYLD"
	decimals    = 9
	circulation = "TotalSupply"

	accPrefix = 'a'

	adminKey    = 'm'
	registryKey = 'r'
)

var token Token

func createToken() Token {
	return Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()
}

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)

		common.CheckVersion(version)

		return
	}

	args := data.([]any)
	admin := args[0].(interop.Hash160)
	registry := args[1].(interop.Hash160)

	if len(admin) != interop.Hash160Len || len(registry) != interop.Hash160Len {
		panic("deploy: incorrect length of account script hash")
	}

	storage.Put(ctx, adminKey, admin)
	storage.Put(ctx, registryKey, registry)

	runtime.Log("gyld token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the token admin.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckWitness(getAdmin(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("gyld token contract updated")
}

// Symbol is a NEP-17 standard method that returns GYLD token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of GYLD
// balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of GYLD
// tokens in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns GYLD balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getBalance(ctx, account)
}

// Transfer is a NEP-17 standard method that transfers GYLD tokens from one
// account to another. It can be invoked only by the account owner. Both
// parties must be approved by the access registry; a denied or sanctioned
// party makes Transfer return false without moving anything.
//
// It produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	return token.transfer(ctx, from, to, amount)
}

// Mint is a method that issues new GYLD tokens to the specified account and
// increases total supply accordingly. It can be invoked only by the token
// admin, and the receiver must be approved by the access registry.
//
// It produces Transfer notification with null sender.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()

	if len(to) != interop.Hash160Len {
		panic("mint: incorrect length of account script hash")
	}
	if amount < 0 {
		panic(tokenconst.NegativeAmountError)
	}

	common.CheckWitness(getAdmin(ctx))

	if !isApproved(ctx, to) {
		panic(tokenconst.NotApprovedError)
	}

	setBalance(ctx, to, getBalance(ctx, to)+amount)

	supply := token.getSupply(ctx)
	storage.Put(ctx, token.CirculationKey, supply+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
	runtime.Log("tokens were minted")
}

// Burn is a method that destroys GYLD tokens of the specified account and
// decreases total supply accordingly. It can be invoked only by the token
// admin.
//
// It produces Transfer notification with null receiver.
func Burn(from interop.Hash160, amount int) {
	ctx := storage.GetContext()

	if len(from) != interop.Hash160Len {
		panic("burn: incorrect length of account script hash")
	}
	if amount < 0 {
		panic(tokenconst.NegativeAmountError)
	}

	common.CheckWitness(getAdmin(ctx))

	balance := getBalance(ctx, from)
	if balance < amount {
		panic("burn: not enough assets")
	}
	setBalance(ctx, from, balance-amount)

	supply := token.getSupply(ctx)
	if supply < amount {
		panic("negative supply after burn")
	}
	storage.Put(ctx, token.CirculationKey, supply-amount)

	runtime.Notify("Transfer", from, interop.Hash160(nil), amount)
	runtime.Log("tokens were burned")
}

// Admin method returns the token admin account.
func Admin() interop.Hash160 {
	return getAdmin(storage.GetReadOnlyContext())
}

// Registry method returns the access registry contract hash.
func Registry() interop.Hash160 {
	return getRegistry(storage.GetReadOnlyContext())
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	if amount < 0 {
		panic(tokenconst.NegativeAmountError)
	}

	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		runtime.Log("bad script hashes")
		return false
	}

	if !isUsableAddress(from) {
		runtime.Log("transfer is not witnessed by the sender")
		return false
	}

	if !isApproved(ctx, from) || !isApproved(ctx, to) {
		runtime.Log("transfer party is not approved by the access registry")
		return false
	}

	balance := getBalance(ctx, from)
	if balance < amount {
		runtime.Log("not enough assets")
		return false
	}

	setBalance(ctx, from, balance-amount)
	setBalance(ctx, to, getBalance(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)

	return true
}

// isApproved asks the access registry whether the account may move GYLD
// tokens. The call is read-only; a registry fault (e.g. its sanction oracle
// being unavailable) aborts the whole transaction, never approving anything.
func isApproved(ctx storage.Context, account interop.Hash160) bool {
	registry := getRegistry(ctx)
	return contract.Call(registry, "isApproved", contract.ReadOnly, account).(bool)
}

// isUsableAddress checks if the sender is either a correct NEO address or SC address.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		// Check if a smart contract is calling script hash
		callingScriptHash := runtime.GetCallingScriptHash()
		if callingScriptHash.Equals(addr) {
			return true
		}
	}

	return false
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.CirculationKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

func getBalance(ctx storage.Context, account interop.Hash160) int {
	raw := storage.Get(ctx, append([]byte{accPrefix}, account...))
	if raw == nil {
		return 0
	}

	return raw.(int)
}

func setBalance(ctx storage.Context, account interop.Hash160, balance int) {
	key := append([]byte{accPrefix}, account...)
	if balance == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance)
	}
}

func getAdmin(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, adminKey).(interop.Hash160)
}

func getRegistry(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, registryKey).(interop.Hash160)
}
