/*
Package gyldtoken implements GYLD token contract.

GYLD token is a NEP-17 compatible fungible token with 9 decimals. Unlike a
plain NEP-17 token, every balance movement is gated by the Access Registry
contract: a transfer succeeds only when both the sender and the receiver are
approved, and minting requires an approved receiver. The registry hash and
the token admin account are fixed at deployment.

Mint and Burn adjust total supply and can be invoked only by the token
admin.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification. Mint produces
it with null sender, Burn with null receiver.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package gyldtoken

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'TotalSupply' -> int
   amount of GYLD tokens in circulation
 - 'm' -> interop.Hash160
   token admin account
 - 'r' -> interop.Hash160
   access registry contract
 - 'a' + account hash -> int
   balances of all GYLD holders, record is removed when a balance empties

# Accounting
Contract stores balances of all GYLD token holders.
*/
