/*
Package accessregistry implements Access Registry contract of the GYLD
protocol.

Access Registry contract is the central authority deciding which identities
may use GYLD protocol services. It keeps an owner-managed denial list and
optionally consults an external sanction oracle contract; local denial always
wins over the oracle answer, and any oracle uncertainty is resolved to
rejection, never to approval. The registry owner and the designated factory
owner bypass all checks and can never be denied.

Ownership is handed over in two steps (TransferOwnership followed by
AcceptOwnership witnessed by the nominee), so a transfer to a wrong account
can always be abandoned by re-nominating.

Batch operations touch at most 15 identities: each denial record is a
separate storage item and the limit bounds the storage items one transaction
writes or removes.

# Contract notifications

Denied notification. This notification is produced when a denial record is
created for an identity.

	Denied:
	  - name: subject
	    type: Hash160

Undenied notification. This notification is produced when a denial record is
removed.

	Undenied:
	  - name: subject
	    type: Hash160

OwnershipTransferInitiated notification. This notification is produced when
the current owner nominates a new one.

	OwnershipTransferInitiated:
	  - name: owner
	    type: Hash160
	  - name: newOwner
	    type: Hash160

OwnershipTransferred notification. This notification is produced when the
nominee accepts the ownership.

	OwnershipTransferred:
	  - name: oldOwner
	    type: Hash160
	  - name: newOwner
	    type: Hash160
*/
package accessregistry

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'o' -> interop.Hash160
   registry owner
 - 'p' -> interop.Hash160
   nominated owner of an in-progress ownership transfer, absent otherwise
 - 'c' -> interop.Hash160
   sanction oracle contract, absent when oracle integration is disabled
 - 'f' -> interop.Hash160
   auto-approved factory owner
 - 'n' -> int
   number of denial records
 - 'd' + subject hash -> std.Serialize(DenialEntry)
   denial records of all currently denied identities

# Denial list
An identity is denied exactly when its 'd'-prefixed record exists. Lifting a
denial deletes the record, so the storage deposit of the record is released
back within the deleting transaction. The 'n' counter is updated in the same
transaction as every record change and always equals the record count.
*/
