package sanctionlist

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	listPrefix  = 's'
	downtimeKey = "down"
)

// SetSanctioned marks or unmarks the subject as sanctioned. Test contract,
// so no access control.
func SetSanctioned(subject interop.Hash160, sanctioned bool) {
	ctx := storage.GetContext()
	key := append([]byte{listPrefix}, subject...)
	if sanctioned {
		storage.Put(ctx, key, true)
	} else {
		storage.Delete(ctx, key)
	}
}

// SetAvailable switches the oracle between working normally and giving no
// answer at all.
func SetAvailable(available bool) {
	ctx := storage.GetContext()
	if available {
		storage.Delete(ctx, downtimeKey)
	} else {
		storage.Put(ctx, downtimeKey, true)
	}
}

// IsSanctioned reports sanction status of the subject, or nil when the
// oracle was made unavailable via SetAvailable.
func IsSanctioned(subject interop.Hash160) any {
	ctx := storage.GetReadOnlyContext()

	if storage.Get(ctx, downtimeKey) != nil {
		return nil
	}

	return storage.Get(ctx, append([]byte{listPrefix}, subject...)) != nil
}
