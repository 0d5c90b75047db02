package tokenconst

const (
	// NotApprovedError is returned when a transfer or mint party is not
	// approved by the access registry.
	NotApprovedError = "account is not approved by the access registry"
	// NegativeAmountError is returned on a transfer, mint or burn of a
	// negative amount.
	NegativeAmountError = "negative amount"
)
