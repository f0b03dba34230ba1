package domain

// Summarizable is implemented by entities that can describe themselves in a
// single human-readable line. Customer and the ledger aggregate both
// implement it independently; there is no shared base type.
type Summarizable interface {
	Summary() string
}
