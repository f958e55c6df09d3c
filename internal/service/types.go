package service

// Variant names a store flavour.
type Variant string

const (
	// VariantFull stores {text, completed} records and supports every command.
	VariantFull Variant = "full"

	// VariantBasic stores plain strings and supports add, rm and list only.
	VariantBasic Variant = "basic"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantFull || v == VariantBasic
}
