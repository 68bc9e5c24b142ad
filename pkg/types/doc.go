/*
Package types implements the type compatibility checker for value sockets.

An Expression declares exactly one produced type drawn from a closed vocabulary.
A Value socket declares a comma-separated set of accepted types. Compatibility is
exact membership, with "any" on the socket side as the only wildcard:

	set := types.ParseSet("number, text")
	types.Accepts(set, types.Number) // true
	types.Accepts(set, types.Color)  // false
	types.Accepts(types.ParseSet("any"), types.Color) // true

No coercion or subtype relation is consulted. The package also owns the
type-indexed literal conversions used when a socket holds typed-in text.
*/
package types
