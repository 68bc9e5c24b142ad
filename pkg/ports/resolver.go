package ports

import "github.com/aretw0/blockyard/pkg/domain"

// Resolver resolves dot-qualified script references ("namespace.member").
type Resolver interface {
	// Resolve returns the behavior for ref, or an error wrapping
	// domain.ErrUnresolvedScript.
	Resolve(ref string) (domain.Behavior, error)
}
