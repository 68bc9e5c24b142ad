package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/blockyard/pkg/domain"
)

// Registry maps dot-qualified script references ("namespace.member") to behaviors.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]domain.Behavior
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		namespaces: make(map[string]map[string]domain.Behavior),
	}
}

// Register adds a behavior under ref.
// If a behavior with the same reference exists, it is overwritten.
func (r *Registry) Register(ref string, fn domain.Behavior) error {
	ns, member, err := Split(ref)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.namespaces[ns] == nil {
		r.namespaces[ns] = make(map[string]domain.Behavior)
	}
	r.namespaces[ns][member] = fn
	return nil
}

// RegisterNamespace adds every member of a namespace at once.
func (r *Registry) RegisterNamespace(ns string, members map[string]domain.Behavior) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.namespaces[ns] == nil {
		r.namespaces[ns] = make(map[string]domain.Behavior)
	}
	for name, fn := range members {
		r.namespaces[ns][name] = fn
	}
}

// Resolve looks up a behavior by reference.
// Unknown or malformed references wrap domain.ErrUnresolvedScript.
func (r *Registry) Resolve(ref string) (domain.Behavior, error) {
	ns, member, err := Split(ref)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	fn, ok := r.namespaces[ns][member]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnresolvedScript, ref)
	}
	return fn, nil
}

// Refs lists every registered reference, sorted.
func (r *Registry) Refs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var refs []string
	for ns, members := range r.namespaces {
		for name := range members {
			refs = append(refs, ns+"."+name)
		}
	}
	sort.Strings(refs)
	return refs
}

// Split separates a script reference into namespace and member.
func Split(ref string) (string, string, error) {
	ns, member, ok := strings.Cut(strings.TrimSpace(ref), ".")
	if !ok || ns == "" || member == "" {
		return "", "", fmt.Errorf("%w: malformed reference %q (want namespace.member)", domain.ErrUnresolvedScript, ref)
	}
	return ns, member, nil
}
