package bank

import (
	"fmt"
	"strings"
)

// Info is the id and display name of a registered adapter
type Info struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Registry holds adapters by id in registration order
type Registry struct {
	adapters map[ID]Adapter
	order    []ID
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[ID]Adapter)}
}

// Register adds an adapter. Panics on duplicate id.
func (r *Registry) Register(a Adapter) {
	key := ID(strings.ToLower(string(a.ID())))
	if _, ok := r.adapters[key]; ok {
		panic("duplicate bank adapter: " + string(key))
	}
	r.adapters[key] = a
	r.order = append(r.order, key)
}

// Get returns the adapter for id, matched case-insensitively
func (r *Registry) Get(id string) (Adapter, error) {
	a, ok := r.adapters[ID(strings.ToLower(strings.TrimSpace(id)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, id)
	}
	return a, nil
}

// List returns the registered adapters' ids and display names
func (r *Registry) List() []Info {
	list := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, Info{ID: id, Name: r.adapters[id].Name()})
	}
	return list
}

// DefaultRegistry returns a registry with the N26, Wise and Fortuneo adapters
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&N26Adapter{})
	r.Register(&WiseAdapter{})
	r.Register(&FortuneoAdapter{})
	return r
}
