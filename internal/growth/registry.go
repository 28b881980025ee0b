package growth

import "slices"

// Registry holds the live branches in visiting order.
type Registry struct {
	branches []*Branch
}

func NewRegistry() *Registry {
	return &Registry{branches: make([]*Branch, 0, 16)}
}

func (r *Registry) Add(b *Branch) { r.branches = append(r.branches, b) }

func (r *Registry) Len() int { return len(r.branches) }

func (r *Registry) At(i int) *Branch { return r.branches[i] }

// Remove drops the branch at index i, keeping the order of the rest.
func (r *Registry) Remove(i int) {
	if i < 0 || i >= len(r.branches) {
		return
	}
	r.branches = slices.Delete(r.branches, i, i+1)
}

// Each visits branches in order until fn returns false.
func (r *Registry) Each(fn func(i int, b *Branch) bool) {
	for i, b := range r.branches {
		if !fn(i, b) {
			return
		}
	}
}
