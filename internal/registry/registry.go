package registry

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/kingrea/qcline/internal/inspection"
)

var (
	// ErrDuplicateID is returned when inserting an id that is already registered.
	ErrDuplicateID = errors.New("registry: duplicate part id")
	// ErrNotFound is returned when looking up or removing an unknown id.
	ErrNotFound = errors.New("registry: part not found")
)

// Part is one registered unit with its measurements and verdict. Records are
// never updated after insert.
type Part struct {
	ID       string
	Weight   float64
	Color    string
	Length   float64
	Accepted bool
	Reasons  []inspection.Reason
}

// NewPart assembles a record from measurements and a classifier verdict.
func NewPart(id string, weight float64, color string, length float64, verdict inspection.Verdict) Part {
	return Part{
		ID:       id,
		Weight:   weight,
		Color:    color,
		Length:   length,
		Accepted: verdict.Accepted,
		Reasons:  slices.Clone(verdict.Reasons),
	}
}

// HasReason reports whether the part was rejected for reason.
func (p Part) HasReason(reason inspection.Reason) bool {
	return slices.Contains(p.Reasons, reason)
}

func (p Part) clone() Part {
	p.Reasons = slices.Clone(p.Reasons)
	return p
}

var fold = cases.Fold()

// NormalizeID returns the canonical form used as the registry key.
func NormalizeID(id string) string {
	return fold.String(strings.TrimSpace(id))
}

// Registry stores parts by id and remembers insertion order for listings.
type Registry struct {
	parts map[string]Part
	order []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{parts: map[string]Part{}}
}

// Insert stores part under its id. Callers normalize the id beforehand.
func (r *Registry) Insert(part Part) error {
	if _, exists := r.parts[part.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, part.ID)
	}
	r.parts[part.ID] = part.clone()
	r.order = append(r.order, part.ID)
	return nil
}

// Get returns the record for id.
func (r *Registry) Get(id string) (Part, error) {
	part, ok := r.parts[id]
	if !ok {
		return Part{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return part.clone(), nil
}

// Remove deletes the record for id and returns it. Box state is left to the caller.
func (r *Registry) Remove(id string) (Part, error) {
	part, ok := r.parts[id]
	if !ok {
		return Part{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.parts, id)
	if idx := slices.Index(r.order, id); idx >= 0 {
		r.order = slices.Delete(r.order, idx, idx+1)
	}
	return part, nil
}

// Len returns the number of registered parts.
func (r *Registry) Len() int {
	return len(r.parts)
}

// All yields every part in insertion order.
func (r *Registry) All() iter.Seq[Part] {
	return r.filter(func(Part) bool { return true })
}

// Accepted yields accepted parts in insertion order.
func (r *Registry) Accepted() iter.Seq[Part] {
	return r.filter(func(p Part) bool { return p.Accepted })
}

// Rejected yields rejected parts in insertion order.
func (r *Registry) Rejected() iter.Seq[Part] {
	return r.filter(func(p Part) bool { return !p.Accepted })
}

// List partitions the registry by verdict. Both sequences are lazy and can be
// ranged over more than once.
func (r *Registry) List() (accepted, rejected iter.Seq[Part]) {
	return r.Accepted(), r.Rejected()
}

func (r *Registry) filter(keep func(Part) bool) iter.Seq[Part] {
	return func(yield func(Part) bool) {
		for _, id := range r.order {
			part, ok := r.parts[id]
			if !ok || !keep(part) {
				continue
			}
			if !yield(part.clone()) {
				return
			}
		}
	}
}
