// Package packing tracks the box currently being filled with accepted parts
// and the boxes already sealed. A box seals the moment it reaches Capacity;
// sealed boxes are historical records and never change afterwards.
package packing

import "slices"

// Capacity is the number of parts that fills a box.
const Capacity = 10

// SealedBox is an immutable snapshot of a full box. Number is 1-based.
type SealedBox struct {
	Number int
	Parts  []string
}

// Contains reports whether id was packed in this box.
func (b SealedBox) Contains(id string) bool {
	return slices.Contains(b.Parts, id)
}

// Status describes what Remove found for an id.
type Status string

const (
	// RemovedFromOpenBox means the id was taken out of the open box.
	RemovedFromOpenBox Status = "removed_from_open_box"
	// HistoricalBoxAffected is advisory: the id sits in a sealed box, which
	// keeps its recorded contents.
	HistoricalBoxAffected Status = "historical_box_affected"
	// NotPacked means no box holds the id.
	NotPacked Status = "not_packed"
)

// Removal is the result of Packer.Remove. BoxNumber is set for
// HistoricalBoxAffected.
type Removal struct {
	Status    Status
	BoxNumber int
}

// Advisory reports whether the removal touched a sealed box.
func (r Removal) Advisory() bool {
	return r.Status == HistoricalBoxAffected
}

// Packer owns the open box and the sealed box history.
type Packer struct {
	open   []string
	sealed []SealedBox
}

// New returns a packer with an empty open box and no sealed boxes.
func New() *Packer {
	return &Packer{open: make([]string, 0, Capacity)}
}

// AddAccepted appends id to the open box. When that fills the box it is
// sealed in the same call and the new SealedBox is returned; otherwise nil.
func (p *Packer) AddAccepted(id string) *SealedBox {
	p.open = append(p.open, id)
	if len(p.open) < Capacity {
		return nil
	}
	box := SealedBox{Number: len(p.sealed) + 1, Parts: slices.Clone(p.open)}
	p.sealed = append(p.sealed, box)
	p.open = p.open[:0]
	return &SealedBox{Number: box.Number, Parts: slices.Clone(box.Parts)}
}

// Remove takes id out of the open box if present. Otherwise it looks through
// the sealed boxes in order and reports the first one holding id without
// modifying it.
func (p *Packer) Remove(id string) Removal {
	if idx := slices.Index(p.open, id); idx >= 0 {
		p.open = slices.Delete(p.open, idx, idx+1)
		return Removal{Status: RemovedFromOpenBox}
	}
	for _, box := range p.sealed {
		if box.Contains(id) {
			return Removal{Status: HistoricalBoxAffected, BoxNumber: box.Number}
		}
	}
	return Removal{Status: NotPacked}
}

// BoxCountUsed counts sealed boxes plus the open box when it holds anything.
func (p *Packer) BoxCountUsed() int {
	if len(p.open) > 0 {
		return len(p.sealed) + 1
	}
	return len(p.sealed)
}

// OpenBox returns a copy of the open box contents in packing order.
func (p *Packer) OpenBox() []string {
	return slices.Clone(p.open)
}

// OpenBoxSize returns the number of parts in the open box.
func (p *Packer) OpenBoxSize() int {
	return len(p.open)
}

// SealedBoxes returns copies of every sealed box, oldest first.
func (p *Packer) SealedBoxes() []SealedBox {
	out := make([]SealedBox, len(p.sealed))
	for i, box := range p.sealed {
		out[i] = SealedBox{Number: box.Number, Parts: slices.Clone(box.Parts)}
	}
	return out
}

// SealedCount returns the number of sealed boxes.
func (p *Packer) SealedCount() int {
	return len(p.sealed)
}

// Capacity returns the box size.
func (p *Packer) Capacity() int {
	return Capacity
}
