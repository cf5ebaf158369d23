// Package station is the single request path of the quality-control line. A
// registration flows classifier -> registry -> packer; a removal reverses the
// registry and open-box effects but never reopens a sealed box. Every step is
// mirrored to the diagnostic log, the shift journal and the line counters.
package station

import (
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/kingrea/qcline/internal/inspection"
	"github.com/kingrea/qcline/internal/logbook"
	"github.com/kingrea/qcline/internal/metrics"
	"github.com/kingrea/qcline/internal/packing"
	"github.com/kingrea/qcline/internal/registry"
	"github.com/kingrea/qcline/internal/report"
)

// ErrInvalidID is returned for identifiers that are blank after trimming.
var ErrInvalidID = errors.New("station: part id is required")

// Option customizes Station construction.
type Option func(*Station)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Station) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithJournal sets the shift journal.
func WithJournal(journal *logbook.Logbook) Option {
	return func(s *Station) {
		s.journal = journal
	}
}

// WithMetrics sets the counters updated on every operation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Station) {
		s.metrics = m
	}
}

// Station owns the registry and packer for one process.
type Station struct {
	registry *registry.Registry
	packer   *packing.Packer

	logger  *zap.Logger
	journal *logbook.Logbook
	metrics *metrics.Metrics
}

// New returns a station with an empty registry and packer.
func New(opts ...Option) *Station {
	s := &Station{
		registry: registry.New(),
		packer:   packing.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Registration describes what happened to a newly registered part. Sealed is
// set when this part filled the open box.
type Registration struct {
	Part        registry.Part
	Sealed      *packing.SealedBox
	OpenBoxSize int
}

// Removal describes a completed removal.
type Removal struct {
	Part    registry.Part
	Packing packing.Removal
}

// Register normalizes id and color, classifies the measurements, stores the
// part and packs it when accepted.
func (s *Station) Register(id string, weight float64, color string, length float64) (Registration, error) {
	id = registry.NormalizeID(id)
	if id == "" {
		return Registration{}, ErrInvalidID
	}
	if _, err := s.registry.Get(id); err == nil {
		s.logger.Warn("duplicate part id", zap.String("part", id))
		s.journal.Warn("Part %s already registered", id)
		return Registration{}, fmt.Errorf("station: register: %w: %s", registry.ErrDuplicateID, id)
	}

	color = inspection.NormalizeColor(color)
	verdict := inspection.Classify(weight, color, length)
	part := registry.NewPart(id, weight, color, length, verdict)
	if err := s.registry.Insert(part); err != nil {
		return Registration{}, fmt.Errorf("station: register: %w", err)
	}
	s.metrics.ObserveRegistration(verdict)

	result := Registration{Part: part}
	if verdict.Accepted {
		result.Sealed = s.packer.AddAccepted(id)
		s.logger.Info("part accepted",
			zap.String("part", id),
			zap.Float64("weight", weight),
			zap.String("color", color),
			zap.Float64("length", length),
			zap.Int("open_box", s.packer.OpenBoxSize()),
		)
		s.journal.Info("Part %s ACCEPTED", id)
		if result.Sealed != nil {
			s.metrics.ObserveSeal()
			s.logger.Info("box sealed", zap.Int("box", result.Sealed.Number), zap.Strings("parts", result.Sealed.Parts))
			s.journal.Info("Box %d SEALED (%d parts)", result.Sealed.Number, len(result.Sealed.Parts))
		}
	} else {
		reasons := make([]string, len(verdict.Reasons))
		for i, r := range verdict.Reasons {
			reasons[i] = string(r)
		}
		s.logger.Info("part rejected",
			zap.String("part", id),
			zap.Float64("weight", weight),
			zap.String("color", color),
			zap.Float64("length", length),
			zap.Strings("reasons", reasons),
		)
		s.journal.Info("Part %s REJECTED (%s)", id, inspection.JoinLabels(verdict.Reasons))
	}
	result.OpenBoxSize = s.packer.OpenBoxSize()
	s.metrics.SetOpenBox(result.OpenBoxSize)
	return result, nil
}

// Remove deletes the part from the registry and, when it was accepted, from
// the open box. A part already sealed in a box stays in that box's record and
// the result carries the HistoricalBoxAffected advisory.
func (s *Station) Remove(id string) (Removal, error) {
	id = registry.NormalizeID(id)
	if id == "" {
		return Removal{}, ErrInvalidID
	}
	part, err := s.registry.Remove(id)
	if err != nil {
		s.logger.Warn("remove unknown part", zap.String("part", id))
		s.journal.Warn("Part %s not found", id)
		return Removal{}, fmt.Errorf("station: remove: %w", err)
	}

	result := Removal{Part: part, Packing: packing.Removal{Status: packing.NotPacked}}
	if part.Accepted {
		result.Packing = s.packer.Remove(id)
	}
	s.metrics.ObserveRemoval(result.Packing.Status)
	s.metrics.SetOpenBox(s.packer.OpenBoxSize())

	switch result.Packing.Status {
	case packing.RemovedFromOpenBox:
		s.logger.Info("part removed", zap.String("part", id), zap.String("location", "open_box"))
		s.journal.Info("Part %s removed (also taken out of the current box)", id)
	case packing.HistoricalBoxAffected:
		s.logger.Warn("part removed from sealed box",
			zap.String("part", id),
			zap.Int("box", result.Packing.BoxNumber),
		)
		s.journal.Warn("Part %s removed; sealed box %d keeps its record", id, result.Packing.BoxNumber)
	default:
		s.logger.Info("part removed", zap.String("part", id), zap.String("location", "unpacked"))
		s.journal.Info("Part %s removed", id)
	}
	return result, nil
}

// Get returns a registered part.
func (s *Station) Get(id string) (registry.Part, error) {
	return s.registry.Get(registry.NormalizeID(id))
}

// Parts returns the accepted and rejected parts in registration order.
func (s *Station) Parts() (accepted, rejected iter.Seq[registry.Part]) {
	return s.registry.List()
}

// SealedBoxes returns every sealed box, oldest first.
func (s *Station) SealedBoxes() []packing.SealedBox {
	return s.packer.SealedBoxes()
}

// OpenBox returns the ids in the box being filled.
func (s *Station) OpenBox() []string {
	return s.packer.OpenBox()
}

// OpenBoxSize returns how many parts are in the open box.
func (s *Station) OpenBoxSize() int {
	return s.packer.OpenBoxSize()
}

// Capacity returns the box size.
func (s *Station) Capacity() int {
	return s.packer.Capacity()
}

// Report computes the shift report.
func (s *Station) Report() report.Data {
	data := report.Build(s.registry, s.packer)
	s.logger.Debug("report generated",
		zap.Int("accepted", data.TotalAccepted),
		zap.Int("rejected", data.TotalRejected),
		zap.Int("boxes_used", data.BoxesUsed),
	)
	return data
}
