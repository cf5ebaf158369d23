// Package report summarizes the registry and box state for the shift report.
package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kingrea/qcline/internal/inspection"
	"github.com/kingrea/qcline/internal/packing"
	"github.com/kingrea/qcline/internal/registry"
)

// Summary holds the mean and sample standard deviation of one measurement.
type Summary struct {
	Mean   float64
	StdDev float64
}

// Measurements summarizes weight and length over every registered part.
type Measurements struct {
	Samples int
	Weight  Summary
	Length  Summary
}

// Data is the computed report. ReasonCounts always holds every reason; a part
// rejected for several reasons counts toward each of them.
type Data struct {
	TotalAccepted  int
	TotalRejected  int
	AcceptanceRate float64
	ReasonCounts   map[inspection.Reason]int

	BoxesUsed      int
	SealedBoxCount int
	OpenBoxSize    int
	BoxCapacity    int

	Measurements Measurements
}

// TotalParts returns accepted plus rejected.
func (d Data) TotalParts() int {
	return d.TotalAccepted + d.TotalRejected
}

// Build computes the report without modifying either input.
func Build(reg *registry.Registry, packer *packing.Packer) Data {
	data := Data{
		ReasonCounts:   make(map[inspection.Reason]int, 3),
		BoxesUsed:      packer.BoxCountUsed(),
		SealedBoxCount: packer.SealedCount(),
		OpenBoxSize:    packer.OpenBoxSize(),
		BoxCapacity:    packer.Capacity(),
	}
	for _, reason := range inspection.AllReasons() {
		data.ReasonCounts[reason] = 0
	}

	var weights, lengths []float64
	for part := range reg.All() {
		weights = append(weights, part.Weight)
		lengths = append(lengths, part.Length)
		if part.Accepted {
			data.TotalAccepted++
			continue
		}
		data.TotalRejected++
		for _, reason := range part.Reasons {
			data.ReasonCounts[reason]++
		}
	}

	if total := data.TotalParts(); total > 0 {
		data.AcceptanceRate = float64(data.TotalAccepted) / float64(total)
	}
	data.Measurements = Measurements{
		Samples: len(weights),
		Weight:  summarize(weights),
		Length:  summarize(lengths),
	}
	return data
}

func summarize(values []float64) Summary {
	switch len(values) {
	case 0:
		return Summary{}
	case 1:
		return Summary{Mean: values[0]}
	}
	mean, std := stat.MeanStdDev(values, nil)
	return Summary{Mean: mean, StdDev: std}
}
