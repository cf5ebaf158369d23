package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/qcline/internal/inspection"
	"github.com/kingrea/qcline/internal/packing"
	"github.com/kingrea/qcline/internal/registry"
)

func register(t *testing.T, reg *registry.Registry, packer *packing.Packer, id string, weight float64, color string, length float64) {
	t.Helper()
	verdict := inspection.Classify(weight, color, length)
	require.NoError(t, reg.Insert(registry.NewPart(id, weight, color, length, verdict)))
	if verdict.Accepted {
		packer.AddAccepted(id)
	}
}

func TestBuildEmpty(t *testing.T) {
	data := Build(registry.New(), packing.New())
	assert.Zero(t, data.TotalAccepted)
	assert.Zero(t, data.TotalRejected)
	assert.Zero(t, data.BoxesUsed)
	assert.Zero(t, data.AcceptanceRate)
	assert.Zero(t, data.Measurements.Samples)
	assert.Equal(t, map[inspection.Reason]int{
		inspection.ReasonWeight: 0,
		inspection.ReasonColor:  0,
		inspection.ReasonLength: 0,
	}, data.ReasonCounts)
	assert.Equal(t, packing.Capacity, data.BoxCapacity)
}

func TestBuildTwelveAcceptedUsesTwoBoxes(t *testing.T) {
	reg, packer := registry.New(), packing.New()
	for i := 1; i <= 12; i++ {
		register(t, reg, packer, fmt.Sprintf("p%02d", i), 100, "azul", 15)
	}
	data := Build(reg, packer)
	assert.Equal(t, 12, data.TotalAccepted)
	assert.Zero(t, data.TotalRejected)
	assert.Equal(t, 2, data.BoxesUsed)
	assert.Equal(t, 1, data.SealedBoxCount)
	assert.Equal(t, 2, data.OpenBoxSize)
	assert.Equal(t, 1.0, data.AcceptanceRate)
}

func TestBuildCountsEveryReasonOfRejectedParts(t *testing.T) {
	reg, packer := registry.New(), packing.New()
	register(t, reg, packer, "ok", 100, "verde", 15)
	register(t, reg, packer, "heavy", 120, "azul", 15)
	register(t, reg, packer, "all", 50, "preto", 40)
	register(t, reg, packer, "red", 100, "vermelho", 12)

	data := Build(reg, packer)
	assert.Equal(t, 1, data.TotalAccepted)
	assert.Equal(t, 3, data.TotalRejected)
	assert.Equal(t, 2, data.ReasonCounts[inspection.ReasonWeight])
	assert.Equal(t, 2, data.ReasonCounts[inspection.ReasonColor])
	assert.Equal(t, 1, data.ReasonCounts[inspection.ReasonLength])
	assert.InDelta(t, 0.25, data.AcceptanceRate, 1e-9)
	assert.Equal(t, 1, data.BoxesUsed)
}

func TestBuildMeasurements(t *testing.T) {
	reg, packer := registry.New(), packing.New()
	register(t, reg, packer, "a", 98, "azul", 12)
	register(t, reg, packer, "b", 102, "azul", 18)

	data := Build(reg, packer)
	require.Equal(t, 2, data.Measurements.Samples)
	assert.InDelta(t, 100, data.Measurements.Weight.Mean, 1e-9)
	assert.InDelta(t, 2.8284271, data.Measurements.Weight.StdDev, 1e-6)
	assert.InDelta(t, 15, data.Measurements.Length.Mean, 1e-9)
}

func TestBuildSingleMeasurementHasNoSpread(t *testing.T) {
	reg, packer := registry.New(), packing.New()
	register(t, reg, packer, "a", 97, "azul", 11)
	data := Build(reg, packer)
	assert.Equal(t, Summary{Mean: 97}, data.Measurements.Weight)
}

func TestSealedBoxRemovalKeepsHistoricalCount(t *testing.T) {
	reg, packer := registry.New(), packing.New()
	for i := 1; i <= packing.Capacity; i++ {
		register(t, reg, packer, fmt.Sprintf("p%02d", i), 100, "azul", 15)
	}
	_, err := reg.Remove("p05")
	require.NoError(t, err)
	require.True(t, packer.Remove("p05").Advisory())

	data := Build(reg, packer)
	assert.Equal(t, packing.Capacity-1, data.TotalAccepted)
	assert.Equal(t, 1, data.SealedBoxCount)
	assert.Equal(t, 1, data.BoxesUsed)
}
