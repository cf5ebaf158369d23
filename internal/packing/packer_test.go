package packing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, p *Packer, prefix string, n int) []string {
	t.Helper()
	added := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%s%02d", prefix, i)
		p.AddAccepted(id)
		added = append(added, id)
	}
	return added
}

func TestTenthPartSealsBox(t *testing.T) {
	p := New()
	for i := 1; i < Capacity; i++ {
		require.Nil(t, p.AddAccepted(fmt.Sprintf("p%02d", i)))
	}
	assert.Equal(t, Capacity-1, p.OpenBoxSize())

	sealed := p.AddAccepted("p10")
	require.NotNil(t, sealed)
	assert.Equal(t, 1, sealed.Number)
	assert.Equal(t, []string{"p01", "p02", "p03", "p04", "p05", "p06", "p07", "p08", "p09", "p10"}, sealed.Parts)
	assert.Zero(t, p.OpenBoxSize())
	assert.Equal(t, 1, p.SealedCount())
	assert.Equal(t, 1, p.BoxCountUsed())
}

func TestEleventhPartOpensNewBox(t *testing.T) {
	p := New()
	fill(t, p, "p", Capacity)
	assert.Nil(t, p.AddAccepted("p11"))
	assert.Equal(t, []string{"p11"}, p.OpenBox())
	assert.Equal(t, 2, p.BoxCountUsed())
}

func TestRemoveFromOpenBoxKeepsOrderAndDoesNotSeal(t *testing.T) {
	p := New()
	fill(t, p, "p", Capacity-1)

	res := p.Remove("p03")
	assert.Equal(t, RemovedFromOpenBox, res.Status)
	assert.False(t, res.Advisory())
	assert.Equal(t, []string{"p01", "p02", "p04", "p05", "p06", "p07", "p08", "p09"}, p.OpenBox())
	assert.Zero(t, p.SealedCount())

	// refilling to capacity seals with the surviving order
	p.AddAccepted("x1")
	sealed := p.AddAccepted("x2")
	require.NotNil(t, sealed)
	assert.Equal(t, []string{"p01", "p02", "p04", "p05", "p06", "p07", "p08", "p09", "x1", "x2"}, sealed.Parts)
}

func TestRemoveFromSealedBoxIsAdvisoryOnly(t *testing.T) {
	p := New()
	first := fill(t, p, "a", Capacity)
	fill(t, p, "b", Capacity)
	p.AddAccepted("c01")

	res := p.Remove("b04")
	assert.Equal(t, HistoricalBoxAffected, res.Status)
	assert.True(t, res.Advisory())
	assert.Equal(t, 2, res.BoxNumber)

	boxes := p.SealedBoxes()
	require.Len(t, boxes, 2)
	assert.Equal(t, first, boxes[0].Parts)
	assert.True(t, boxes[1].Contains("b04"))
	assert.Equal(t, []string{"c01"}, p.OpenBox())
	assert.Equal(t, 3, p.BoxCountUsed())
}

func TestRemoveUnknownID(t *testing.T) {
	p := New()
	p.AddAccepted("a")
	assert.Equal(t, Removal{Status: NotPacked}, p.Remove("zzz"))
	assert.Equal(t, 1, p.OpenBoxSize())
}

func TestSnapshotsAreCopies(t *testing.T) {
	p := New()
	fill(t, p, "p", Capacity)
	boxes := p.SealedBoxes()
	boxes[0].Parts[0] = "tampered"
	assert.Equal(t, "p01", p.SealedBoxes()[0].Parts[0])

	p.AddAccepted("q")
	open := p.OpenBox()
	open[0] = "tampered"
	assert.Equal(t, []string{"q"}, p.OpenBox())
}

func TestEmptyPacker(t *testing.T) {
	p := New()
	assert.Zero(t, p.BoxCountUsed())
	assert.Empty(t, p.SealedBoxes())
	assert.Empty(t, p.OpenBox())
	assert.Equal(t, Capacity, p.Capacity())
}
