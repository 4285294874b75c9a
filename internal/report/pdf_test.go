package report

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgen/internal/itinerary"
)

func TestRender_Fallback(t *testing.T) {
	it := itinerary.NewFallback(rand.New(rand.NewPCG(1, 2))).Generate(4, "Eluru", "Goa")

	doc, err := Render(it, Meta{Origin: "Eluru", Destination: "Goa", Budget: 5000, Offline: true})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.Contains(t, string(doc[len(doc)-16:]), "%%EOF")
}

func TestRender_LongPlanIsLarger(t *testing.T) {
	short := itinerary.NewFallback(rand.New(rand.NewPCG(1, 2))).Generate(1, "A", "B")
	long := itinerary.NewFallback(rand.New(rand.NewPCG(1, 2))).Generate(30, "A", "B")

	shortDoc, err := Render(short, Meta{Origin: "A", Destination: "B"})
	require.NoError(t, err)
	longDoc, err := Render(long, Meta{Origin: "A", Destination: "B"})
	require.NoError(t, err)

	assert.Greater(t, len(longDoc), len(shortDoc))
}

func TestCostText(t *testing.T) {
	v := 300
	assert.Equal(t, "300", costText(&v))
	assert.Equal(t, "n/a", costText(nil))
}

func TestWithoutArrows(t *testing.T) {
	summary := itinerary.Summary(2, "Eluru", "Goa")
	require.Contains(t, summary, "→")

	assert.Equal(t, "2-day trip Eluru -> Goa", withoutArrows(summary))
	assert.Equal(t, "Café <-> Fort", withoutArrows("Café ↔ Fort"))
}
