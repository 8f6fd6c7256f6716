package hierarchy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	assert.Equal(t, "RAD", Segment("Radio authentication"))
	assert.Equal(t, "EAS", Segment("Easy auth"))
	assert.Equal(t, "FRL", Segment("FR login"))
	// non-letters are skipped
	assert.Equal(t, "ABC", Segment("42 a-b c!"))
	// short titles pad with X
	assert.Equal(t, "AXX", Segment("a"))
	assert.Equal(t, "XXX", Segment("123"))
	assert.Equal(t, "XXX", Segment(""))
}

func TestProjectPrefix(t *testing.T) {
	assert.Equal(t, "PTES", ProjectPrefix("Test project"))
	assert.Equal(t, "PALP", ProjectPrefix("alpha"))
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "PTES-RAD01", Compose("PTES", "Radio auth", 1))
	assert.Equal(t, "PTES-RAD-EAS03", Compose("PTES-RAD", "Easy auth", 3))
	assert.Equal(t, "PTES-RAD12", Compose("PTES", "Radio auth", 12))
}

func TestChildPath(t *testing.T) {
	assert.Equal(t, "PTES-RAD", ChildPath("PTES", "Radio auth"))
	assert.Equal(t, "PTES-RAD-EAS", ChildPath("PTES-RAD", "Easy auth"))
}

func TestComposeTask(t *testing.T) {
	assert.Equal(t, "PTES-RAD-EAS-FRL-01", ComposeTask("PTES-RAD-EAS-FRL", 1))
	assert.Equal(t, "PTES-RAD-EAS-FRL-27", ComposeTask("PTES-RAD-EAS-FRL", 27))
}

func TestGeneratorAdvancesOnCollision(t *testing.T) {
	ctx := context.Background()
	taken := map[string]bool{
		"PTES-RAD01": true,
		"PTES-RAD02": true,
	}
	g := NewGenerator(func(ctx context.Context, id string) (bool, error) {
		return taken[id], nil
	})

	id, err := g.Next(ctx, "PTES", "Radio auth", 1)
	require.NoError(t, err)
	assert.Equal(t, "PTES-RAD03", id)

	// a fresh path starts at the requested sequence
	id, err = g.Next(ctx, "PTES", "Billing", 1)
	require.NoError(t, err)
	assert.Equal(t, "PTES-BIL01", id)
}

func TestGeneratorUniqueAcrossBatch(t *testing.T) {
	ctx := context.Background()
	taken := map[string]bool{}
	g := NewGenerator(func(ctx context.Context, id string) (bool, error) {
		return taken[id], nil
	})

	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		id, err := g.NextTask(ctx, "PTES-RAD-EAS-FRL", 1)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
		taken[id] = true
	}
	assert.True(t, seen["PTES-RAD-EAS-FRL-01"])
	assert.True(t, seen["PTES-RAD-EAS-FRL-25"])
}

func TestDistributeRoundRobin(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0}, DistributeRoundRobin(7, 3))
	assert.Equal(t, []int{0, 0, 0}, DistributeRoundRobin(3, 1))
	assert.Nil(t, DistributeRoundRobin(5, 0))
}
