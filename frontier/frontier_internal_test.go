package frontier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// TestReset_ReleasesNodes checks that no dropped node stays reachable from
// the reused backing array.
func TestReset_ReleasesNodes(t *testing.T) {
	f := New()
	for x := 0; x < 8; x++ {
		f.Push(&gridgraph.Node{Position: gridgraph.Coord{X: x}, Priority: float64(x)})
	}
	_, err := f.Pop()
	require.NoError(t, err)

	f.Reset()
	require.Zero(t, f.Len())
	for i, it := range f.pq[:cap(f.pq)] {
		require.Nil(t, it, "slot %d still holds a node", i)
	}

	n := &gridgraph.Node{Priority: 1}
	f.Push(n)
	got, err := f.Pop()
	require.NoError(t, err)
	require.Same(t, n, got)
}
