package frontier_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/tilepath/frontier"
	"github.com/katalvlaran/tilepath/gridgraph"
)

// FrontierSuite exercises queue ordering, membership and decrease-key.
type FrontierSuite struct {
	suite.Suite
	store *gridgraph.Store
	f     *frontier.Frontier
}

func (s *FrontierSuite) SetupTest() {
	s.store = gridgraph.NewStore()
	s.f = frontier.New()
}

// node creates a store node at (x,0) with the given priority.
func (s *FrontierSuite) node(x int, priority float64) *gridgraph.Node {
	n := s.store.GetOrCreate(gridgraph.Coord{X: x})
	n.Priority = priority
	return n
}

// TestEmpty verifies the empty-frontier sentinel.
func (s *FrontierSuite) TestEmpty() {
	_, err := s.f.Pop()
	require.ErrorIs(s.T(), err, frontier.ErrEmptyFrontier)
	_, ok := s.f.Peek()
	require.False(s.T(), ok)
	require.Equal(s.T(), 0, s.f.Len())
}

// TestOrder pops in ascending priority.
func (s *FrontierSuite) TestOrder() {
	a, b, c := s.node(0, 3), s.node(1, 1), s.node(2, 2)
	s.f.Push(a)
	s.f.Push(b)
	s.f.Push(c)
	require.Equal(s.T(), 3, s.f.Len())

	top, ok := s.f.Peek()
	require.True(s.T(), ok)
	require.Same(s.T(), b, top)

	for _, want := range []*gridgraph.Node{b, c, a} {
		got, err := s.f.Pop()
		require.NoError(s.T(), err)
		require.Same(s.T(), want, got)
		require.False(s.T(), s.f.Contains(got))
	}
}

// TestTiesAreFIFO pops equal priorities in insertion order.
func (s *FrontierSuite) TestTiesAreFIFO() {
	var pushed []*gridgraph.Node
	for x := 0; x < 10; x++ {
		n := s.node(x, 5)
		pushed = append(pushed, n)
		s.f.Push(n)
	}
	for _, want := range pushed {
		got, err := s.f.Pop()
		require.NoError(s.T(), err)
		require.Same(s.T(), want, got)
	}
}

// TestContainsAndUpdate checks decrease-key and that a node is never queued twice.
func (s *FrontierSuite) TestContainsAndUpdate() {
	a, b := s.node(0, 10), s.node(1, 5)
	s.f.Push(a)
	s.f.Push(b)
	require.True(s.T(), s.f.Contains(a))

	a.Priority = 1
	require.True(s.T(), s.f.Update(a))
	got, _ := s.f.Pop()
	require.Same(s.T(), a, got)

	loose := s.node(2, 0)
	require.False(s.T(), s.f.Update(loose), "update of an absent node is a no-op")
	require.False(s.T(), s.f.Contains(loose))

	b.Priority = 0.5
	s.f.Push(b)
	require.Equal(s.T(), 1, s.f.Len(), "push of a queued node re-keys it")
}

// TestReset empties the queue.
func (s *FrontierSuite) TestReset() {
	n := s.node(0, 1)
	s.f.Push(n)
	s.f.Reset()
	require.Equal(s.T(), 0, s.f.Len())
	require.False(s.T(), s.f.Contains(n))
	require.Empty(s.T(), s.f.Nodes())
}

// TestRandomized compares against a sorted reference.
func (s *FrontierSuite) TestRandomized() {
	r := rand.New(rand.NewSource(7))
	var want []float64
	for x := 0; x < 200; x++ {
		p := float64(r.Intn(50))
		want = append(want, p)
		s.f.Push(s.node(x, p))
	}
	require.Len(s.T(), s.f.Nodes(), 200)
	sort.Float64s(want)
	for _, p := range want {
		got, err := s.f.Pop()
		require.NoError(s.T(), err)
		require.Equal(s.T(), p, got.Priority)
	}
}

func TestFrontierSuite(t *testing.T) {
	suite.Run(t, new(FrontierSuite))
}
