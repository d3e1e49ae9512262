package schedule_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/builder"
	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/pathfinder"
	"github.com/katalvlaran/tilepath/schedule"
	"github.com/katalvlaran/tilepath/terrain"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// countdown is busy for n turns.
func countdown(n int) *atomic.Int64 {
	var c atomic.Int64
	c.Store(int64(n))
	return &c
}

func stepper(c *atomic.Int64) schedule.Stepper {
	return schedule.StepperFunc(func(context.Context) bool {
		return c.Add(-1) > 0
	})
}

func TestRunUntilIdle_Func(t *testing.T) {
	ctx := context.Background()

	n, err := schedule.RunUntilIdle(ctx, stepper(countdown(5)), 0)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	n, err = schedule.RunUntilIdle(ctx, stepper(countdown(5)), 3)
	require.ErrorIs(t, err, schedule.ErrTurnLimit)
	require.Equal(t, 3, n)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	n, err = schedule.RunUntilIdle(cancelled, stepper(countdown(5)), 0)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, n)
}

// TestLoop_TurnsUntilSlowestIsIdle steps every stepper on every turn.
func TestLoop_TurnsUntilSlowestIsIdle(t *testing.T) {
	l := schedule.NewLoop(schedule.WithLogger(quiet))
	a, b := countdown(2), countdown(4)
	l.Add(stepper(a))
	l.Add(stepper(b))
	require.Equal(t, 2, l.Len())

	n, err := l.RunUntilIdle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, 4, l.Turns())
	require.Equal(t, int64(-2), a.Load(), "idle steppers keep being stepped")
}

func TestLoop_MaxTurns(t *testing.T) {
	l := schedule.NewLoop(schedule.WithLogger(quiet), schedule.WithMaxTurns(3))
	l.Add(stepper(countdown(10)))

	n, err := l.RunUntilIdle(context.Background())
	require.ErrorIs(t, err, schedule.ErrTurnLimit)
	require.Equal(t, 3, n)

	l = schedule.NewLoop(schedule.WithLogger(quiet), schedule.WithMaxTurns(3))
	l.Add(stepper(countdown(3)))
	n, err = l.RunUntilIdle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

// TestLoop_PostRunsBeforeSteps issues a request through Post.
func TestLoop_PostRunsBeforeSteps(t *testing.T) {
	m, err := builder.BuildMap(6, 6, nil)
	require.NoError(t, err)
	c, err := terrain.NewClassifier(m)
	require.NoError(t, err)
	f, err := pathfinder.New(c, pathfinder.WithLogger(quiet))
	require.NoError(t, err)

	l := schedule.NewLoop(schedule.WithLogger(quiet))
	l.Add(f)

	var got pathfinder.Path
	l.Post(func() {
		f.FindPath(gridgraph.Coord{}, gridgraph.Coord{X: 5, Y: 5},
			func(p pathfinder.Path) { got = p },
			func(err error) { t.Errorf("unexpected failure: %v", err) },
		)
	})
	_, err = l.RunUntilIdle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, got.Len())
	require.Equal(t, pathfinder.Idle, f.Status())
}

// TestRunUntilIdle_FollowUpRequest issues a second request from onFound; both
// drivers must keep turning until its callback has fired.
func TestRunUntilIdle_FollowUpRequest(t *testing.T) {
	m, err := builder.BuildMap(6, 6, nil)
	require.NoError(t, err)
	c, err := terrain.NewClassifier(m)
	require.NoError(t, err)

	issue := func(f *pathfinder.Finder, legs *[]pathfinder.Path) {
		var onFound pathfinder.FoundFunc
		onFound = func(p pathfinder.Path) {
			*legs = append(*legs, p)
			if len(*legs) == 1 {
				f.FindPath(p.Goal(), gridgraph.Coord{Y: 5}, onFound, nil)
			}
		}
		f.FindPath(gridgraph.Coord{}, gridgraph.Coord{X: 5, Y: 5}, onFound,
			func(err error) { t.Errorf("unexpected failure: %v", err) })
	}
	ctx := context.Background()

	f, err := pathfinder.New(c, pathfinder.WithLogger(quiet))
	require.NoError(t, err)
	var legs []pathfinder.Path
	issue(f, &legs)
	n, err := schedule.RunUntilIdle(ctx, f, 1000)
	require.NoError(t, err)
	require.Equal(t, 22, n)
	require.Len(t, legs, 2)
	require.Equal(t, pathfinder.Idle, f.Status())

	f, err = pathfinder.New(c, pathfinder.WithLogger(quiet))
	require.NoError(t, err)
	legs = nil
	l := schedule.NewLoop(schedule.WithLogger(quiet), schedule.WithMaxTurns(1000))
	l.Add(f)
	issue(f, &legs)
	n, err = l.RunUntilIdle(ctx)
	require.NoError(t, err)
	require.Equal(t, 22, n)
	require.Len(t, legs, 2)
	require.Equal(t, pathfinder.Idle, f.Status())
}

// TestLoop_RunParksAndWakes posts work from another goroutine into a running loop.
func TestLoop_RunParksAndWakes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	l := schedule.NewLoop(schedule.WithLogger(quiet), schedule.WithRate(1000, 10))
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	ran := make(chan struct{})
	l.Post(func() { close(ran) })
	select {
	case <-ran:
	case <-ctx.Done():
		t.Fatal("posted task never ran")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { schedule.WithRate(0, 1) })
	require.Panics(t, func() { schedule.WithRate(10, 0) })
	require.Panics(t, func() { schedule.WithLogger(nil) })
	require.Panics(t, func() { schedule.WithMaxTurns(-1) })
}
