package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"
)

// ErrTurnLimit is returned by RunUntilIdle when a Stepper is still busy after
// the allowed number of turns.
var ErrTurnLimit = errors.New("schedule: turn limit exceeded")

// Stepper is anything that makes progress one turn at a time.
// Step reports whether more turns are needed.
type Stepper interface {
	Step(ctx context.Context) bool
}

// StepperFunc adapts a plain function to Stepper.
type StepperFunc func(ctx context.Context) bool

// Step calls fn(ctx).
func (fn StepperFunc) Step(ctx context.Context) bool { return fn(ctx) }

// Option configures a Loop.
type Option func(*Loop)

// WithRate paces the loop to turnsPerSecond with the given burst.
// Panics on a non-positive rate or a burst below 1.
func WithRate(turnsPerSecond float64, burst int) Option {
	if turnsPerSecond <= 0 {
		panic("schedule: WithRate(turnsPerSecond<=0)")
	}
	if burst < 1 {
		panic("schedule: WithRate(burst<1)")
	}
	return func(l *Loop) {
		l.limiter = rate.NewLimiter(rate.Limit(turnsPerSecond), burst)
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("schedule: WithLogger(nil)")
	}
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithMaxTurns makes the Loop's RunUntilIdle give up with ErrTurnLimit once n
// turns were taken and work remains. 0 disables the cap. Panics on negative n.
func WithMaxTurns(n int) Option {
	if n < 0 {
		panic("schedule: WithMaxTurns(negative)")
	}
	return func(l *Loop) {
		l.maxTurns = n
	}
}

// Loop runs Steppers turn by turn. Add and Post are safe for concurrent use;
// Turn, Run and RunUntilIdle must be called from a single goroutine.
type Loop struct {
	mu       sync.Mutex
	steppers []Stepper
	posted   []func()

	wake     chan struct{}
	limiter  *rate.Limiter // nil = unpaced
	logger   *slog.Logger
	turns    int
	maxTurns int // 0 = unlimited, RunUntilIdle only
}

// NewLoop returns an empty, unpaced Loop.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: slog.Default().With(slog.String("component", "schedule")),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add registers s; it is stepped on every following turn.
func (l *Loop) Add(s Stepper) {
	l.mu.Lock()
	l.steppers = append(l.steppers, s)
	l.mu.Unlock()
	l.signal()
}

// Post queues fn to run on the loop goroutine before the next turn's steps.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
	l.signal()
}

// Len returns the number of registered Steppers.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.steppers)
}

// Turns returns the number of turns run so far.
func (l *Loop) Turns() int { return l.turns }

// Turn runs the posted tasks and steps every Stepper once. It reports whether
// any Stepper needs more turns or new tasks were posted meanwhile.
func (l *Loop) Turn(ctx context.Context) bool {
	l.mu.Lock()
	tasks := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}

	l.mu.Lock()
	steppers := append([]Stepper(nil), l.steppers...)
	l.mu.Unlock()

	busy := false
	for _, s := range steppers {
		if s.Step(ctx) {
			busy = true
		}
	}
	l.turns++

	l.mu.Lock()
	pending := len(l.posted) > 0
	l.mu.Unlock()

	return busy || pending
}

// Run turns until ctx is done and returns ctx.Err(). While every Stepper is
// idle it parks until Add or Post wakes it.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Debug("loop started", slog.Int("steppers", l.Len()))
	defer func() {
		l.logger.Debug("loop stopped", slog.Int("turns", l.turns))
	}()

	for {
		if err := l.pace(ctx); err != nil {
			return err
		}
		if l.Turn(ctx) {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// RunUntilIdle turns until no Stepper needs more work and returns the number
// of turns taken. It stops early with ctx.Err() when ctx is done, and with
// ErrTurnLimit when WithMaxTurns is exceeded.
func (l *Loop) RunUntilIdle(ctx context.Context) (int, error) {
	n := 0
	for {
		if l.maxTurns > 0 && n >= l.maxTurns {
			return n, fmt.Errorf("%w: still busy after %d turns", ErrTurnLimit, n)
		}
		if err := l.pace(ctx); err != nil {
			return n, err
		}
		n++
		if !l.Turn(ctx) {
			return n, nil
		}
	}
}

// pace waits for the limiter, if any, and checks ctx.
func (l *Loop) pace(ctx context.Context) error {
	if l.limiter != nil {
		return l.limiter.Wait(ctx)
	}
	return ctx.Err()
}

// signal wakes a parked Run without blocking.
func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunUntilIdle steps s until it reports no more work and returns the number
// of turns, including the last one. maxTurns <= 0 means no limit.
func RunUntilIdle(ctx context.Context, s Stepper, maxTurns int) (int, error) {
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return n - 1, err
		}
		if maxTurns > 0 && n > maxTurns {
			return maxTurns, fmt.Errorf("%w: still busy after %d turns", ErrTurnLimit, maxTurns)
		}
		if !s.Step(ctx) {
			return n, nil
		}
	}
}
