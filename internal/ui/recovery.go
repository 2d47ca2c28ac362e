package ui

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ErrTooManyRestarts is returned once the UI crashed more often than allowed
var ErrTooManyRestarts = errors.New("UI crashed too many times")

// RecoveryHandler runs a tea program and rebuilds it after a crash,
// waiting longer after each consecutive failure
type RecoveryHandler struct {
	logger       *zap.Logger
	restartDelay time.Duration
	maxRestarts  int
	createUI     func() (tea.Model, []tea.ProgramOption)

	mu           sync.Mutex
	restartCount int
	program      *tea.Program
}

// NewRecoveryHandler creates a new recovery handler. createUI is called for
// every start, so it must return a fresh model.
func NewRecoveryHandler(logger *zap.Logger, maxRestarts int, createUI func() (tea.Model, []tea.ProgramOption)) *RecoveryHandler {
	return &RecoveryHandler{
		logger:       logger,
		restartDelay: 500 * time.Millisecond,
		maxRestarts:  maxRestarts,
		createUI:     createUI,
	}
}

// RunWithRecovery blocks until the UI exits normally, ctx is cancelled, or
// the restart budget is exhausted
func (rh *RecoveryHandler) RunWithRecovery(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = rh.restartDelay
	policy.MaxInterval = rh.restartDelay * 10

	notify := func(err error, delay time.Duration) {
		rh.mu.Lock()
		rh.restartCount++
		count := rh.restartCount
		rh.mu.Unlock()

		rh.logger.Error("UI crashed, will restart",
			zap.Error(err),
			zap.Int("restart_count", count),
			zap.Duration("delay", delay))
	}

	operation := func() (struct{}, error) {
		err := rh.runUI(ctx)
		if err != nil && ctx.Err() != nil {
			return struct{}{}, backoff.Permanent(ctx.Err())
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(rh.maxRestarts+1)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify))

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return nil
	default:
		return fmt.Errorf("%w (%d restarts): %v", ErrTooManyRestarts, rh.GetRestartCount(), err)
	}
}

// runUI runs one program instance, turning panics into errors
func (rh *RecoveryHandler) runUI(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("UI panic: %v", r)
			rh.logger.Error("UI panic recovered",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
		}
	}()

	program := rh.startProgram(ctx)

	defer func() {
		rh.mu.Lock()
		rh.program = nil
		rh.mu.Unlock()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	return nil
}

// startProgram builds the next program under the lock, so a concurrent Send
// either reaches it or happened before createUI read the shared state
func (rh *RecoveryHandler) startProgram(ctx context.Context) *tea.Program {
	rh.mu.Lock()
	defer rh.mu.Unlock()

	model, opts := rh.createUI()
	opts = append(opts, tea.WithContext(ctx))
	rh.program = tea.NewProgram(model, opts...)
	return rh.program
}

// Send delivers msg to the program currently running. It reports false when
// no program is running, e.g. during a restart delay; msg is then dropped.
func (rh *RecoveryHandler) Send(msg tea.Msg) bool {
	rh.mu.Lock()
	program := rh.program
	rh.mu.Unlock()

	if program == nil {
		return false
	}
	// returns immediately once the program has exited
	program.Send(msg)
	return true
}

// GetRestartCount returns the number of restarts
func (rh *RecoveryHandler) GetRestartCount() int {
	rh.mu.Lock()
	defer rh.mu.Unlock()
	return rh.restartCount
}
