package importer

import (
	"context"

	"github.com/mandelsoft/ldraw/pkg/ldraw/source"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

type State string

const (
	StateRunning   State = "Running"
	StateSucceeded State = "Succeeded"
	StateFailed    State = "Failed"
)

// Task is an import running in the background. Its progress can
// be observed while it is running, the result is available after
// Wait returned true.
type Task struct {
	progress Progress
	state    utils.AtomicValue[State]
	sync     utils.Sync

	// set before the final state is published
	result *Result
	err    error
}

// Start runs an import in a separate goroutine.
func (s *Session) Start(ctx context.Context, src source.Source) *Task {
	sync, trigger := utils.NewSyncPoint()
	t := &Task{sync: sync}
	t.state.Store(StateRunning)

	go func() {
		defer trigger.Done()
		r, err := s.run(ctx, src, &t.progress)
		t.result, t.err = r, err
		if err != nil {
			t.state.Store(StateFailed)
			return
		}
		t.state.Store(StateSucceeded)
	}()
	return t
}

func (t *Task) State() State {
	return t.state.Load()
}

// Progress returns the completed percentage of the import.
func (t *Task) Progress() int {
	return t.progress.Percent()
}

// Wait waits for the task to finish. It returns false if the
// context is done before.
func (t *Task) Wait(ctx context.Context) bool {
	return t.sync.Wait(ctx)
}

// Result returns the outcome of a finished task. Before the task
// is finished it returns nil and no error.
func (t *Task) Result() (*Result, error) {
	if t.state.Load() == StateRunning {
		return nil, nil
	}
	return t.result, t.err
}
