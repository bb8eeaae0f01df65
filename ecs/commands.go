package ecs

import "sync"

// Command is a deferred mutation executed once, during a queue flush.
type Command interface {
	Execute() error
}

// CommandFunc adapts a function to the Command interface.
type CommandFunc func() error

func (f CommandFunc) Execute() error {
	return f()
}

// CommandQueue is a multi-producer single-consumer FIFO of commands.
// Post may be called from any goroutine; Flush must only be called by the
// goroutine running the tick loop.
type CommandQueue struct {
	mu      sync.Mutex
	pending []Command
	spare   []Command
}

// NewCommandQueue creates an empty command queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Post appends cmd to the queue.
func (q *CommandQueue) Post(cmd Command) {
	if cmd == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()
}

// Defer queues a function that cannot fail.
func (q *CommandQueue) Defer(fn func()) {
	q.Post(CommandFunc(func() error {
		fn()
		return nil
	}))
}

// Len returns the number of commands waiting for the next flush.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush executes every command queued before the call, in posting order, and
// returns how many ran along with their failures. Commands posted while the
// flush is running are left for the next flush. A failing or panicking command
// does not stop the remaining ones.
func (q *CommandQueue) Flush() (int, []error) {
	q.mu.Lock()
	batch := q.pending
	q.pending = q.spare[:0]
	q.spare = nil
	q.mu.Unlock()

	var errs []error
	for i, cmd := range batch {
		if err := executeCommand(cmd); err != nil {
			errs = append(errs, &CommandError{Index: i, Command: cmd, Err: err})
		}
	}

	n := len(batch)
	clear(batch)
	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()

	return n, errs
}

func executeCommand(cmd Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverAsError(r)
		}
	}()
	return cmd.Execute()
}
