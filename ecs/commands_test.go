package ecs_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsloop/ecs"
)

func TestCommandQueue(t *testing.T) {
	t.Run("flush runs commands in posting order once", func(t *testing.T) {
		q := ecs.NewCommandQueue()
		var order []int
		for i := 1; i <= 3; i++ {
			q.Defer(func() { order = append(order, i) })
		}

		n, errs := q.Flush()
		assert.Equal(t, 3, n)
		assert.Empty(t, errs)
		assert.Equal(t, []int{1, 2, 3}, order)
		assert.Equal(t, 0, q.Len())

		n, _ = q.Flush()
		assert.Equal(t, 0, n)
		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("commands posted during flush wait for the next one", func(t *testing.T) {
		q := ecs.NewCommandQueue()
		var ran []string
		q.Defer(func() {
			ran = append(ran, "outer")
			q.Defer(func() { ran = append(ran, "inner") })
		})

		q.Flush()
		assert.Equal(t, []string{"outer"}, ran)
		assert.Equal(t, 1, q.Len())

		q.Flush()
		assert.Equal(t, []string{"outer", "inner"}, ran)
	})

	t.Run("failures are isolated per command", func(t *testing.T) {
		q := ecs.NewCommandQueue()
		boom := errors.New("boom")
		ran := 0

		q.Post(ecs.CommandFunc(func() error { ran++; return boom }))
		q.Post(ecs.CommandFunc(func() error { panic("bad command") }))
		q.Defer(func() { ran++ })

		n, errs := q.Flush()
		assert.Equal(t, 3, n)
		assert.Equal(t, 2, ran)
		require.Len(t, errs, 2)
		assert.ErrorIs(t, errs[0], boom)

		var cmdErr *ecs.CommandError
		require.ErrorAs(t, errs[1], &cmdErr)
		assert.Equal(t, 1, cmdErr.Index)
		var panicErr *ecs.PanicError
		assert.ErrorAs(t, errs[1], &panicErr)
	})

	t.Run("nil commands are ignored", func(t *testing.T) {
		q := ecs.NewCommandQueue()
		q.Post(nil)
		assert.Equal(t, 0, q.Len())
	})

	t.Run("concurrent producers", func(t *testing.T) {
		q := ecs.NewCommandQueue()
		var wg sync.WaitGroup
		var mu sync.Mutex
		total := 0

		for p := 0; p < 8; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					q.Defer(func() {
						mu.Lock()
						total++
						mu.Unlock()
					})
				}
			}()
		}

		flushed := 0
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
	loop:
		for {
			select {
			case <-done:
				break loop
			default:
				n, _ := q.Flush()
				flushed += n
			}
		}
		n, _ := q.Flush()
		flushed += n

		assert.Equal(t, 800, flushed)
		assert.Equal(t, 800, total)
	})
}
