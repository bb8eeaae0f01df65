package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/input"
	"github.com/plus3/ecsloop/vmath"
)

type countingCommand struct{ n *int }

func (c countingCommand) Execute() error {
	*c.n++
	return nil
}

type stopper struct{ stopped bool }

func (s *stopper) Stop() { s.stopped = true }

func TestParseKey(t *testing.T) {
	k, err := input.ParseKey(" Escape ")
	require.NoError(t, err)
	assert.Equal(t, input.KeyEscape, k)
	assert.Equal(t, "escape", k.String())

	_, err = input.ParseKey("hyper")
	assert.Error(t, err)

	for _, k := range input.Keys() {
		parsed, err := input.ParseKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}

func TestBinderLatchesEdges(t *testing.T) {
	queue := ecs.NewCommandQueue()
	b := input.NewBinder(queue, nil)

	var pressed, released int
	b.Bind(input.KeySpace, countingCommand{&pressed}, countingCommand{&released})

	t.Run("repeat press posts once", func(t *testing.T) {
		assert.True(t, b.Press(input.KeySpace))
		assert.False(t, b.Press(input.KeySpace))
		assert.False(t, b.Press(input.KeySpace))
		assert.True(t, b.IsDown(input.KeySpace))
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("release posts once", func(t *testing.T) {
		assert.True(t, b.Release(input.KeySpace))
		assert.False(t, b.Release(input.KeySpace))
		assert.False(t, b.IsDown(input.KeySpace))
		assert.Equal(t, 2, queue.Len())
	})

	t.Run("release without press is ignored", func(t *testing.T) {
		assert.False(t, b.Release(input.KeyQ))
		assert.Equal(t, 2, queue.Len())
	})

	n, errs := queue.Flush()
	assert.Equal(t, 2, n)
	assert.Empty(t, errs)
	assert.Equal(t, 1, pressed)
	assert.Equal(t, 1, released)
}

func TestBinderPoll(t *testing.T) {
	queue := ecs.NewCommandQueue()
	b := input.NewBinder(queue, nil)

	var n int
	b.Bind(input.KeyE, countingCommand{&n}, nil)
	b.Bind(input.KeyQ, nil, countingCommand{&n})
	assert.Equal(t, []input.Key{input.KeyQ, input.KeyE}, b.Bound())

	held := map[input.Key]bool{input.KeyE: true, input.KeyQ: true}
	b.Poll(func(k input.Key) bool { return held[k] })
	b.Poll(func(k input.Key) bool { return held[k] })
	assert.Equal(t, 1, queue.Len())

	held[input.KeyQ] = false
	b.Poll(func(k input.Key) bool { return held[k] })
	assert.Equal(t, 2, queue.Len())

	b.Unbind(input.KeyE)
	assert.Equal(t, []input.Key{input.KeyQ}, b.Bound())
}

func TestBindDefaults(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	component.Register(registry)
	storage := ecs.NewStorage(registry)

	blueTr := component.NewTransform(vmath.Vec2{}, vmath.V(1, 1), [3]float64{}, vmath.Vec2{})
	blue := &component.Physics{}
	redTr := component.NewTransform(vmath.Vec2{}, vmath.V(1, 1), [3]float64{}, vmath.Vec2{})
	red := &component.Physics{}
	_, err := storage.Spawn(1, "ENTITY_BALL_RED", redTr, red)
	require.NoError(t, err)
	_, err = storage.Spawn(2, "ENTITY_BALL_BLUE", blueTr, blue)
	require.NoError(t, err)

	queue := ecs.NewCommandQueue()
	loop := &stopper{}
	b := input.NewBinder(queue, nil)
	input.BindDefaults(b, input.Players{Storage: storage, Blue: 2, Red: 1}, loop)

	flush := func() {
		t.Helper()
		_, errs := queue.Flush()
		require.Empty(t, errs)
	}

	b.Press(input.KeyLeft)
	b.Press(input.KeyUp)
	flush()
	assert.True(t, blue.Left)
	assert.True(t, blue.Up)

	b.Release(input.KeyLeft)
	flush()
	assert.False(t, blue.Left)
	assert.True(t, blue.Up)

	b.Press(input.KeySpace)
	flush()
	assert.Equal(t, vmath.V(0.5, 0.5), blueTr.Scale)
	b.Release(input.KeySpace)
	flush()
	assert.Equal(t, vmath.V(1, 1), blueTr.Scale)

	b.Press(input.KeyQ)
	flush()
	assert.True(t, red.Left)
	assert.False(t, blue.Right)
	b.Press(input.KeyE)
	flush()
	assert.True(t, red.Right)
	b.Release(input.KeyE)
	flush()
	assert.False(t, red.Left)
	assert.False(t, red.Right)

	b.Press(input.KeyW)
	flush()
	assert.Equal(t, vmath.V(0.5, 0.5), redTr.Scale)

	b.Press(input.KeyF)
	flush()

	assert.False(t, loop.stopped)
	b.Press(input.KeyEscape)
	flush()
	assert.True(t, loop.stopped)
}
