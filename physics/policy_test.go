package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/physics"
	"github.com/plus3/ecsloop/vmath"
)

func newBody() (*component.Transform, *component.Physics) {
	tr := component.NewTransform(vmath.Vec2{}, vmath.V(1, 1), [3]float64{}, vmath.Vec2{})
	return tr, &component.Physics{VMax: 0.01, Mass: 1}
}

func TestSymmetricClamped(t *testing.T) {
	c := physics.Constants{Acceleration: 0.0000016667, Friction: 0.00000016667, Amplifier: 4}

	t.Run("one tick to the right", func(t *testing.T) {
		tr, ph := newBody()
		ph.Right = true

		physics.SymmetricClamped{}.Step(tr, ph, 10, c)

		assert.InDelta(t, 0.0000015, ph.Acceleration.X, 1e-10)
		assert.Equal(t, 0.0, ph.Acceleration.Y)
		assert.InDelta(t, 0.0000016667*10, ph.Velocity.X, 1e-15)
		assert.InDelta(t, 0.0000016667*100, tr.Translation.X, 1e-15)
		assert.Equal(t, 0.0, tr.Translation.Y)
	})

	t.Run("opposite flags cancel", func(t *testing.T) {
		tr, ph := newBody()
		ph.Left, ph.Right, ph.Up = true, true, true

		physics.SymmetricClamped{}.Step(tr, ph, 10, c)

		assert.Equal(t, 0.0, ph.Acceleration.X)
		assert.InDelta(t, 0.0000015, ph.Acceleration.Y, 1e-10)
	})

	t.Run("friction at rest converges to zero without sign flip", func(t *testing.T) {
		tr, ph := newBody()
		ph.Acceleration = vmath.V(0.000001, -0.0000007)

		prev := ph.Acceleration
		for i := 0; i < 20; i++ {
			physics.SymmetricClamped{}.Step(tr, ph, 16, c)
			a := ph.Acceleration
			if prev.X != 0 {
				assert.Less(t, math.Abs(a.X), math.Abs(prev.X))
			} else {
				assert.Equal(t, 0.0, a.X)
			}
			if prev.Y != 0 {
				assert.Less(t, math.Abs(a.Y), math.Abs(prev.Y))
			} else {
				assert.Equal(t, 0.0, a.Y)
			}
			assert.GreaterOrEqual(t, a.X, 0.0)
			assert.LessOrEqual(t, a.Y, 0.0)
			prev = a
		}
		assert.Equal(t, vmath.Vec2{}, ph.Acceleration)
	})

	t.Run("zero elapsed does not move", func(t *testing.T) {
		tr, ph := newBody()
		ph.Up = true
		physics.SymmetricClamped{}.Step(tr, ph, 0, c)
		assert.Equal(t, vmath.Vec2{}, tr.Translation)
		assert.Greater(t, ph.Acceleration.Y, 0.0)
	})
}

func TestDirectionalAmplified(t *testing.T) {
	c := physics.DefaultConstants()
	p := c.Friction

	t.Run("accelerates under the ceiling", func(t *testing.T) {
		tr, ph := newBody()
		ph.Up = true

		physics.DirectionalAmplified{}.Step(tr, ph, 10, c)

		// a=0 so v=0: push applied, then vertical friction on Y
		assert.InDelta(t, c.Acceleration-p, ph.Acceleration.Y, 1e-15)
		assert.Equal(t, 0.0, ph.Acceleration.X)
		assert.Equal(t, vmath.Vec2{}, ph.Velocity)
	})

	t.Run("decelerates at the ceiling", func(t *testing.T) {
		tr, ph := newBody()
		ph.Right = true
		ph.VMax = 0.0001
		ph.Acceleration = vmath.V(0.001, 0)
		const tick = 10.0

		// |v| = 0.01 >= vMax/t = 0.00001
		physics.DirectionalAmplified{}.Step(tr, ph, tick, c)

		assert.InDelta(t, 0.001-c.Acceleration-p, ph.Acceleration.X, 1e-15)
		assert.InDelta(t, 0.01, ph.Velocity.X, 1e-15)
		assert.InDelta(t, 0.1, tr.Translation.X, 1e-15)
	})

	t.Run("amplified friction across the input axis", func(t *testing.T) {
		tr, ph := newBody()
		ph.Up = true
		ph.Acceleration = vmath.V(0.001, 0)

		physics.DirectionalAmplified{}.Step(tr, ph, 1, c)
		assert.InDelta(t, 0.001-4*p, ph.Acceleration.X, 1e-15)

		tr, ph = newBody()
		ph.Left = true
		ph.Acceleration = vmath.V(0, -0.001)

		physics.DirectionalAmplified{}.Step(tr, ph, 1, c)
		assert.InDelta(t, -0.001+4*p, ph.Acceleration.Y, 1e-15)
		assert.InDelta(t, -c.Acceleration+p, ph.Acceleration.X, 1e-15)
	})

	t.Run("steering friction may cross zero", func(t *testing.T) {
		tr, ph := newBody()
		ph.Up = true
		ph.Acceleration = vmath.V(p, 0)

		physics.DirectionalAmplified{}.Step(tr, ph, 1, c)
		assert.InDelta(t, -3*p, ph.Acceleration.X, 1e-15)
	})

	t.Run("small negative steering friction is undone", func(t *testing.T) {
		tr, ph := newBody()
		ph.Up = true
		ph.Acceleration = vmath.V(-p, 0)

		physics.DirectionalAmplified{}.Step(tr, ph, 1, c)
		assert.InDelta(t, -p, ph.Acceleration.X, 1e-15)

		tr, ph = newBody()
		ph.Left = true
		ph.Acceleration = vmath.V(0, -2*p)

		physics.DirectionalAmplified{}.Step(tr, ph, 1, c)
		assert.InDelta(t, -2*p, ph.Acceleration.Y, 1e-15)
	})

	t.Run("clamped friction without input", func(t *testing.T) {
		tr, ph := newBody()
		ph.Acceleration = vmath.V(p/2, -p/2)

		physics.DirectionalAmplified{}.Step(tr, ph, 16, c)
		assert.Equal(t, vmath.Vec2{}, ph.Acceleration)
	})

	t.Run("first tick has an unbounded ceiling", func(t *testing.T) {
		tr, ph := newBody()
		ph.Down = true
		ph.VMax = 0

		physics.DirectionalAmplified{}.Step(tr, ph, 0, c)
		assert.InDelta(t, -c.Acceleration+p, ph.Acceleration.Y, 1e-15)
		assert.Equal(t, vmath.Vec2{}, tr.Translation)
	})
}

func TestForceAndVMin(t *testing.T) {
	c := physics.DefaultConstants()

	t.Run("force over mass joins the acceleration", func(t *testing.T) {
		tr, ph := newBody()
		ph.Mass = 2
		ph.Force = vmath.V(0.002, 0)

		physics.SymmetricClamped{}.Step(tr, ph, 1, c)
		assert.InDelta(t, 0.001, ph.Velocity.X, 1e-15)
	})

	t.Run("massless bodies ignore force", func(t *testing.T) {
		tr, ph := newBody()
		ph.Mass = 0
		ph.Force = vmath.V(1, 1)

		physics.SymmetricClamped{}.Step(tr, ph, 1, c)
		assert.Equal(t, vmath.Vec2{}, ph.Velocity)
	})

	t.Run("velocity under vMin is stored as zero", func(t *testing.T) {
		tr, ph := newBody()
		ph.VMin = 1
		ph.Acceleration = vmath.V(0.01, 0)

		physics.SymmetricClamped{}.Step(tr, ph, 1, c)
		assert.Equal(t, vmath.Vec2{}, ph.Velocity)
		assert.InDelta(t, 0.01, tr.Translation.X, 1e-15)
	})
}

func TestPolicyByName(t *testing.T) {
	p, err := physics.PolicyByName(physics.PolicySymmetric)
	require.NoError(t, err)
	assert.Equal(t, physics.PolicySymmetric, p.Name())

	p, err = physics.PolicyByName(physics.PolicyDirectional)
	require.NoError(t, err)
	assert.IsType(t, physics.DirectionalAmplified{}, p)

	_, err = physics.PolicyByName("sticky")
	assert.Error(t, err)
}
