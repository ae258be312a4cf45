package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Driver must be created via NewDriver")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type tip struct {
		cents int
		guard guard.ConstructorGuard
	}
	errTipNotConstructed := errors.New("tip must be created via newTip")

	newTip := func(cents int) (tip, error) {
		if cents < 0 {
			return tip{}, errors.New("tip cannot be negative")
		}
		return tip{cents: cents, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("value_from_constructor_is_valid", func(t *testing.T) {
		v, err := newTip(500)

		require.NoError(t, err)
		require.NoError(t, v.guard.Validate(errTipNotConstructed))

		copied := v
		require.NoError(t, copied.guard.Validate(errTipNotConstructed))
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var v tip

		assert.Equal(t, errTipNotConstructed, v.guard.Validate(errTipNotConstructed))
	})

	t.Run("constructor_rules_still_apply", func(t *testing.T) {
		_, err := newTip(-1)

		require.Error(t, err)
	})
}
