package guard_test

import (
	"errors"
	"testing"

	"ordering/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCommandNotConstructed = errors.New("command must be created via NewCommand")

type command struct {
	tenant string
	guard  guard.ConstructorGuard
}

func newCommand(tenant string) command {
	return command{tenant: tenant, guard: guard.NewConstructorGuard()}
}

func (c command) Validate() error {
	return c.guard.Validate(errCommandNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes with any error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("unused")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero guard returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero guard falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("constructor-built command is valid", func(t *testing.T) {
		c := newCommand("acme")

		require.NoError(t, c.Validate())
		assert.Equal(t, "acme", c.tenant)
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		c := command{tenant: "acme"}

		require.ErrorIs(t, c.Validate(), errCommandNotConstructed)
	})

	t.Run("copies keep the constructed flag", func(t *testing.T) {
		original := newCommand("acme")
		copied := original

		require.NoError(t, copied.Validate())
	})
}
