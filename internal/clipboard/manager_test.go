package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterOnly(t *testing.T) {
	m := NewManager(false, WithBackend(
		func() (string, error) { t.Fatal("system read"); return "", nil },
		func(string) error { t.Fatal("system write"); return nil },
	))

	got, err := m.Read()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, m.Write("foo();"))
	got, err = m.Read()
	require.NoError(t, err)
	assert.Equal(t, "foo();", got)
}

func TestSystemBackend(t *testing.T) {
	system := "from system"
	m := NewManager(true, WithBackend(
		func() (string, error) { return system, nil },
		func(s string) error { system = s; return nil },
	))
	m.useSystem = true

	got, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "from system", got)

	require.NoError(t, m.Write("bar();"))
	assert.Equal(t, "bar();", system)
}

func TestSystemReadFallsBackToRegister(t *testing.T) {
	boom := errors.New("no display")
	m := NewManager(true, WithBackend(
		func() (string, error) { return "", boom },
		func(string) error { return boom },
	))
	m.useSystem = true

	assert.ErrorIs(t, m.Write("kept"), boom)
	got, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}
