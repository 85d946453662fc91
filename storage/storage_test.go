package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskvRoundTripAcrossInstances(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	first := NewDiskv(base)
	_, err := first.Read(ctx, "barber-timers")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, first.Write(ctx, "barber-timers", []byte(`{"o1":125}`)))

	second := NewDiskv(base)
	got, err := second.Read(ctx, "barber-timers")
	require.NoError(t, err)
	assert.JSONEq(t, `{"o1":125}`, string(got))
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	buf := []byte("abc")
	require.NoError(t, m.Write(ctx, "k", buf))
	buf[0] = 'x'

	got, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(Config{Driver: "s3"})
	assert.Error(t, err)

	kv, err := New(Config{Driver: "diskv", Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Diskv{}, kv)
}
