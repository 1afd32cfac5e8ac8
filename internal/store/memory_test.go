package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, err := st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	l := &Live{ID: "a", RemoteAddr: "127.0.0.1", ConnectedAt: time.Now()}
	require.NoError(t, st.Save(ctx, l))
	got, err := st.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, l, got)
	assert.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, "a"))
	require.NoError(t, st.Delete(ctx, "a"))
	assert.Equal(t, 0, st.Len())
}

func TestStopAllCancelsEveryEntry(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	var ctxs []context.Context
	for _, id := range []string{"a", "b", "c"} {
		c, cancel := context.WithCancel(ctx)
		ctxs = append(ctxs, c)
		require.NoError(t, st.Save(ctx, &Live{ID: id, Stop: cancel}))
	}
	require.NoError(t, st.Save(ctx, &Live{ID: "no-stop"}))

	assert.Equal(t, 3, st.StopAll())
	for _, c := range ctxs {
		assert.ErrorIs(t, c.Err(), context.Canceled)
	}
}
