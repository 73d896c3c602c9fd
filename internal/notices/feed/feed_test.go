package feed

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/notices"
	"portal/internal/state"
)

func TestInMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps notices newest last", func(t *testing.T) {
		f := NewInMemory(10)
		require.NoError(t, f.Publish(ctx, notices.Notice{ID: "a"}))
		require.NoError(t, f.Publish(ctx, notices.Notice{ID: "b"}))

		got, err := f.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})

	t.Run("drops oldest beyond capacity", func(t *testing.T) {
		f := NewInMemory(2)
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, f.Publish(ctx, notices.Notice{ID: id}))
		}
		got, err := f.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	})

	t.Run("limit returns the newest entries", func(t *testing.T) {
		f := NewInMemory(10)
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, f.Publish(ctx, notices.Notice{ID: id}))
		}
		got, err := f.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "c", got[0].ID)
	})
}

type failingFeed struct{}

func (failingFeed) Publish(context.Context, notices.Notice) error {
	return errors.New("redis down")
}

func (failingFeed) Recent(context.Context, int) ([]notices.Notice, error) {
	return nil, nil
}

func TestHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes created notices", func(t *testing.T) {
		f := NewInMemory(10)
		h := Handler(f, nil)

		created := notices.Error("boom")
		h.Handle(ctx, created, nil)

		got, err := f.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, created.Notice.ID, got[0].ID)
	})

	t.Run("ignores other actions", func(t *testing.T) {
		f := NewInMemory(10)
		h := Handler(f, nil)
		h.Handle(ctx, notices.Remove("x"), nil)

		got, err := f.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("publish failure is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var h state.Handler = Handler(failingFeed{}, logger)

		h.Handle(ctx, notices.Error("boom"), nil)
		assert.Contains(t, buf.String(), "failed to publish notice")
	})
}
