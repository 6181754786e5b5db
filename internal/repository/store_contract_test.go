package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRowStoreContract exercises the behaviour every RowStore implementation must share.
func runRowStoreContract(t *testing.T, newStore func(t *testing.T) interface {
	RowStore
	SheetInitializer
}) {
	t.Run("EnsureSheetIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.EnsureSheet(ctx, "Tabs", []string{"a", "b"}))
		require.NoError(t, s.EnsureSheet(ctx, "Tabs", []string{"x", "y", "z"}))

		header, err := s.Header(ctx, "Tabs")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, header)
	})

	t.Run("AppendAndFetchInOrder", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.EnsureSheet(ctx, "Tabs", []string{"id", "name"}))
		require.NoError(t, s.AppendRow(ctx, "Tabs", []string{"1", "first"}))
		require.NoError(t, s.AppendRow(ctx, "Tabs", []string{"2"}))

		records, err := s.FetchAll(ctx, "Tabs")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, Record{"id": "1", "name": "first"}, records[0])
		assert.Equal(t, Record{"id": "2", "name": ""}, records[1])
	})

	t.Run("UpdateCellIsOneBasedWithHeaderRow", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.EnsureSheet(ctx, "Tabs", []string{"id", "status"}))
		require.NoError(t, s.AppendRow(ctx, "Tabs", []string{"A", "open"}))
		require.NoError(t, s.AppendRow(ctx, "Tabs", []string{"B", "open"}))

		require.NoError(t, s.UpdateCell(ctx, "Tabs", 3, 2, "closed"))

		records, err := s.FetchAll(ctx, "Tabs")
		require.NoError(t, err)
		assert.Equal(t, "open", records[0]["status"])
		assert.Equal(t, "closed", records[1]["status"])
	})

	t.Run("UpdateCellOutOfRange", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.EnsureSheet(ctx, "Tabs", []string{"id"}))
		require.NoError(t, s.AppendRow(ctx, "Tabs", []string{"A"}))

		assert.ErrorIs(t, s.UpdateCell(ctx, "Tabs", 1, 1, "x"), ErrCellOutOfRange)
		assert.ErrorIs(t, s.UpdateCell(ctx, "Tabs", 3, 1, "x"), ErrCellOutOfRange)
		assert.ErrorIs(t, s.UpdateCell(ctx, "Tabs", 2, 2, "x"), ErrCellOutOfRange)
	})

	t.Run("UnknownSheet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		_, err := s.FetchAll(ctx, "Nope")
		assert.ErrorIs(t, err, ErrSheetNotFound)
		assert.ErrorIs(t, s.AppendRow(ctx, "Nope", []string{"x"}), ErrSheetNotFound)
	})
}
