package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/salon-ops/internal/models"
	"github.com/Dan9191/salon-ops/internal/repository"
)

func TestMemStore_ListCostItemsOrdersByDateThenID(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	c := &models.CostCategory{Name: "Build"}
	require.NoError(t, store.CreateCategory(ctx, c))

	day := func(d int) models.Date { return models.NewDate(time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)) }
	for _, item := range []models.CostItem{
		{CategoryID: c.ID, Description: "late", Date: day(20)},
		{CategoryID: c.ID, Description: "early", Date: day(2)},
		{CategoryID: c.ID, Description: "mid-a", Date: day(10)},
		{CategoryID: c.ID, Description: "mid-b", Date: day(10)},
	} {
		item := item
		require.NoError(t, store.CreateCostItem(ctx, &item))
	}

	items, err := store.ListCostItems(ctx, repository.ItemFilter{})
	require.NoError(t, err)

	var got []string
	for _, item := range items {
		got = append(got, item.Description)
	}
	assert.Equal(t, []string{"early", "mid-a", "mid-b", "late"}, got)
}
