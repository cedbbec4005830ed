package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemMergesSameSelection(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")

	cart.AddItem(p, v, 1, []string{"i-cheese"}, "no onions")
	cart.AddItem(p, v, 2, []string{"i-cheese"}, "ignored on merge")

	require.Len(t, cart.Items, 1, "same selection must merge, not duplicate")
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "no onions", cart.Items[0].Notes, "merge keeps the original notes")
}

func TestAddItemDifferentIngredientSetIsNewRow(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")

	cart.AddItem(p, v, 1, []string{"i-cheese"}, "")
	cart.AddItem(p, v, 1, []string{"i-bacon"}, "")

	assert.Len(t, cart.Items, 2)
}

func TestAddItemIngredientOrderDoesNotMatter(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")

	cart.AddItem(p, v, 1, []string{"i-cheese", "i-bacon"}, "")
	cart.AddItem(p, v, 1, []string{"i-bacon", "i-cheese"}, "")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItemDefaultsToIncludedIngredients(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")

	cart.AddItem(p, v, 1, nil, "")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, []string{"i-lettuce"}, cart.Items[0].SelectedIngredientIDs)
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("10.00")))
}

func TestRemoveItemBroadMatch(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")

	// Two rows for the same product+variation with different ingredient
	// sets: removal by product+variation deletes both.
	cart.AddItem(p, v, 1, []string{"i-cheese"}, "")
	cart.AddItem(p, v, 1, []string{"i-bacon"}, "")
	cart.RemoveItem(p.ID, v.ID)

	assert.Empty(t, cart.Items)
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")
	cart.AddItem(p, v, 1, nil, "")

	cart.RemoveItem("nope", "nope")

	assert.Len(t, cart.Items, 1)
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)

	removed := NewCart("r1")
	removed.AddItem(p, v, 2, nil, "")
	removed.RemoveItem(p.ID, v.ID)

	zeroed := NewCart("r1")
	zeroed.AddItem(p, v, 2, nil, "")
	zeroed.UpdateQuantity(p.ID, v.ID, 0)

	assert.Equal(t, removed.Items, zeroed.Items)
	assert.Empty(t, zeroed.Items)
}

func TestUpdateQuantitySets(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")
	cart.AddItem(p, v, 1, nil, "")

	cart.UpdateQuantity(p.ID, v.ID, 5)

	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestClear(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")
	cart.AddItem(p, v, 3, nil, "")

	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total().IsZero())
	assert.Zero(t, cart.ItemCount())
}

func TestTotalAndItemCount(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	cart := NewCart("r1")

	// Burger Regular 10.00 + Extra cheese 1.50, quantity 2 -> 23.00.
	cart.AddItem(p, v, 2, []string{"i-cheese"}, "")

	assert.True(t, cart.Total().Equal(decimal.RequireFromString("23.00")), "got %s", cart.Total())

	cart.AddItem(p, v, 1, []string{"i-cheese"}, "")
	assert.Equal(t, 3, cart.ItemCount())
	assert.Len(t, cart.Items, 1, "count comes from quantities, not rows")
}

func TestConcurrentAddsMergeSafely(t *testing.T) {
	p := testBurger()
	v := regularVariation(t, p)
	sessions := NewCartSessions()

	// A double-clicked "add" lands as overlapping requests against the same
	// session cart.
	const adds = 16
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart := sessions.Get("tok", "r1")
			cart.AddItem(p, v, 1, []string{"i-cheese"}, "")
		}()
	}
	wg.Wait()

	cart := sessions.Get("tok", "r1")
	require.Len(t, cart.Snapshot(), 1, "identical selections must land on one row")
	assert.Equal(t, adds, cart.ItemCount())
}

func TestCartSessions(t *testing.T) {
	sessions := NewCartSessions()

	a := sessions.Get("tok", "r1")
	b := sessions.Get("tok", "r1")
	assert.Same(t, a, b, "same token and restaurant resolves the same cart")

	c := sessions.Get("tok", "r2")
	assert.NotSame(t, a, c, "switching restaurants starts a fresh cart")

	sessions.Drop("tok")
	d := sessions.Get("tok", "r2")
	assert.NotSame(t, c, d)
}
