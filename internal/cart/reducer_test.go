package cart

import (
	"math/rand"
	"testing"

	"github.com/taazabazaar/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(id string, price int64) LineItem {
	return LineItem{
		ID:    id,
		Name:  "item-" + id,
		Price: models.NewMoney(price),
		Unit:  "kg",
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDerived(t *testing.T, c *Cart) {
	t.Helper()
	total := decimal.Zero
	count := decimal.Zero
	for _, item := range c.Items {
		require.True(t, item.Quantity.IsPositive(), "non-positive quantity for %s", item.ID)
		total = total.Add(item.Price.Mul(item.Quantity.Decimal))
		count = count.Add(item.Quantity.Decimal)
	}
	assert.True(t, c.Total.Equal(total.Round(2)), "total want %s got %s", total, c.Total)
	assert.True(t, c.ItemCount.Equal(count), "count want %s got %s", count, c.ItemCount)
}

func TestReduceExampleTotals(t *testing.T) {
	state := Empty()
	state = Reduce(state, AddItem{Item: lineItem("A", 40), Quantity: dec("2")})
	state = Reduce(state, AddItem{Item: lineItem("B", 100), Quantity: dec("1")})

	assert.Equal(t, "180.00", state.Total.String())
	assert.True(t, state.ItemCount.Equal(dec("3")))

	state = Reduce(state, RemoveItem{ID: "A"})
	assert.Equal(t, "100.00", state.Total.String())
	assert.True(t, state.ItemCount.Equal(dec("1")))
	require.Len(t, state.Items, 1)
	assert.Equal(t, "B", state.Items[0].ID)
}

func TestReduceAddSameProductMergesQuantity(t *testing.T) {
	state := Reduce(nil, AddItem{Item: lineItem("A", 40), Quantity: dec("1")})
	state = Reduce(state, AddItem{Item: lineItem("A", 40), Quantity: dec("0.5")})

	require.Len(t, state.Items, 1)
	assert.True(t, state.Items[0].Quantity.Equal(dec("1.5")))
	assert.Equal(t, "60.00", state.Total.String())
}

func TestReduceAddDefaultsToOne(t *testing.T) {
	state := Reduce(Empty(), AddItem{Item: lineItem("A", 25)})
	require.Len(t, state.Items, 1)
	assert.True(t, state.Items[0].Quantity.Equal(dec("1")))

	state = Reduce(state, AddItem{Item: lineItem("A", 25), Quantity: dec("-3")})
	assert.True(t, state.Items[0].Quantity.Equal(dec("2")))
}

func TestReduceUpdateQuantityNonPositiveRemoves(t *testing.T) {
	state := Reduce(Empty(), AddItem{Item: lineItem("A", 40), Quantity: dec("2")})
	state = Reduce(state, AddItem{Item: lineItem("B", 10), Quantity: dec("1")})

	zeroed := Reduce(state, UpdateQuantity{ID: "A", Quantity: decimal.Zero})
	_, found := zeroed.Find("A")
	assert.False(t, found)
	assertDerived(t, zeroed)

	negative := Reduce(state, UpdateQuantity{ID: "B", Quantity: dec("-4")})
	_, found = negative.Find("B")
	assert.False(t, found)
	assertDerived(t, negative)

	updated := Reduce(state, UpdateQuantity{ID: "A", Quantity: dec("3.25")})
	item, found := updated.Find("A")
	require.True(t, found)
	assert.True(t, item.Quantity.Equal(dec("3.25")))
	assert.Equal(t, "140.00", updated.Total.String())
}

func TestReduceRemoveMissingIsNoop(t *testing.T) {
	state := Reduce(Empty(), AddItem{Item: lineItem("A", 40), Quantity: dec("2")})
	next := Reduce(state, RemoveItem{ID: "missing"})
	assert.Equal(t, state.Items, next.Items)
	assertDerived(t, next)
}

func TestReduceClear(t *testing.T) {
	state := Reduce(Empty(), AddItem{Item: lineItem("A", 40), Quantity: dec("2")})
	cleared := Reduce(state, Clear{})

	assert.Empty(t, cleared.Items)
	assert.True(t, cleared.Total.IsZero())
	assert.True(t, cleared.ItemCount.IsZero())
}

func TestReduceLoadMatchesDerive(t *testing.T) {
	items := []LineItem{lineItem("A", 40), lineItem("B", 100), lineItem("C", 35)}
	items[0].Quantity = models.NewQuantity(dec("2"))
	items[1].Quantity = models.NewQuantity(dec("1"))
	items[2].Quantity = models.NewQuantity(dec("0.75"))

	loaded := Reduce(Empty(), Load{Items: items})
	derived := Derive(items)

	assert.True(t, loaded.Total.Equal(derived.Total.Decimal))
	assert.True(t, loaded.ItemCount.Equal(derived.ItemCount.Decimal))
	assert.Equal(t, "206.25", loaded.Total.String())
}

type unknownAction struct{}

func (unknownAction) Kind() string { return "UNKNOWN" }

func TestReduceUnknownActionReturnsSameState(t *testing.T) {
	state := Reduce(Empty(), AddItem{Item: lineItem("A", 40)})
	assert.Same(t, state, Reduce(state, unknownAction{}))
	assert.Same(t, state, Reduce(state, nil))
}

func TestReduceDoesNotMutatePreviousState(t *testing.T) {
	first := Reduce(Empty(), AddItem{Item: lineItem("A", 40), Quantity: dec("1")})
	_ = Reduce(first, AddItem{Item: lineItem("A", 40), Quantity: dec("5")})
	_ = Reduce(first, UpdateQuantity{ID: "A", Quantity: dec("9")})

	require.Len(t, first.Items, 1)
	assert.True(t, first.Items[0].Quantity.Equal(dec("1")))
}

func TestReduceRandomSequencesKeepDerivedValues(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := []string{"A", "B", "C", "D"}
	prices := map[string]int64{"A": 40, "B": 100, "C": 25, "D": 120}

	state := Empty()
	for i := 0; i < 500; i++ {
		id := ids[rng.Intn(len(ids))]
		qty := decimal.NewFromInt(int64(rng.Intn(7) - 2)).Div(decimal.NewFromInt(2))
		switch rng.Intn(3) {
		case 0:
			state = Reduce(state, AddItem{Item: lineItem(id, prices[id]), Quantity: qty})
		case 1:
			state = Reduce(state, RemoveItem{ID: id})
		default:
			state = Reduce(state, UpdateQuantity{ID: id, Quantity: qty})
		}
		assertDerived(t, state)

		seen := map[string]bool{}
		for _, item := range state.Items {
			require.False(t, seen[item.ID], "duplicate line item %s", item.ID)
			seen[item.ID] = true
		}
	}
}
