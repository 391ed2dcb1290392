package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmidrayat/dukandost/internal/repository/inventory"
	"github.com/tahmidrayat/dukandost/internal/vocab"
)

func TestSeedForItems_CoversVocabularyCanonicals(t *testing.T) {
	v := vocab.Vocabulary{
		Items: []vocab.Item{
			{Canonical: "paan", Aliases: []string{"paan"}},
			{Canonical: "biri", Aliases: []string{"biri"}},
		},
		UnitKeywords:     []string{"kg"},
		CurrencyKeywords: []string{"taka"},
	}
	require.NoError(t, vocab.Validate(v))

	seed := inventory.SeedForItems(v.Canonicals())
	require.Len(t, seed, 2)

	names := make([]string, 0, len(seed))
	for _, item := range seed {
		names = append(names, item.Name)
		assert.Positive(t, item.CurrentStock)
		assert.Positive(t, item.ReorderPoint)
	}
	assert.Equal(t, []string{"paan", "biri"}, names)
}

func TestSeedForItems_SaleAgainstSeededLedger(t *testing.T) {
	ctx := context.Background()
	store := inventory.NewMemoryStore()

	v := vocab.Vocabulary{
		Items:            []vocab.Item{{Canonical: "paan", Aliases: []string{"paan"}}},
		UnitKeywords:     []string{"kg"},
		CurrencyKeywords: []string{"taka"},
	}
	require.NoError(t, store.Seed(ctx, inventory.SeedForItems(v.Canonicals())))

	// A custom-vocabulary item must be sellable right after seeding.
	item, err := store.DecrementStock(ctx, "paan", 5)
	require.NoError(t, err)
	assert.Equal(t, "paan", item.Name)
}
