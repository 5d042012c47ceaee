package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepo_GetActivePicksHighestActiveRevision(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	_, err := repo.GetActive(ctx, domain.PriceListKindGolden)
	assert.ErrorIs(t, err, ErrNotFound)

	r1 := testutil.NewTestPriceList(testutil.WithRevision(1))
	r3 := testutil.NewTestPriceList(testutil.WithRevision(3), testutil.WithInactive())
	r2 := testutil.NewTestPriceList(testutil.WithRevision(2))
	other := testutil.NewTestPriceList(testutil.WithRevision(9), testutil.WithKind("CUSTOM"))
	for _, pl := range []*domain.PriceList{r1, r3, r2, other} {
		require.NoError(t, repo.CreatePriceList(ctx, pl))
	}

	active, err := repo.GetActive(ctx, domain.PriceListKindGolden)
	require.NoError(t, err)
	assert.Equal(t, r2.ID, active.ID)
	assert.Equal(t, 2, active.Revision)
	assert.True(t, active.IsActive)

	require.NoError(t, repo.DeactivateKind(ctx, domain.PriceListKindGolden))
	_, err = repo.GetActive(ctx, domain.PriceListKindGolden)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogRepo_ListEntriesFiltersByLineCodes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	pl := testutil.NewTestPriceList()
	require.NoError(t, repo.CreatePriceList(ctx, pl))
	entries := []domain.LaborCatalogEntry{
		testutil.NewHourlyEntry(pl.ID, "DRY", "1/2", "DRYLM", "50"),
		testutil.NewUnitEntry(pl.ID, "DRY", "1/2", "+", "DRYLM", "5"),
		testutil.NewUnitEntry(pl.ID, "dry", "5/8", "+", "DRYLM", "6"),
		testutil.NewUnitEntry(pl.ID, "PNT", "P", "+", "PNTLM", "2"),
	}
	entries[1].LaborBurden = decimal.NewFromInt(1)
	require.NoError(t, repo.CreateEntries(ctx, entries))

	got, err := repo.ListEntries(ctx, pl.ID, []string{"DRY"}, []string{"1/2", "5/8"})
	require.NoError(t, err)
	require.Len(t, got, 3, "the DRY hourly row plus the matching DRY rows")
	assert.Equal(t, domain.HourlyUnit, got[0].Unit)
	assert.Equal(t, "1/2", got[1].Selector)
	assert.True(t, got[1].LaborCost().Equal(entries[1].Wage.Add(entries[1].LaborBurden)))
	assert.Equal(t, "dry", got[2].Category, "raw codes come back unchanged")

	none, err := repo.ListEntries(ctx, pl.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogRepo_ListEntriesSkipsHourlyRowsOfOtherCodes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	pl := testutil.NewTestPriceList()
	require.NoError(t, repo.CreatePriceList(ctx, pl))
	require.NoError(t, repo.CreateEntries(ctx, []domain.LaborCatalogEntry{
		testutil.NewHourlyEntry(pl.ID, "LAB", "LM1", "LM1", "100"),
		testutil.NewHourlyEntry(pl.ID, "DRY", "1/2", "LM1", "50"),
		testutil.NewUnitEntry(pl.ID, "DRY", "1/2", "+", "LM1", "50"),
	}))

	got, err := repo.ListEntries(ctx, pl.ID, []string{"DRY"}, []string{"1/2"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, "DRY", e.Category)
	}
}
