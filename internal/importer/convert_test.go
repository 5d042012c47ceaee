package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convertNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestParseDecimal(t *testing.T) {
	cases := map[string]string{
		"12":         "12",
		"$1,234.50":  "1234.5",
		" 1 000.25 ": "1000.25",
		"-3.5":       "-3.5",
	}
	for in, want := range cases {
		got, err := ParseDecimal(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), "%s -> %s", in, got)
	}

	_, err := ParseDecimal("n/a")
	assert.Error(t, err)
}

func TestConvert_MinimalSchema(t *testing.T) {
	gen, err := Convert(validMinimalSchema(), convertNow)
	require.NoError(t, err)

	assert.NotEmpty(t, gen.Project.ID)
	assert.Equal(t, "acme", gen.Project.CompanyID)
	assert.Equal(t, convertNow, gen.Project.CreatedAt)

	assert.NotEmpty(t, gen.Estimate.ID)
	assert.Equal(t, gen.Project.ID, gen.Estimate.ProjectID)
	assert.Nil(t, gen.Estimate.ImportedAt)

	require.Len(t, gen.Lines, 1)
	assert.Equal(t, gen.Estimate.ID, gen.Lines[0].EstimateID)
	assert.Equal(t, 1, gen.Lines[0].Seq)
	assert.True(t, decimal.NewFromInt(240).Equal(gen.Lines[0].Quantity))

	assert.Nil(t, gen.PriceList)
	assert.Empty(t, gen.Entries)
	assert.Empty(t, gen.Capacity)
}

func TestConvert_KeepsExplicitIDsAndDates(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.ID = "proj-1"
	schema.Project.CreatedAt = "2024-02-20"
	schema.Estimate.ID = "est-1"
	schema.Estimate.ImportedAt = "2024-02-28"
	schema.Estimate.Lines[0].SourceDate = "2024-02-27"

	gen, err := Convert(schema, convertNow)
	require.NoError(t, err)

	assert.Equal(t, "proj-1", gen.Project.ID)
	assert.Equal(t, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), gen.Project.CreatedAt)
	assert.Equal(t, "est-1", gen.Estimate.ID)
	require.NotNil(t, gen.Estimate.ImportedAt)
	assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), *gen.Estimate.ImportedAt)
	require.NotNil(t, gen.Lines[0].SourceDate)
}

func TestConvert_PriceListAndCapacity(t *testing.T) {
	schema := validMinimalSchema()
	inactive := false
	schema.PriceList = &PriceListImport{
		Kind:     "golden",
		Revision: 2,
		Active:   &inactive,
		Entries: []EntryImport{
			{Unit: "HR", LaborMinimum: "LM1", Wage: "$45.00", LaborBurden: "4.50", LaborOverhead: "$0.50"},
		},
	}
	schema.Capacity = []CapacityImport{
		{Trade: " Paint ", MaxConcurrent: 2},
		{Trade: "Drywall", MaxConcurrent: 3, Scope: "company"},
	}

	gen, err := Convert(schema, convertNow)
	require.NoError(t, err)

	require.NotNil(t, gen.PriceList)
	assert.Equal(t, domain.PriceListKindGolden, gen.PriceList.Kind)
	assert.False(t, gen.PriceList.IsActive)
	require.Len(t, gen.Entries, 1)
	assert.Equal(t, gen.PriceList.ID, gen.Entries[0].PriceListID)
	assert.True(t, decimal.NewFromInt(50).Equal(gen.Entries[0].LaborCost()))

	require.Len(t, gen.Capacity, 2)
	assert.Equal(t, "Paint", gen.Capacity[0].Trade)
	require.NotNil(t, gen.Capacity[0].ProjectID)
	assert.Equal(t, gen.Project.ID, *gen.Capacity[0].ProjectID)
	assert.Nil(t, gen.Capacity[1].ProjectID, "company scope has no project")
	assert.Equal(t, "acme", gen.Capacity[1].CompanyID)
}
