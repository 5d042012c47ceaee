package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySummary_AggregatesCommittedTasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	ctx := context.Background()

	_, err := newScheduleService(database).Commit(ctx, commitReq(sc))
	require.NoError(t, err)

	svc := NewSummaryService(repository.NewSQLiteProjectRepo(database), repository.NewSQLiteScheduleTaskRepo(database), 0)
	days, err := svc.DailySummary(ctx, contract.DailySummaryRequest{
		ProjectID: sc.project.ID, From: "2024-03-04", To: "2024-03-07",
	})
	require.NoError(t, err)
	require.Len(t, days, 4)

	monday := days[0]
	assert.Equal(t, testutil.Date(2024, 3, 4), monday.Date)
	assert.Equal(t, 2, monday.TaskCount)
	assert.InDelta(t, 55.5, monday.TotalLaborHours, 1e-9)
	require.Len(t, monday.Trades, 2)
	assert.Equal(t, "Drywall", monday.Trades[0].Trade, "trades follow phase order")
	assert.Equal(t, "Paint", monday.Trades[1].Trade)

	assert.Equal(t, 1, days[1].TaskCount)
	assert.InDelta(t, 16, days[2].TotalLaborHours, 1e-9)

	thursday := days[3]
	assert.Zero(t, thursday.TaskCount)
	assert.Empty(t, thursday.Trades)
}

func TestDailySummary_ToDefaultsToFrom(t *testing.T) {
	database := testutil.NewTestDB(t)
	sc := seedScenario(t, database)
	svc := NewSummaryService(repository.NewSQLiteProjectRepo(database), repository.NewSQLiteScheduleTaskRepo(database), 0)

	days, err := svc.DailySummary(context.Background(), contract.DailySummaryRequest{ProjectID: sc.project.ID, From: "2024-03-04"})
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestDailySummary_RejectsBadRanges(t *testing.T) {
	database := testutil.NewTestDB(t)
	sc := seedScenario(t, database)
	svc := NewSummaryService(repository.NewSQLiteProjectRepo(database), repository.NewSQLiteScheduleTaskRepo(database), 0)
	ctx := context.Background()

	tests := []struct {
		name string
		from string
		to   string
	}{
		{"missing from", "", ""},
		{"bad from", "March 4", ""},
		{"bad to", "2024-03-04", "2024-13-01"},
		{"reversed", "2024-03-10", "2024-03-04"},
		{"too long", "2024-01-01", "2024-07-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DailySummary(ctx, contract.DailySummaryRequest{ProjectID: sc.project.ID, From: tt.from, To: tt.to})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	days, err := svc.DailySummary(ctx, contract.DailySummaryRequest{ProjectID: sc.project.ID, From: "2024-01-01", To: "2024-06-29"})
	require.NoError(t, err)
	assert.Len(t, days, 181)
}

func TestDailySummary_CustomMaxRange(t *testing.T) {
	database := testutil.NewTestDB(t)
	sc := seedScenario(t, database)
	svc := NewSummaryService(repository.NewSQLiteProjectRepo(database), repository.NewSQLiteScheduleTaskRepo(database), 7)

	_, err := svc.DailySummary(context.Background(), contract.DailySummaryRequest{
		ProjectID: sc.project.ID, From: "2024-03-01", To: "2024-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDailySummary_UnknownProject(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewSummaryService(repository.NewSQLiteProjectRepo(database), repository.NewSQLiteScheduleTaskRepo(database), 0)

	_, err := svc.DailySummary(context.Background(), contract.DailySummaryRequest{ProjectID: "nope", From: "2024-03-04"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
