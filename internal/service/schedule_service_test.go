package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos(database *sql.DB) ScheduleRepos {
	return ScheduleRepos{
		Projects:  repository.NewSQLiteProjectRepo(database),
		Estimates: repository.NewSQLiteEstimateRepo(database),
		Catalog:   repository.NewSQLiteCatalogRepo(database),
		Capacity:  repository.NewSQLiteCapacityRepo(database),
		Tasks:     repository.NewSQLiteScheduleTaskRepo(database),
		Changes:   repository.NewSQLiteChangeLogRepo(database),
	}
}

func newScheduleService(database *sql.DB, opts ...ScheduleOption) ScheduleService {
	opts = append([]ScheduleOption{WithClock(func() time.Time { return testutil.FixedNow })}, opts...)
	return NewScheduleService(newRepos(database), testutil.NewTestUoW(database), opts...)
}

type scenario struct {
	project  *domain.Project
	estimate *domain.Estimate
}

// seedCatalog stores an active golden price list: labor at 40/h under both
// line codes, drywall at 0.125 h/SF and paint at 0.0625 h/SF.
func seedCatalog(t *testing.T, database *sql.DB) *domain.PriceList {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewSQLiteCatalogRepo(database)
	pl := testutil.NewTestPriceList()
	require.NoError(t, repo.CreatePriceList(ctx, pl))
	require.NoError(t, repo.CreateEntries(ctx, []domain.LaborCatalogEntry{
		testutil.NewHourlyEntry(pl.ID, "DRY", "1/2", "LM1", "40"),
		testutil.NewHourlyEntry(pl.ID, "PNT", "P", "LM1", "40"),
		testutil.NewUnitEntry(pl.ID, "DRY", "1/2", "+", "LM1", "5"),
		testutil.NewUnitEntry(pl.ID, "PNT", "P", "+", "LM1", "2.5"),
	}))
	return pl
}

// seedScenario stores a project whose estimate yields Bath paint (0.5 day),
// Kitchen drywall (2 days) and Kitchen paint (1 day), plus one unpriced line.
func seedScenario(t *testing.T, database *sql.DB, lineOpts ...testutil.LineOption) scenario {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Smith Residence")
	require.NoError(t, repository.NewSQLiteProjectRepo(database).Create(ctx, proj))
	est := testutil.NewTestEstimate(proj.ID)
	estimates := repository.NewSQLiteEstimateRepo(database)
	require.NoError(t, estimates.Create(ctx, est))
	require.NoError(t, estimates.CreateLines(ctx, []domain.EstimateLine{
		testutil.NewTestLine(est.ID, "DRY", "1/2", "384", "Kitchen", lineOpts...),
		testutil.NewTestLine(est.ID, "PNT", "P", "256", "Kitchen", lineOpts...),
		testutil.NewTestLine(est.ID, "PNT", "P", "120", "Bath", lineOpts...),
		testutil.NewTestLine(est.ID, "CAB", "LOW", "3", "Kitchen", lineOpts...),
	}))
	return scenario{project: proj, estimate: est}
}

func previewReq(sc scenario) contract.PreviewRequest {
	return contract.PreviewRequest{
		ProjectID:         sc.project.ID,
		EstimateID:        sc.estimate.ID,
		StartDateOverride: "2024-03-04",
	}
}

func commitReq(sc scenario) contract.CommitRequest {
	return contract.CommitRequest{PreviewRequest: previewReq(sc), ActorID: "user-1"}
}

func taskByID(tasks []domain.ScheduledTask, id string) domain.ScheduledTask {
	for _, t := range tasks {
		if t.SyntheticID == id {
			return t
		}
	}
	return domain.ScheduledTask{}
}

func TestPreview_BuildsScheduleFromEstimate(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)

	preview, err := svc.Preview(context.Background(), previewReq(sc))
	require.NoError(t, err)

	assert.Equal(t, testutil.Date(2024, 3, 4), preview.ProjectStart)
	require.Len(t, preview.WorkPackages, 3)
	assert.Equal(t, "Bath", preview.WorkPackages[0].Room)
	assert.InDelta(t, 71.5, preview.TotalLaborHours, 1e-9)
	assert.Nil(t, preview.MitigationWindow)

	require.Len(t, preview.MissingPriceItems, 1)
	assert.Equal(t, "CAB", preview.MissingPriceItems[0].Category)
	assert.Equal(t, 1, preview.MissingLineCount())

	require.Len(t, preview.ScheduledTasks, 3)
	bath := taskByID(preview.ScheduledTasks, "wp-1")
	assert.Equal(t, testutil.Date(2024, 3, 4), bath.EndDate)
	assert.Equal(t, 0.5, bath.DurationDays)

	drywall := taskByID(preview.ScheduledTasks, "wp-2")
	assert.Equal(t, testutil.Date(2024, 3, 5), drywall.EndDate)

	paint := taskByID(preview.ScheduledTasks, "wp-3")
	assert.Equal(t, testutil.Date(2024, 3, 6), paint.StartDate, "kitchen paint waits for drywall")
	assert.Equal(t, []string{"wp-2"}, paint.PredecessorIDs)
	assert.Empty(t, preview.Conflicts)
}

func TestPreview_ProjectStartFromEarliestSourceDate(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database, testutil.WithSourceDate(testutil.Date(2024, 3, 11)))
	svc := newScheduleService(database)

	req := previewReq(sc)
	req.StartDateOverride = ""
	preview, err := svc.Preview(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2024, 3, 11), preview.ProjectStart)
	assert.Equal(t, testutil.Date(2024, 3, 11), preview.ScheduledTasks[0].StartDate)
}

func TestPreview_UnparseableStartOverrideIsIgnored(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)

	req := previewReq(sc)
	req.StartDateOverride = "next tuesday"
	preview, err := svc.Preview(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2024, 3, 1), preview.ProjectStart, "falls back to project creation date")
}

func TestPreview_Mitigation(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	require.NoError(t, repository.NewSQLiteEstimateRepo(database).CreateLines(context.Background(), []domain.EstimateLine{
		testutil.NewTestLine(sc.estimate.ID, "WTR", "DHM>>", "1", "Kitchen", testutil.WithNote("2 units for 3 days")),
	}))
	svc := newScheduleService(database)

	preview, err := svc.Preview(context.Background(), previewReq(sc))
	require.NoError(t, err)

	require.NotNil(t, preview.MitigationWindow)
	assert.Equal(t, 3.0, preview.MitigationWindow.DurationDays)
	require.Len(t, preview.ScheduledTasks, 4)
	mit := preview.ScheduledTasks[0]
	assert.Equal(t, "mitigation-"+sc.estimate.ID, mit.SyntheticID)
	assert.Equal(t, testutil.Date(2024, 3, 6), mit.EndDate)
	assert.Equal(t, testutil.Date(2024, 3, 7), taskByID(preview.ScheduledTasks, "wp-1").StartDate)
}

func TestPreview_UsesConfiguredCapacity(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)
	ctx := context.Background()

	req := previewReq(sc)
	req.TaskOverrides = map[string]contract.TaskOverrideInput{"wp-3": {StartDate: "2024-03-06"}}
	before, err := svc.Preview(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, before.Conflicts)

	// A second paint crew lets kitchen paint run alongside a long bath job.
	long := 4.0
	req.TaskOverrides["wp-1"] = contract.TaskOverrideInput{DurationDays: &long}
	pushed, err := svc.Preview(ctx, req)
	require.NoError(t, err)
	require.Len(t, pushed.Conflicts, 1)
	assert.Equal(t, []domain.ConflictReason{domain.ReasonTradeCapacity}, pushed.Conflicts[0].Reasons)
	assert.Equal(t, testutil.Date(2024, 3, 8), taskByID(pushed.ScheduledTasks, "wp-3").StartDate)

	pid := sc.project.ID
	_, err = repository.NewSQLiteCapacityRepo(database).Upsert(ctx,
		testutil.NewTestCapacity(testutil.TestCompanyID, &pid, "Paint", 2))
	require.NoError(t, err)

	relaxed, err := svc.Preview(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, relaxed.Conflicts)
	assert.Equal(t, testutil.Date(2024, 3, 6), taskByID(relaxed.ScheduledTasks, "wp-3").StartDate)
}

func TestPreview_ScopeErrors(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	other := seedScenario(t, database)
	svc := newScheduleService(database)
	ctx := context.Background()

	req := previewReq(sc)
	req.EstimateID = "missing"
	_, err := svc.Preview(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = previewReq(sc)
	req.EstimateID = other.estimate.ID
	_, err = svc.Preview(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "estimate of another project")

	req = previewReq(sc)
	req.CompanyID = "someone-else"
	_, err = svc.Preview(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "project of another company")

	req = previewReq(sc)
	req.CompanyID = testutil.TestCompanyID
	_, err = svc.Preview(ctx, req)
	assert.NoError(t, err)
}

func TestPreview_ValidationError(t *testing.T) {
	svc := newScheduleService(testutil.NewTestDB(t))
	_, err := svc.Preview(context.Background(), contract.PreviewRequest{ProjectID: "p"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *contract.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "EstimateID", verr.Fields[0].Field)
}

func TestPreview_NoActiveCatalog(t *testing.T) {
	database := testutil.NewTestDB(t)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)

	_, err := svc.Preview(context.Background(), previewReq(sc))
	assert.ErrorIs(t, err, domain.ErrNoActiveCatalog)
}

func TestPreview_HourlyRateOnlyFromEstimateCodes(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	catalog := repository.NewSQLiteCatalogRepo(database)
	pl := testutil.NewTestPriceList()
	require.NoError(t, catalog.CreatePriceList(ctx, pl))
	require.NoError(t, catalog.CreateEntries(ctx, []domain.LaborCatalogEntry{
		testutil.NewHourlyEntry(pl.ID, "LAB", "LM1", "LM1", "100"),
		testutil.NewHourlyEntry(pl.ID, "DRY", "1/2", "LM1", "50"),
		testutil.NewUnitEntry(pl.ID, "DRY", "1/2", "+", "LM1", "50"),
	}))

	proj := testutil.NewTestProject("Jones Residence")
	require.NoError(t, repository.NewSQLiteProjectRepo(database).Create(ctx, proj))
	est := testutil.NewTestEstimate(proj.ID)
	estimates := repository.NewSQLiteEstimateRepo(database)
	require.NoError(t, estimates.Create(ctx, est))
	require.NoError(t, estimates.CreateLines(ctx, []domain.EstimateLine{
		testutil.NewTestLine(est.ID, "DRY", "1/2", "10", "Kitchen"),
	}))

	preview, err := newScheduleService(database).Preview(ctx, previewReq(scenario{project: proj, estimate: est}))
	require.NoError(t, err)
	assert.InDelta(t, 10, preview.TotalLaborHours, 1e-9, "the LAB rate row is not part of this estimate")
}

func TestPreview_EmptyEstimateNeedsNoCatalog(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Empty")
	require.NoError(t, repository.NewSQLiteProjectRepo(database).Create(ctx, proj))
	est := testutil.NewTestEstimate(proj.ID)
	require.NoError(t, repository.NewSQLiteEstimateRepo(database).Create(ctx, est))
	svc := newScheduleService(database)

	preview, err := svc.Preview(ctx, contract.PreviewRequest{ProjectID: proj.ID, EstimateID: est.ID})
	require.NoError(t, err)
	assert.Empty(t, preview.ScheduledTasks)
	assert.NotNil(t, preview.ScheduledTasks)
	assert.Empty(t, preview.WorkPackages)
	assert.Nil(t, preview.MitigationWindow)
}

func TestPreview_ConcurrentCallsAgree(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)

	const n = 8
	results := make([]*contract.SchedulePreview, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Preview(context.Background(), previewReq(sc))
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].ScheduledTasks, results[i].ScheduledTasks)
	}
}

// gatedEstimates holds the first ListLines call until release is closed.
type gatedEstimates struct {
	repository.EstimateRepo
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedEstimates) ListLines(ctx context.Context, estimateID string) ([]domain.EstimateLine, error) {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.EstimateRepo.ListLines(ctx, estimateID)
}

func TestPreview_CancelledCallerDoesNotFailSharedCallers(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)

	repos := newRepos(database)
	gate := &gatedEstimates{
		EstimateRepo: repos.Estimates,
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	repos.Estimates = gate
	svc := NewScheduleService(repos, testutil.NewTestUoW(database))

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Preview(ctxA, previewReq(sc))
		errA <- err
	}()
	<-gate.entered

	type outcome struct {
		preview *contract.SchedulePreview
		err     error
	}
	resB := make(chan outcome, 1)
	go func() {
		p, err := svc.Preview(context.Background(), previewReq(sc))
		resB <- outcome{p, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(gate.release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Len(t, b.preview.ScheduledTasks, 3)
}

func TestConflicts_ReportsDelayedOverride(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)

	req := previewReq(sc)
	req.TaskOverrides = map[string]contract.TaskOverrideInput{"wp-3": {StartDate: "2024-03-04", LockType: "soft"}}
	res, err := svc.Conflicts(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, sc.estimate.ID, res.EstimateID)
	require.Len(t, res.Conflicts, 1)
	c := res.Conflicts[0]
	assert.Equal(t, "wp-3", c.TaskID)
	assert.Equal(t, domain.ConflictStartDelayed, c.Type)
	assert.Equal(t, []domain.ConflictReason{domain.ReasonRoomDependency}, c.Reasons)
	assert.Equal(t, "Kitchen · Paint delayed from 2024-03-04 to 2024-03-06 due to room dependency", c.Message)
}

func TestLegend_IsStatic(t *testing.T) {
	svc := newScheduleService(testutil.NewTestDB(t))
	legend := svc.Legend()
	assert.Len(t, legend.Types, 2)
	assert.Len(t, legend.Reasons, 4)
}

func TestCommit_CreatesTasksAndIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)
	ctx := context.Background()

	first, err := svc.Commit(ctx, commitReq(sc))
	require.NoError(t, err)
	require.Len(t, first.Changes, 3)
	for _, c := range first.Changes {
		assert.Equal(t, domain.ChangeTaskCreated, c.ChangeType)
		assert.Nil(t, c.PreviousStartDate)
		assert.Equal(t, "user-1", c.ActorID)
		assert.NotEmpty(t, c.ScheduleTaskID)
	}

	second, err := svc.Commit(ctx, commitReq(sc))
	require.NoError(t, err)
	assert.Empty(t, second.Changes, "unchanged schedule writes nothing")
	assert.Len(t, second.ScheduledTasks, 3)

	tasks, err := svc.ListTasks(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	history, err := svc.History(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestCommit_UpdatesMovedTasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)
	ctx := context.Background()

	_, err := svc.Commit(ctx, commitReq(sc))
	require.NoError(t, err)
	before, err := svc.ListTasks(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)

	req := commitReq(sc)
	req.StartDateOverride = "2024-03-05"
	moved, err := svc.Commit(ctx, req)
	require.NoError(t, err)
	require.Len(t, moved.Changes, 3)

	byTask := make(map[string]domain.ChangeLogEntry)
	for _, c := range moved.Changes {
		assert.Equal(t, domain.ChangeTaskUpdated, c.ChangeType)
		byTask[c.TaskSyntheticID] = c
	}
	bath := byTask["wp-1"]
	require.NotNil(t, bath.PreviousStartDate)
	assert.Equal(t, testutil.Date(2024, 3, 4), *bath.PreviousStartDate)
	assert.Equal(t, testutil.Date(2024, 3, 5), bath.NewStartDate)
	require.NotNil(t, bath.PreviousDurationDays)
	assert.Equal(t, 0.5, *bath.PreviousDurationDays)

	after, err := svc.ListTasks(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	require.Len(t, after, 3)
	ids := make(map[string]string)
	for _, t := range before {
		ids[t.SyntheticID] = t.ID
	}
	for _, task := range after {
		assert.Equal(t, ids[task.SyntheticID], task.ID, "tasks are updated in place")
	}

	history, err := svc.History(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Len(t, history, 6)
}

func TestCommit_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	ctx := context.Background()

	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, Table: "schedule_change_logs", FailOn: 2, Err: injected}
	failing := NewScheduleService(newRepos(database), uow)

	_, err := failing.Commit(ctx, commitReq(sc))
	require.ErrorIs(t, err, injected)
	assert.Equal(t, 2, uow.Writes, "failed on the second task's change log")

	svc := newScheduleService(database)
	tasks, err := svc.ListTasks(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Empty(t, tasks, "no partial task list")
	history, err := svc.History(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Empty(t, history, "no partial change log")
}

func TestCommit_FailedRecommitKeepsPreviousSchedule(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)
	ctx := context.Background()

	_, err := svc.Commit(ctx, commitReq(sc))
	require.NoError(t, err)

	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, Table: "schedule_tasks", FailOn: 2, Err: injected}
	req := commitReq(sc)
	req.StartDateOverride = "2024-03-05"
	_, err = NewScheduleService(newRepos(database), uow).Commit(ctx, req)
	require.ErrorIs(t, err, injected)

	tasks, err := svc.ListTasks(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		if task.SyntheticID == "wp-1" {
			assert.True(t, testutil.Date(2024, 3, 4).Equal(task.StartDate), "first task update rolled back")
		}
	}
	history, err := svc.History(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Len(t, history, 3, "only the first commit's change log")
}

func TestCommit_ConcurrentCommitsWriteOneChangeLog(t *testing.T) {
	database := testutil.NewTestFileDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)
	ctx := context.Background()

	const committers = 6
	var wg sync.WaitGroup
	errs := make([]error, committers)
	for i := 0; i < committers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Commit(ctx, commitReq(sc))
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		assert.NoError(t, err, "committer %d", i)
	}

	tasks, err := svc.ListTasks(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
	history, err := svc.History(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Len(t, history, 3, "later commits diff against the first one's tasks")
}

func TestCommit_RequiresActor(t *testing.T) {
	svc := newScheduleService(testutil.NewTestDB(t))
	req := contract.CommitRequest{PreviewRequest: contract.PreviewRequest{ProjectID: "p", EstimateID: "e"}}
	_, err := svc.Commit(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTasksForDate(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database)
	ctx := context.Background()

	_, err := svc.Commit(ctx, commitReq(sc))
	require.NoError(t, err)

	tasks, err := svc.TasksForDate(ctx, contract.TasksForDateRequest{ProjectID: sc.project.ID, Date: "2024-03-05"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "wp-2", tasks[0].SyntheticID)

	tasks, err = svc.TasksForDate(ctx, contract.TasksForDateRequest{ProjectID: sc.project.ID, Date: "2024-03-04"})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	_, err = svc.TasksForDate(ctx, contract.TasksForDateRequest{ProjectID: sc.project.ID, Date: "03/05/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_RespectsLimit(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedCatalog(t, database)
	sc := seedScenario(t, database)
	svc := newScheduleService(database, WithHistoryLimit(2))
	ctx := context.Background()

	_, err := svc.Commit(ctx, commitReq(sc))
	require.NoError(t, err)

	history, err := svc.History(ctx, contract.TaskListRequest{ProjectID: sc.project.ID, EstimateID: sc.estimate.ID})
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
