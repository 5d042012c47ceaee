package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
)

// notFound rewraps repository misses as domain.ErrNotFound.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf(format+": %w", append(args, domain.ErrNotFound)...)
	}
	return err
}

// scopeLoader resolves the project and estimate a request addresses.
type scopeLoader struct {
	projects  repository.ProjectRepo
	estimates repository.EstimateRepo
}

// project loads a project, hiding projects of other companies when
// companyID is set.
func (l scopeLoader) project(ctx context.Context, companyID, projectID string) (*domain.Project, error) {
	p, err := l.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFound(err, "project %s", projectID)
	}
	if companyID != "" && p.CompanyID != companyID {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	return p, nil
}

func (l scopeLoader) estimate(ctx context.Context, companyID, projectID, estimateID string) (*domain.Project, *domain.Estimate, error) {
	p, err := l.project(ctx, companyID, projectID)
	if err != nil {
		return nil, nil, err
	}
	e, err := l.estimates.GetForProject(ctx, projectID, estimateID)
	if err != nil {
		return nil, nil, notFound(err, "estimate %s of project %s", estimateID, projectID)
	}
	return p, e, nil
}

// deriveProjectStart picks the schedule origin: an explicit override, else
// the earliest line source date, else the estimate import date, else the
// project creation date, else now. The result is date-only.
func deriveProjectStart(override *time.Time, project *domain.Project, estimate *domain.Estimate, lines []domain.EstimateLine, now time.Time) time.Time {
	if override != nil {
		return calendar.DateOnly(*override)
	}
	var earliest *time.Time
	for _, l := range lines {
		if l.SourceDate != nil && (earliest == nil || l.SourceDate.Before(*earliest)) {
			earliest = l.SourceDate
		}
	}
	switch {
	case earliest != nil:
		return calendar.DateOnly(*earliest)
	case estimate.ImportedAt != nil:
		return calendar.DateOnly(*estimate.ImportedAt)
	case !project.CreatedAt.IsZero():
		return calendar.DateOnly(project.CreatedAt)
	default:
		return calendar.DateOnly(now)
	}
}

// lineCodes returns the distinct normalized categories and selectors of lines.
func lineCodes(lines []domain.EstimateLine) (categories, selectors []string) {
	cats := make(map[string]bool)
	sels := make(map[string]bool)
	for _, l := range lines {
		if c := l.CategoryCode(); c != "" && !cats[c] {
			cats[c] = true
			categories = append(categories, c)
		}
		if s := l.SelectorCode(); s != "" && !sels[s] {
			sels[s] = true
			selectors = append(selectors, s)
		}
	}
	sort.Strings(categories)
	sort.Strings(selectors)
	return categories, selectors
}
