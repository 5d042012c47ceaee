package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/google/uuid"
)

type capacityService struct {
	scope    scopeLoader
	capacity repository.CapacityRepo
	observer UseCaseObserver
}

func NewCapacityService(
	projects repository.ProjectRepo,
	capacity repository.CapacityRepo,
	observers ...UseCaseObserver,
) CapacityService {
	return &capacityService{
		scope:    scopeLoader{projects: projects},
		capacity: capacity,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *capacityService) List(ctx context.Context, req contract.CapacityListRequest) ([]domain.TradeCapacity, error) {
	if err := contract.Validate(req); err != nil {
		return nil, err
	}
	project, err := s.scope.project(ctx, req.CompanyID, req.ProjectID)
	if err != nil {
		return nil, err
	}
	rows, err := s.capacity.ListForProject(ctx, project.CompanyID, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing trade capacity: %w", err)
	}
	return rows, nil
}

func (s *capacityService) Upsert(ctx context.Context, req contract.CapacityUpsertRequest) (saved *domain.TradeCapacity, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"project_id":     req.ProjectID,
		"trade":          req.Trade,
		"max_concurrent": req.MaxConcurrent,
		"scope":          string(req.CapacityScope()),
	}
	defer observe(ctx, s.observer, "capacity.upsert", startedAt, fields, &err)

	if err = contract.Validate(req); err != nil {
		return nil, err
	}
	project, err := s.scope.project(ctx, req.CompanyID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &domain.TradeCapacity{
		ID:            uuid.New().String(),
		CompanyID:     project.CompanyID,
		Trade:         strings.TrimSpace(req.Trade),
		MaxConcurrent: req.MaxConcurrent,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.CapacityScope() == domain.ScopeProject {
		pid := project.ID
		row.ProjectID = &pid
	}

	saved, err = s.capacity.Upsert(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("saving trade capacity: %w", err)
	}
	return saved, nil
}
