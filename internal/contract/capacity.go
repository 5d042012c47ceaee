package contract

import "github.com/alexanderramin/crewplan/internal/domain"

// CapacityListRequest lists the capacity rows visible to a project.
// CompanyID is optional; when set, the project must belong to it.
type CapacityListRequest struct {
	CompanyID string
	ProjectID string `validate:"required"`
}

// CapacityUpsertRequest sets a trade's concurrent-crew limit for a project
// or for the project's whole company. Scope defaults to project.
type CapacityUpsertRequest struct {
	CompanyID     string
	ProjectID     string `validate:"required"`
	Trade         string `validate:"required"`
	MaxConcurrent int    `validate:"gt=0"`
	Scope         string `validate:"omitempty,oneof=project company"`
}

// CapacityScope returns the requested scope, defaulting to project.
func (r CapacityUpsertRequest) CapacityScope() domain.CapacityScope {
	if r.Scope == string(domain.ScopeCompany) {
		return domain.ScopeCompany
	}
	return domain.ScopeProject
}
