package domain

import "time"

// TradeCapacity caps concurrent crews for a trade. A nil ProjectID scopes
// the row to the whole company.
type TradeCapacity struct {
	ID            string
	CompanyID     string
	ProjectID     *string
	Trade         string
	MaxConcurrent int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Scope reports whether the row is project- or company-scoped.
func (c TradeCapacity) Scope() CapacityScope {
	if c.ProjectID != nil {
		return ScopeProject
	}
	return ScopeCompany
}
