package queries

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/health"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var (
	ErrGetPipelineHealthQueryIsNotConstructed = errors.New(
		"GetPipelineHealthQuery must be created via NewGetPipelineHealthQuery constructor",
	)
)

// GetPipelineHealthQuery classifies every active order as of today.
// An empty department reads the whole pipeline.
//
// Example:
//
//	query, err := NewGetPipelineHealthQuery(kernel.Today(time.UTC), "")
//	if err != nil {
//	    return err
//	}
//
//	items, err := handler.Handle(ctx, query)
//	for _, item := range items {
//	    fmt.Printf("%s %s %s\n", item.OrderID, item.CurrentDepartment, item.Health)
//	}
type GetPipelineHealthQuery struct {
	today      kernel.Date
	department string
	guard      guard.ConstructorGuard
}

// NewGetPipelineHealthQuery creates the query. today must be a valid date.
func NewGetPipelineHealthQuery(today kernel.Date, department string) (GetPipelineHealthQuery, error) {
	if err := today.Validate(); err != nil {
		return GetPipelineHealthQuery{}, err
	}

	return GetPipelineHealthQuery{
		today:      today,
		department: strings.TrimSpace(department),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetPipelineHealthQuery) Validate() error {
	return q.guard.Validate(ErrGetPipelineHealthQueryIsNotConstructed)
}

func (q GetPipelineHealthQuery) Today() kernel.Date {
	return q.today
}

func (q GetPipelineHealthQuery) Department() string {
	return q.department
}

// GetPipelineHealthQueryResponse is one classified order. Items come back
// worst first: by health severity, then due date (missing last), then id.
type GetPipelineHealthQueryResponse struct {
	OrderID             string
	ExternalOrderNumber string
	StockModelID        string
	Status              order.Status
	CurrentDepartment   string
	DepartmentEnteredAt kernel.Date
	// DueDate is the zero Date when unknown.
	DueDate             kernel.Date
	NeedsAdjustment     bool
	PriorityEscalated   bool
	Health              health.Status
	DwellDays           int
	ExpectedDwellDays   int
	RemainingLeadDays   int
	ProjectedCompletion kernel.Date
}
