package http

import (
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/schedule"
)

type CreateOrderRequest struct {
	// OrderDate defaults to today.
	OrderDate           string `json:"orderDate" validate:"omitempty,datetime=2006-01-02"`
	Department          string `json:"department" validate:"required"`
	ExternalOrderNumber string `json:"externalOrderNumber" validate:"max=32"`
	DueDate             string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	StockModelID        string `json:"stockModelId"`
	// PriorityScore defaults to 50. Lower is more urgent.
	PriorityScore       *int   `json:"priorityScore" validate:"omitempty,min=0,max=100"`
	NeedsAdjustment     bool   `json:"needsAdjustment"`
}

type CreateOrderResponse struct {
	ID string `json:"id"`
}

type MoveOrderRequest struct {
	Department string `json:"department" validate:"required"`
	// On defaults to today.
	On         string `json:"on" validate:"omitempty,datetime=2006-01-02"`
}

type ClassifyStockModelRequest struct {
	StockModelID string `json:"stockModelId" validate:"required"`
}

type RequireAdjustmentRequest struct {
	Needed *bool `json:"needed" validate:"required"`
}

type AllocateSerialRequest struct {
	CustomerCode string `json:"customerCode" validate:"required"`
	Year         int    `json:"year" validate:"required,min=2000,max=2099"`
}

type AllocateSerialResponse struct {
	Serial string `json:"serial"`
}

type RunSchedulerRequest struct {
	// AsOf defaults to today.
	AsOf string `json:"asOf" validate:"omitempty,datetime=2006-01-02"`
}

type ReassignOrderRequest struct {
	FixtureID string `json:"fixtureId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Override  bool   `json:"override"`
}

type Assignment struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	FixtureID      string `json:"fixtureId"`
	Date           string `json:"date"`
	Kind           string `json:"kind"`
	ManualOverride bool   `json:"manualOverride"`
}

func toAssignment(a *schedule.Assignment) Assignment {
	return Assignment{
		ID:             a.ID().String(),
		OrderID:        a.OrderID(),
		FixtureID:      a.FixtureID(),
		Date:           a.Date().String(),
		Kind:           a.Kind().String(),
		ManualOverride: a.ManualOverride(),
	}
}

type Unschedulable struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type SchedulePassResponse struct {
	AsOf                string          `json:"asOf"`
	Skipped             bool            `json:"skipped"`
	Assignments         []Assignment    `json:"assignments"`
	Unschedulable       []Unschedulable `json:"unschedulable"`
	NeedsClassification []string        `json:"needsClassification"`
}

func toSchedulePassResponse(r commands.SchedulePassResult) SchedulePassResponse {
	resp := SchedulePassResponse{
		AsOf:                r.AsOf.String(),
		Skipped:             r.Skipped,
		Assignments:         make([]Assignment, 0, len(r.Assignments)),
		Unschedulable:       make([]Unschedulable, 0, len(r.Unschedulable)),
		NeedsClassification: make([]string, 0, len(r.NeedsClassification)),
	}
	for _, a := range r.Assignments {
		resp.Assignments = append(resp.Assignments, toAssignment(a))
	}
	for _, u := range r.Unschedulable {
		resp.Unschedulable = append(resp.Unschedulable, Unschedulable{OrderID: u.OrderID, Reason: u.Reason})
	}
	resp.NeedsClassification = append(resp.NeedsClassification, r.NeedsClassification...)
	return resp
}

type ScheduleEntry struct {
	AssignmentID        string `json:"assignmentId"`
	OrderID             string `json:"orderId"`
	ExternalOrderNumber string `json:"externalOrderNumber,omitempty"`
	StockModelID        string `json:"stockModelId,omitempty"`
	OrderStatus         string `json:"orderStatus"`
	FixtureID           string `json:"fixtureId"`
	Date                string `json:"date"`
	Kind                string `json:"kind"`
	ManualOverride      bool   `json:"manualOverride"`
}

func toScheduleEntry(r queries.GetScheduleQueryResponse) ScheduleEntry {
	return ScheduleEntry{
		AssignmentID:        r.AssignmentID.String(),
		OrderID:             r.OrderID,
		ExternalOrderNumber: r.ExternalOrderNumber,
		StockModelID:        r.StockModelID,
		OrderStatus:         r.OrderStatus.String(),
		FixtureID:           r.FixtureID,
		Date:                r.Date.String(),
		Kind:                r.Kind.String(),
		ManualOverride:      r.ManualOverride,
	}
}

type PipelineItem struct {
	OrderID             string `json:"orderId"`
	ExternalOrderNumber string `json:"externalOrderNumber,omitempty"`
	StockModelID        string `json:"stockModelId,omitempty"`
	Status              string `json:"status"`
	Department          string `json:"department"`
	DepartmentEnteredAt string `json:"departmentEnteredAt"`
	DueDate             string `json:"dueDate,omitempty"`
	NeedsAdjustment     bool   `json:"needsAdjustment"`
	PriorityEscalated   bool   `json:"priorityEscalated"`
	ScheduleStatus      string `json:"scheduleStatus"`
	DwellDays           int    `json:"dwellDays"`
	ExpectedDwellDays   int    `json:"expectedDwellDays"`
	RemainingLeadDays   int    `json:"remainingLeadDays"`
	ProjectedCompletion string `json:"projectedCompletion"`
}

func toPipelineItem(r queries.GetPipelineHealthQueryResponse) PipelineItem {
	return PipelineItem{
		OrderID:             r.OrderID,
		ExternalOrderNumber: r.ExternalOrderNumber,
		StockModelID:        r.StockModelID,
		Status:              r.Status.String(),
		Department:          r.CurrentDepartment,
		DepartmentEnteredAt: r.DepartmentEnteredAt.String(),
		DueDate:             r.DueDate.String(),
		NeedsAdjustment:     r.NeedsAdjustment,
		PriorityEscalated:   r.PriorityEscalated,
		ScheduleStatus:      r.Health.String(),
		DwellDays:           r.DwellDays,
		ExpectedDwellDays:   r.ExpectedDwellDays,
		RemainingLeadDays:   r.RemainingLeadDays,
		ProjectedCompletion: r.ProjectedCompletion.String(),
	}
}
