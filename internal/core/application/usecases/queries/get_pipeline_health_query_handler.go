package queries

import (
	"cmp"
	"context"
	"slices"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

const tracerName = "production/queries"

// GetPipelineHealthQueryHandler reads active orders straight from the orders
// table and classifies them. Health is derived on every read and never stored.
type GetPipelineHealthQueryHandler struct {
	db         *gorm.DB
	classifier services.StatusClassifier
}

func NewGetPipelineHealthQueryHandler(db *gorm.DB, classifier services.StatusClassifier) GetPipelineHealthQueryHandler {
	return GetPipelineHealthQueryHandler{db: db, classifier: classifier}
}

// Handle returns the classified active orders. Shipped and cancelled orders are left out.
func (h GetPipelineHealthQueryHandler) Handle(
	ctx context.Context,
	query GetPipelineHealthQuery,
) ([]GetPipelineHealthQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "GetPipelineHealth")
	defer span.End()
	span.SetAttributes(
		attribute.String("pipeline.today", query.Today().String()),
		attribute.String("pipeline.department", query.Department()),
	)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"id",
			"external_order_number",
			"stock_model_id",
			"status",
			"current_department",
			"department_entered_at",
			"due_date",
			"needs_adjustment",
			"priority_escalated",
		).
		From("orders").
		Where(sq.NotEq{"status": []int{int(order.Shipped), int(order.Cancelled)}}).
		OrderBy("id")
	if query.Department() != "" {
		builder = builder.Where(sq.Eq{"current_department": query.Department()})
	}

	sqlText, args, err := builder.ToSql()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build pipeline query")
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read pipeline")
		return nil, err
	}
	defer rows.Close()

	items := make([]GetPipelineHealthQueryResponse, 0)
	for rows.Next() {
		var (
			item           GetPipelineHealthQueryResponse
			externalNumber null.String
			stockModelID   null.String
			status         int
			enteredAt      time.Time
			dueDate        null.Time
		)

		err = rows.Scan(
			&item.OrderID,
			&externalNumber,
			&stockModelID,
			&status,
			&item.CurrentDepartment,
			&enteredAt,
			&dueDate,
			&item.NeedsAdjustment,
			&item.PriorityEscalated,
		)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}

		item.ExternalOrderNumber = externalNumber.String
		item.StockModelID = stockModelID.String
		item.Status = order.Status(status)
		item.DepartmentEnteredAt = kernel.DateOf(enteredAt)
		if dueDate.Valid {
			item.DueDate = kernel.DateOf(dueDate.Time)
		}

		assessment := h.classifier.Assess(services.ScheduleFacts{
			DueDate:             item.DueDate,
			CurrentDepartment:   item.CurrentDepartment,
			DepartmentEnteredAt: item.DepartmentEnteredAt,
			NeedsAdjustment:     item.NeedsAdjustment,
		}, query.Today())
		item.Health = assessment.Status
		item.DwellDays = assessment.DwellDays
		item.ExpectedDwellDays = assessment.ExpectedDwellDays
		item.RemainingLeadDays = assessment.RemainingLeadDays
		item.ProjectedCompletion = assessment.ProjectedCompletion

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	slices.SortStableFunc(items, compareHealth)
	span.SetAttributes(attribute.Int("pipeline.orders", len(items)))

	return items, nil
}

func compareHealth(a, b GetPipelineHealthQueryResponse) int {
	if c := cmp.Compare(b.Health.Severity(), a.Health.Severity()); c != 0 {
		return c
	}
	switch {
	case a.DueDate.IsZero() && !b.DueDate.IsZero():
		return 1
	case !a.DueDate.IsZero() && b.DueDate.IsZero():
		return -1
	}
	if c := a.DueDate.Compare(b.DueDate); c != 0 {
		return c
	}
	return cmp.Compare(a.OrderID, b.OrderID)
}
