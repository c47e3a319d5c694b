package queries

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/schedule"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetScheduleQueryHandler reads the production schedule for a date range,
// ordered by date, fixture and order id.
type GetScheduleQueryHandler struct {
	db *gorm.DB
}

func NewGetScheduleQueryHandler(db *gorm.DB) GetScheduleQueryHandler {
	return GetScheduleQueryHandler{db: db}
}

func (h GetScheduleQueryHandler) Handle(ctx context.Context, query GetScheduleQuery) ([]GetScheduleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"a.id",
			"a.order_id",
			"o.external_order_number",
			"o.stock_model_id",
			"o.status",
			"a.fixture_id",
			"a.scheduled_date",
			"a.kind",
			"a.manual_override",
		).
		From("schedule_assignments a").
		Join("orders o ON o.id = a.order_id").
		Where(sq.GtOrEq{"a.scheduled_date": query.From().Time()}).
		Where(sq.LtOrEq{"a.scheduled_date": query.To().Time()}).
		OrderBy("a.scheduled_date", "a.fixture_id", "a.order_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetScheduleQueryResponse, 0)
	for rows.Next() {
		var (
			item           GetScheduleQueryResponse
			id             uuid.UUID
			externalNumber null.String
			stockModelID   null.String
			status         int
			date           time.Time
			kind           int
		)

		err = rows.Scan(
			&id,
			&item.OrderID,
			&externalNumber,
			&stockModelID,
			&status,
			&item.FixtureID,
			&date,
			&kind,
			&item.ManualOverride,
		)
		if err != nil {
			return nil, err
		}

		assignmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.AssignmentID = assignmentID
		item.ExternalOrderNumber = externalNumber.String
		item.StockModelID = stockModelID.String
		item.OrderStatus = order.Status(status)
		item.Date = kernel.DateOf(date)
		item.Kind = schedule.Kind(kind)

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
