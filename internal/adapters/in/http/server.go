package http

import (
	"context"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/schedule"
	"production/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CommandHandler handles a command that returns nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler handles a command or query that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers are the use cases the API exposes.
type Handlers struct {
	CreateOrder        ResultHandler[commands.CreateOrderCommand, string]
	FinalizeOrder      CommandHandler[commands.FinalizeOrderCommand]
	MoveOrder          CommandHandler[commands.MoveOrderCommand]
	EscalateOrder      CommandHandler[commands.EscalateOrderCommand]
	ShipOrder          CommandHandler[commands.ShipOrderCommand]
	CancelOrder        CommandHandler[commands.CancelOrderCommand]
	ClassifyStockModel CommandHandler[commands.ClassifyStockModelCommand]
	RequireAdjustment  CommandHandler[commands.RequireAdjustmentCommand]
	AllocateSerial     ResultHandler[commands.AllocateSerialCommand, string]
	RunScheduler       ResultHandler[commands.RunSchedulerCommand, commands.SchedulePassResult]
	ReassignOrder      ResultHandler[commands.ReassignOrderCommand, *schedule.Assignment]
	GetSchedule        ResultHandler[queries.GetScheduleQuery, []queries.GetScheduleQueryResponse]
	GetPipelineHealth  ResultHandler[queries.GetPipelineHealthQuery, []queries.GetPipelineHealthQueryResponse]
}

// Server maps HTTP requests onto application use cases.
type Server struct {
	handlers Handlers
	today    func() kernel.Date
	logger   *zap.Logger
}

// NewServer creates the server. today supplies the plant's calendar day for
// requests that omit a date.
func NewServer(handlers Handlers, today func() kernel.Date, log *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		today:    today,
		logger:   logger.Component(log, "http"),
	}
}

// RegisterRoutes mounts the API and the health probe on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/finalize", s.FinalizeOrder)
	api.POST("/orders/:id/move", s.MoveOrder)
	api.POST("/orders/:id/escalate", s.EscalateOrder)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.PUT("/orders/:id/stock-model", s.ClassifyStockModel)
	api.PUT("/orders/:id/adjustment", s.RequireAdjustment)

	api.POST("/serials", s.AllocateSerial)

	api.POST("/schedule/run", s.RunScheduler)
	api.GET("/schedule", s.GetSchedule)
	api.PUT("/schedule/:orderId", s.ReassignOrder)

	api.GET("/pipeline", s.GetPipelineHealth)
}
