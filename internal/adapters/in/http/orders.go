package http

import (
	"net/http"
	"strings"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders - creates a draft order and issues its id.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	orderDate, err := s.dateOrToday(req.OrderDate)
	if err != nil {
		return s.writeError(c, err)
	}

	var dueDate kernel.Date
	if req.DueDate != "" {
		if dueDate, err = kernel.ParseDate(req.DueDate); err != nil {
			return s.writeError(c, err)
		}
	}

	priority := order.DefaultPriorityScore
	if req.PriorityScore != nil {
		priority = *req.PriorityScore
	}

	cmd, err := commands.NewCreateOrderCommand(orderDate, req.Department, order.Details{
		ExternalOrderNumber: req.ExternalOrderNumber,
		DueDate:             dueDate,
		StockModelID:        req.StockModelID,
		PriorityScore:       priority,
		NeedsAdjustment:     req.NeedsAdjustment,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	id, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateOrderResponse{ID: id})
}

// FinalizeOrder handles POST /api/v1/orders/:id/finalize.
func (s *Server) FinalizeOrder(c echo.Context) error {
	cmd, err := commands.NewFinalizeOrderCommand(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return s.noContent(c, s.handlers.FinalizeOrder.Handle(c.Request().Context(), cmd))
}

// MoveOrder handles POST /api/v1/orders/:id/move.
func (s *Server) MoveOrder(c echo.Context) error {
	var req MoveOrderRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	on, err := s.dateOrToday(req.On)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewMoveOrderCommand(c.Param("id"), req.Department, on)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.noContent(c, s.handlers.MoveOrder.Handle(c.Request().Context(), cmd))
}

// EscalateOrder handles POST /api/v1/orders/:id/escalate.
func (s *Server) EscalateOrder(c echo.Context) error {
	cmd, err := commands.NewEscalateOrderCommand(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return s.noContent(c, s.handlers.EscalateOrder.Handle(c.Request().Context(), cmd))
}

// ShipOrder handles POST /api/v1/orders/:id/ship.
func (s *Server) ShipOrder(c echo.Context) error {
	cmd, err := commands.NewShipOrderCommand(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return s.noContent(c, s.handlers.ShipOrder.Handle(c.Request().Context(), cmd))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	cmd, err := commands.NewCancelOrderCommand(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return s.noContent(c, s.handlers.CancelOrder.Handle(c.Request().Context(), cmd))
}

// ClassifyStockModel handles PUT /api/v1/orders/:id/stock-model.
func (s *Server) ClassifyStockModel(c echo.Context) error {
	var req ClassifyStockModelRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewClassifyStockModelCommand(c.Param("id"), req.StockModelID)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.noContent(c, s.handlers.ClassifyStockModel.Handle(c.Request().Context(), cmd))
}

// RequireAdjustment handles PUT /api/v1/orders/:id/adjustment.
func (s *Server) RequireAdjustment(c echo.Context) error {
	var req RequireAdjustmentRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewRequireAdjustmentCommand(c.Param("id"), *req.Needed)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.noContent(c, s.handlers.RequireAdjustment.Handle(c.Request().Context(), cmd))
}

// AllocateSerial handles POST /api/v1/serials.
func (s *Server) AllocateSerial(c echo.Context) error {
	var req AllocateSerialRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewAllocateSerialCommand(req.CustomerCode, req.Year)
	if err != nil {
		return s.writeError(c, err)
	}

	serial, err := s.handlers.AllocateSerial.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, AllocateSerialResponse{Serial: serial})
}

// bind decodes and validates the request body.
func (s *Server) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return c.Validate(req)
}

func (s *Server) noContent(c echo.Context, err error) error {
	if err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) dateOrToday(value string) (kernel.Date, error) {
	if value = strings.TrimSpace(value); value == "" {
		return s.today(), nil
	}
	return kernel.ParseDate(value)
}
