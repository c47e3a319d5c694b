package http

import (
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// DefaultScheduleWindowDays is the span of GET /api/v1/schedule without "to".
const DefaultScheduleWindowDays = 14

// RunScheduler handles POST /api/v1/schedule/run - runs one scheduling pass.
func (s *Server) RunScheduler(c echo.Context) error {
	var req RunSchedulerRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	asOf, err := s.dateOrToday(req.AsOf)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewRunSchedulerCommand(asOf)
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.handlers.RunScheduler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toSchedulePassResponse(result))
}

// GetSchedule handles GET /api/v1/schedule?from=&to= - lists assignments,
// from today for DefaultScheduleWindowDays by default.
func (s *Server) GetSchedule(c echo.Context) error {
	from, err := s.dateOrToday(c.QueryParam("from"))
	if err != nil {
		return s.writeError(c, err)
	}

	to := from.AddDays(DefaultScheduleWindowDays - 1)
	if raw := c.QueryParam("to"); raw != "" {
		if to, err = kernel.ParseDate(raw); err != nil {
			return s.writeError(c, err)
		}
	}

	query, err := queries.NewGetScheduleQuery(from, to)
	if err != nil {
		return s.writeError(c, err)
	}

	items, err := s.handlers.GetSchedule.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]ScheduleEntry, 0, len(items))
	for _, item := range items {
		response = append(response, toScheduleEntry(item))
	}
	return c.JSON(http.StatusOK, response)
}

// ReassignOrder handles PUT /api/v1/schedule/:orderId - manual placement.
func (s *Server) ReassignOrder(c echo.Context) error {
	var req ReassignOrderRequest
	if err := s.bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	date, err := kernel.ParseDate(req.Date)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewReassignOrderCommand(c.Param("orderId"), req.FixtureID, date, req.Override, s.today())
	if err != nil {
		return s.writeError(c, err)
	}

	assignment, err := s.handlers.ReassignOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toAssignment(assignment))
}

// GetPipelineHealth handles GET /api/v1/pipeline?department= - schedule
// health of every active order, worst first.
func (s *Server) GetPipelineHealth(c echo.Context) error {
	query, err := queries.NewGetPipelineHealthQuery(s.today(), c.QueryParam("department"))
	if err != nil {
		return s.writeError(c, err)
	}

	items, err := s.handlers.GetPipelineHealth.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]PipelineItem, 0, len(items))
	for _, item := range items {
		response = append(response, toPipelineItem(item))
	}
	return c.JSON(http.StatusOK, response)
}
