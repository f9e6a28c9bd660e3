package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/delivery/api/response"
	"marketplace/internal/delivery/api/validator"
	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/util"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the API process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// callerIdentity returns the identity set by the auth middleware. A missing
// identity is the zero value, which every use case rejects as unauthenticated.
func callerIdentity(c echo.Context) entity.Identity {
	identity, _ := deliverycontext.GetIdentity(c)

	return identity
}

func parseIDParam(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

func invalidID(c echo.Context, name string) error {
	return response.BadRequest(c, "INVALID_ID", "Invalid "+name)
}

func pageFrom(c echo.Context) util.Pagination {
	return util.ParsePagination(c.QueryParam("page"), c.QueryParam("per_page"))
}

func listOptions(p util.Pagination) repository.ListOptions {
	return repository.ListOptions{Limit: p.Limit(), Offset: p.Offset()}
}

// bindRequest binds and validates req. When it returns false the error
// response has already been written and its result must be returned.
func bindRequest(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BadRequest(c, "INVALID_INPUT", "Invalid request body")
	}

	if err := c.Validate(req); err != nil {
		return false, response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Input validation failed", validator.FieldErrors(err))
	}

	return true, nil
}

func optionalUUIDQuery(c echo.Context, name string) (*uuid.UUID, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}

	return &id, true
}

func optionalBoolQuery(c echo.Context, name string) (*bool, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, true
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}

	return &value, true
}

func orderStatusQuery(c echo.Context) (*entity.OrderStatus, bool) {
	raw := c.QueryParam("status")
	if raw == "" {
		return nil, true
	}

	status := entity.OrderStatus(raw)
	if !status.IsValid() {
		return nil, false
	}

	return &status, true
}

func daysQuery(c echo.Context) int {
	days, _ := strconv.Atoi(c.QueryParam("days"))

	return days
}
