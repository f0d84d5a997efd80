// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed 1-indexed page query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// parsePagination extracts page and page_size query parameters. Out-of-range
// values are left to the service layer to normalize.
func parsePagination(c *fiber.Ctx) Pagination {
	return Pagination{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 10),
	}
}

// parsePostFilter extracts the listing filter from query parameters.
// On a malformed date it writes a 400 response and returns errResponseWritten.
func parsePostFilter(c *fiber.Ctx) (repository.PostFilter, error) {
	filter := repository.PostFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	}

	from, _, err := parseDateQuery(c, "from")
	if err != nil {
		return filter, err
	}
	filter.From = from

	to, bare, err := parseDateQuery(c, "to")
	if err != nil {
		return filter, err
	}
	// A bare upper-bound date means the whole day, so the range stays
	// inclusive of posts written during it.
	if to != nil && bare {
		eod := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &eod
	}
	filter.To = to

	return filter, nil
}

// parseDateQuery accepts RFC 3339 timestamps or bare dates (2006-01-02) and
// reports which form was given.
func parseDateQuery(c *fiber.Ctx, param string) (*time.Time, bool, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, false, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true, nil
	}
	_ = models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError("Invalid "+param+" date"))
	return nil, false, errResponseWritten
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}
