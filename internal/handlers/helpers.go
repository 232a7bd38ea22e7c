package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "moneyhub/internal/errors"
	"moneyhub/internal/logger"
	"moneyhub/internal/middleware"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID parses a UUID path parameter and returns it in canonical form.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id.String(), nil
}

// parseOptionalID normalizes an optional id from a request body or query.
// Empty values mean "no id".
func parseOptionalID(raw *string, field string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+field)
	}
	s := id.String()
	return &s, nil
}

const dateLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	dateLayout,
}

// parseFlexibleTime accepts RFC3339, a zone-less timestamp or a bare date.
// Zone-less values are read as UTC.
func parseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, use RFC3339 or YYYY-MM-DD", s)
}

// parseEndTime parses an inclusive upper bound. A bare date covers the whole
// day, down to the microsecond precision of stored timestamps.
func parseEndTime(s string) (time.Time, error) {
	t, err := parseFlexibleTime(s)
	if err != nil {
		return t, err
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err == nil {
		t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
	}
	return t, nil
}

// transactionDate resolves the date of a new transaction. Missing or
// unparsable values fall back to now rather than failing the request.
func transactionDate(raw *string) time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return time.Now()
	}
	t, err := parseFlexibleTime(*raw)
	if err != nil {
		logger.Get().Debugw("unparsable transaction date, using now", "date", *raw)
		return time.Now()
	}
	return t
}

// respondWithError records err on the context and stops the chain.
// middleware.ErrorHandler writes the response.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
