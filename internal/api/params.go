package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"LottoSync/internal/model"

	"github.com/gin-gonic/gin"
)

const dateOnly = "2006-01-02"

// parseTimeParam RFC3339 or YYYY-MM-DD (UTC); a date-only upper bound covers the whole day
func parseTimeParam(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse %q", model.ErrInvalidDateRange, value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// parseRange nil when neither bound is given; a missing "to" means now
func parseRange(c *gin.Context, now time.Time) (*model.DateRange, error) {
	from, err := parseTimeParam(c.Query("from"), false)
	if err != nil {
		return nil, err
	}
	to, err := parseTimeParam(c.Query("to"), true)
	if err != nil {
		return nil, err
	}
	switch {
	case from == nil && to == nil:
		return nil, nil
	case from == nil:
		return nil, fmt.Errorf("%w: \"to\" given without \"from\"", model.ErrInvalidDateRange)
	case to == nil:
		to = &now
	}
	rng := &model.DateRange{From: *from, To: *to}
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	return rng, nil
}

// parseTypes comma separated lottery types
func parseTypes(csv string) ([]model.LottoType, error) {
	var out []model.LottoType
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		t, err := model.ParseLottoType(part)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// errorStatus 400 for input errors, 500 otherwise
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrUnknownLottoType),
		errors.Is(err, model.ErrNotConfigured),
		errors.Is(err, model.ErrInvalidDateRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
