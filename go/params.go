package recordserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, fmt.Errorf("%s must be a positive integer, got %q", name, value))
		return 0, false
	}
	return id, true
}

// queryFloat reads a float query parameter, falling back when it is absent.
func queryFloat(c *gin.Context, name string, fallback float64) (float64, bool) {
	raw, present := c.GetQuery(name)
	if !present || strings.TrimSpace(raw) == "" {
		return fallback, true
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("%s must be a number, got %q", name, raw))
		return 0, false
	}
	return value, true
}

func requireQueryFloat(c *gin.Context, name string) (float64, bool) {
	if _, present := c.GetQuery(name); !present {
		respondError(c, http.StatusBadRequest, fmt.Errorf("%s is required", name))
		return 0, false
	}
	return queryFloat(c, name, 0)
}

// queryDateRange reads from/to as RFC 3339 timestamps or plain dates. A plain "to" date
// covers that whole day. present is false when neither bound was supplied.
func queryDateRange(c *gin.Context) (start, end time.Time, present, ok bool) {
	rawFrom, hasFrom := c.GetQuery("from")
	rawTo, hasTo := c.GetQuery("to")
	if !hasFrom && !hasTo {
		return time.Time{}, time.Time{}, false, true
	}
	if !hasFrom || !hasTo {
		respondError(c, http.StatusBadRequest, fmt.Errorf("from and to must be supplied together"))
		return time.Time{}, time.Time{}, true, false
	}
	start, _, err := parseInstant(rawFrom)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("from: %w", err))
		return time.Time{}, time.Time{}, true, false
	}
	end, dateOnly, err := parseInstant(rawTo)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("to: %w", err))
		return time.Time{}, time.Time{}, true, false
	}
	if dateOnly {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, true, true
}

func parseInstant(raw string) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %q", raw)
	}
	return t, true, nil
}
