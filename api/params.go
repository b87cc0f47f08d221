package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("invalid %s", name)
	}
	return id, nil
}

func dateRange(c *gin.Context) (domain.DateRange, error) {
	return domain.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("%s must be an integer", name)
	}
	return v, nil
}

func queryFloat(c *gin.Context, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewValidationError("%s must be a number", name)
	}
	return v, nil
}

func bindError(err error) error {
	return domain.NewValidationError("invalid request body: %s", err.Error())
}
