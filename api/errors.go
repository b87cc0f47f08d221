package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgInvalidTextRepresentation = "22P02"

// errorStatus maps domain errors to HTTP codes. Anything unknown is a 500.
func errorStatus(err error) int {
	var pgErr *pgconn.PgError
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStorageUnavailable), pgconn.SafeToRetry(err), pgconn.Timeout(err):
		return http.StatusServiceUnavailable
	case errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := errorStatus(err)
	switch status {
	case http.StatusInternalServerError:
		fail(c, status, "internal server error")
	case http.StatusServiceUnavailable:
		fail(c, status, "service temporarily unavailable")
	default:
		fail(c, status, err.Error())
	}
}
