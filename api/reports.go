package api

import (
	"github.com/Domenick1991/airline/internal/middleware"
	"github.com/Domenick1991/airline/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup, auth *middleware.Auth) {
	router.Use(auth.RequirePermission(middleware.PermissionReportsRead))

	router.GET("/general", h.general)
	router.GET("/flight-load", h.flightLoad)
	router.GET("/sales", h.sales)
}

func (h *ReportHandler) general(c *gin.Context) {
	report, err := h.service.General(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, report)
}

func (h *ReportHandler) flightLoad(c *gin.Context) {
	dr, err := dateRange(c)
	if err != nil {
		writeError(c, err)
		return
	}
	loads, err := h.service.FlightLoad(c.Request.Context(), dr)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, loads)
}

func (h *ReportHandler) sales(c *gin.Context) {
	dr, err := dateRange(c)
	if err != nil {
		writeError(c, err)
		return
	}
	report, err := h.service.Sales(c.Request.Context(), dr)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, report)
}
