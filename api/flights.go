package api

import (
	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/middleware"
	"github.com/Domenick1991/airline/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, auth *middleware.Auth) {
	write := auth.RequirePermission(middleware.PermissionFlightsWrite)

	router.GET("", h.list)
	router.POST("", write, h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", write, h.update)
	router.DELETE("/:id", write, h.delete)
	router.GET("/plane/:planeId", h.byPlane)
	router.GET("/search/nearest", h.nearest)
	router.GET("/search/non-stop", h.nonStop)
	router.GET("/search/most-expensive", h.mostExpensive)
	router.GET("/search/replacement-candidates", h.replacementCandidates)
	router.GET("/load/:flightNumber", h.load)
	router.GET("/check-seats/:flightNumber", h.checkSeats)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var input domain.FlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, bindError(err))
		return
	}
	flight, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	var input domain.FlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, bindError(err))
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	message(c, "flight deleted")
}

func (h *FlightHandler) byPlane(c *gin.Context) {
	planeID, err := pathID(c, "planeId")
	if err != nil {
		writeError(c, err)
		return
	}
	flights, err := h.service.ListByPlane(c.Request.Context(), planeID)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, flights)
}

func (h *FlightHandler) nearest(c *gin.Context) {
	minFreeSeats, err := queryInt(c, "minFreeSeats", 1)
	if err != nil {
		writeError(c, err)
		return
	}
	flight, err := h.service.FindNearest(c.Request.Context(), c.Query("destination"), minFreeSeats)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, flight)
}

func (h *FlightHandler) nonStop(c *gin.Context) {
	flights, err := h.service.NonStop(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, flights)
}

func (h *FlightHandler) mostExpensive(c *gin.Context) {
	flight, err := h.service.MostExpensive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, flight)
}

func (h *FlightHandler) replacementCandidates(c *gin.Context) {
	threshold, err := queryFloat(c, "minFreeSeatsPercentage", flights.DefaultReplacementThreshold)
	if err != nil {
		writeError(c, err)
		return
	}
	candidates, err := h.service.ReplacementCandidates(c.Request.Context(), threshold)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, candidates)
}

func (h *FlightHandler) load(c *gin.Context) {
	dr, err := dateRange(c)
	if err != nil {
		writeError(c, err)
		return
	}
	load, err := h.service.Load(c.Request.Context(), c.Param("flightNumber"), dr)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, load)
}

func (h *FlightHandler) checkSeats(c *gin.Context) {
	seats, err := h.service.CheckSeats(c.Request.Context(), c.Param("flightNumber"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, seats)
}
