package api

import (
	"strings"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/middleware"
	"github.com/Domenick1991/airline/internal/service/booking"
	"github.com/Domenick1991/airline/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service booking.BookingUseCase
	reports reports.ReportUseCase
}

type sellTicketRequest struct {
	CounterNumber int        `json:"counter_number"`
	FlightNumber  string     `json:"flight_number"`
	FlightDate    string     `json:"flight_date"`
	SaleTime      *time.Time `json:"sale_time"`
}

type ticketResponse struct {
	ID            int64                `json:"id"`
	CounterNumber int                  `json:"counter_number"`
	FlightNumber  string               `json:"flight_number"`
	FlightDate    string               `json:"flight_date"`
	SaleTime      time.Time            `json:"sale_time"`
	CreatedAt     time.Time            `json:"created_at"`
	DepartureTime string               `json:"departure_time,omitempty"`
	Price         float64              `json:"price,omitempty"`
	Stops         []string             `json:"stops,omitempty"`
	PlaneName     string               `json:"plane_name,omitempty"`
	PlaneCategory domain.PlaneCategory `json:"plane_category,omitempty"`
}

func NewTicketHandler(service booking.BookingUseCase, reports reports.ReportUseCase) *TicketHandler {
	return &TicketHandler{service: service, reports: reports}
}

func (h *TicketHandler) Register(router *gin.RouterGroup, auth *middleware.Auth) {
	write := auth.RequirePermission(middleware.PermissionTicketsWrite)

	router.GET("", h.list)
	router.POST("", write, h.sell)
	router.GET("/:id", h.get)
	router.DELETE("/:id", write, h.cancel)
	router.GET("/flight/:flightNumber", h.byFlight)
	router.GET("/date-range", h.byFlightDate)
	router.GET("/sales-by-counter", auth.RequirePermission(middleware.PermissionReportsRead), h.salesByCounter)
}

func (h *TicketHandler) sell(c *gin.Context) {
	var req sellTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	input := booking.SellTicketInput{
		CounterNumber: req.CounterNumber,
		FlightNumber:  strings.TrimSpace(req.FlightNumber),
	}
	if req.FlightDate != "" {
		flightDate, err := time.Parse(time.DateOnly, req.FlightDate)
		if err != nil {
			writeError(c, domain.NewValidationError("invalid flight_date %q, expected YYYY-MM-DD", req.FlightDate))
			return
		}
		input.FlightDate = flightDate
	}
	if req.SaleTime != nil {
		input.SaleTime = *req.SaleTime
	}

	ticket, err := h.service.SellTicket(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, toTicketResponse(domain.TicketDetails{Ticket: *ticket}))
}

func (h *TicketHandler) cancel(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	ticket, err := h.service.CancelTicket(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, toTicketResponse(domain.TicketDetails{Ticket: *ticket}))
}

func (h *TicketHandler) list(c *gin.Context) {
	tickets, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, toTicketResponses(tickets))
}

func (h *TicketHandler) get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	ticket, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, toTicketResponse(*ticket))
}

func (h *TicketHandler) byFlight(c *gin.Context) {
	tickets, err := h.service.ListByFlight(c.Request.Context(), c.Param("flightNumber"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, toTicketResponses(tickets))
}

func (h *TicketHandler) byFlightDate(c *gin.Context) {
	dr, err := dateRange(c)
	if err != nil {
		writeError(c, err)
		return
	}
	tickets, err := h.service.ListByFlightDate(c.Request.Context(), dr)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, toTicketResponses(tickets))
}

func (h *TicketHandler) salesByCounter(c *gin.Context) {
	dr, err := dateRange(c)
	if err != nil {
		writeError(c, err)
		return
	}
	sales, err := h.reports.SalesByCounter(c.Request.Context(), dr)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, sales)
}

func toTicketResponse(t domain.TicketDetails) ticketResponse {
	return ticketResponse{
		ID:            t.ID,
		CounterNumber: t.CounterNumber,
		FlightNumber:  t.FlightNumber,
		FlightDate:    t.FlightDate.Format(time.DateOnly),
		SaleTime:      t.SaleTime,
		CreatedAt:     t.CreatedAt,
		DepartureTime: t.DepartureTime,
		Price:         t.Price,
		Stops:         t.Stops,
		PlaneName:     t.PlaneName,
		PlaneCategory: t.PlaneCategory,
	}
}

func toTicketResponses(tickets []domain.TicketDetails) []ticketResponse {
	out := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResponse(t))
	}
	return out
}
