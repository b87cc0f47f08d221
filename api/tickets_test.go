package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sellContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/tickets", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestTicketHandler_sell(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewTicketHandler(mockService, &MockReportUseCase{})

	c, w := sellContext(`{"counter_number":3,"flight_number":"SU100","flight_date":"2024-05-01","sale_time":"2024-04-30T10:00:00Z"}`)

	saleTime := time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC)
	input := booking.SellTicketInput{
		CounterNumber: 3,
		FlightNumber:  "SU100",
		FlightDate:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		SaleTime:      saleTime,
	}
	mockService.On("SellTicket", c.Request.Context(), input).Return(&domain.Ticket{
		ID:            42,
		CounterNumber: 3,
		FlightNumber:  "SU100",
		FlightDate:    input.FlightDate,
		SaleTime:      saleTime,
		CreatedAt:     saleTime,
	}, nil)

	handler.sell(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":42,"counter_number":3,"flight_number":"SU100","flight_date":"2024-05-01","sale_time":"2024-04-30T10:00:00Z","created_at":"2024-04-30T10:00:00Z"}}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestTicketHandler_sell_errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "sold out",
			body:       `{"counter_number":1,"flight_number":"SU100","flight_date":"2099-01-01"}`,
			err:        domain.ErrCapacityExhausted,
			wantStatus: http.StatusConflict,
			wantMsg:    "no free seats available on this flight",
		},
		{
			name:       "unknown flight",
			body:       `{"counter_number":1,"flight_number":"XX999","flight_date":"2099-01-01"}`,
			err:        domain.ErrFlightNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "flight not found",
		},
		{
			name:       "bad date",
			body:       `{"counter_number":1,"flight_number":"SU100","flight_date":"01.01.2099"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    `invalid flight_date "01.01.2099", expected YYYY-MM-DD`,
		},
		{
			name:       "malformed json",
			body:       `{"counter_number":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewTicketHandler(mockService, &MockReportUseCase{})
			if tt.err != nil {
				mockService.On("SellTicket", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			c, w := sellContext(tt.body)
			handler.sell(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var response envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.False(t, response.Success)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, response.Message)
			}
			if tt.err == nil {
				mockService.AssertNotCalled(t, "SellTicket", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestTicketHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewTicketHandler(mockService, &MockReportUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Request = httptest.NewRequest("DELETE", "/api/tickets/42", nil)

	mockService.On("CancelTicket", c.Request.Context(), int64(42)).Return(&domain.Ticket{ID: 42, FlightNumber: "SU100"}, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":42`)
	mockService.AssertExpectations(t)
}

func TestTicketHandler_cancel_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewTicketHandler(mockService, &MockReportUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("DELETE", "/api/tickets/7", nil)

	mockService.On("CancelTicket", mock.Anything, int64(7)).Return(nil, domain.ErrTicketNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"ticket not found"}`, w.Body.String())
}

func TestTicketHandler_byFlightDate(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewTicketHandler(mockService, &MockReportUseCase{})
	dr, _ := domain.ParseDateRange("2024-05-01", "2024-05-02")

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/tickets/date-range?startDate=2024-05-01&endDate=2024-05-02", nil)

	mockService.On("ListByFlightDate", mock.Anything, dr).Return([]domain.TicketDetails{
		{Ticket: domain.Ticket{ID: 1, FlightNumber: "SU100", FlightDate: dr.Start}, PlaneName: "Boeing 737", Price: 5000},
	}, nil)

	handler.byFlightDate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"plane_name":"Boeing 737"`)
	assert.Contains(t, w.Body.String(), `"flight_date":"2024-05-01"`)
}

func TestTicketHandler_salesByCounter(t *testing.T) {
	reports := &MockReportUseCase{}
	handler := NewTicketHandler(&MockBookingUseCase{}, reports)
	dr, _ := domain.ParseDateRange("2024-05-01", "2024-05-31")

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/tickets/sales-by-counter?startDate=2024-05-01&endDate=2024-05-31", nil)

	reports.On("SalesByCounter", mock.Anything, dr).Return([]domain.CounterSales{{CounterNumber: 1, TicketsSold: 2, Revenue: 10000}}, nil)

	handler.salesByCounter(c)

	assert.JSONEq(t, `{"success":true,"data":[{"counter_number":1,"tickets_sold":2,"revenue":10000}]}`, w.Body.String())
}
