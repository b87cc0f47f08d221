package domain

import "time"

type FlightLoad struct {
	FlightNumber   string  `json:"flight_number"`
	FreeSeats      int     `json:"free_seats"`
	SeatsCount     int     `json:"seats_count"`
	TicketsSold    int     `json:"tickets_sold"`
	TotalOccupied  int     `json:"total_occupied"`
	LoadPercentage float64 `json:"load_percentage"`
}

type ReplacementCandidate struct {
	FlightNumber        string  `json:"flight_number"`
	PlaneName           string  `json:"plane_name"`
	FreeSeats           int     `json:"free_seats"`
	SeatsCount          int     `json:"seats_count"`
	FreeSeatsPercentage float64 `json:"free_seats_percentage"`
}

type GeneralSummary struct {
	TotalFlights           int     `json:"totalFlights"`
	TotalDirectFlights     int     `json:"totalDirectFlights"`
	FlightsWithConnections int     `json:"flightsWithConnections"`
	AveragePrice           float64 `json:"averagePrice"`
	TotalCapacity          int     `json:"totalCapacity"`
	TotalFreeSeats         int     `json:"totalFreeSeats"`
	OverallLoadPercentage  float64 `json:"overallLoadPercentage"`
}

type GeneralReport struct {
	Summary               GeneralSummary         `json:"summary"`
	MostExpensiveFlight   *Flight                `json:"mostExpensiveFlight"`
	FlightsForReplacement []ReplacementCandidate `json:"flightsForReplacement"`
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: DateOf(start), End: DateOf(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, NewValidationError("endDate must not be before startDate")
	}
	return r, nil
}

// ParseDateRange parses YYYY-MM-DD bounds.
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, NewValidationError("startDate and endDate are required")
	}
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return DateRange{}, NewValidationError("invalid startDate %q, expected YYYY-MM-DD", start)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return DateRange{}, NewValidationError("invalid endDate %q, expected YYYY-MM-DD", end)
	}
	return NewDateRange(s, e)
}

// Contains reports whether t falls on a calendar day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.EndExclusive())
}

// EndExclusive is midnight after the last day of the range.
func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// Days is the inclusive number of calendar days covered.
func (r DateRange) Days() int {
	return int(r.EndExclusive().Sub(r.Start).Hours() / 24)
}

type CounterSales struct {
	CounterNumber int     `json:"counter_number"`
	TicketsSold   int     `json:"tickets_sold"`
	Revenue       float64 `json:"revenue"`
}

type FlightSales struct {
	FlightNumber string  `json:"flight_number"`
	TicketsSold  int     `json:"tickets_sold"`
	Revenue      float64 `json:"revenue"`
}

type SalesSummary struct {
	TotalTickets       int     `json:"totalTickets"`
	TotalRevenue       float64 `json:"totalRevenue"`
	AverageTicketPrice float64 `json:"averageTicketPrice"`
	DateRange          struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"dateRange"`
}

type SalesReport struct {
	Summary        SalesSummary   `json:"summary"`
	SalesByCounter []CounterSales `json:"salesByCounter"`
	SalesByFlight  []FlightSales  `json:"salesByFlight"`
}
