package reports

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/service/flights"
)

type ReportUseCase interface {
	General(ctx context.Context) (*domain.GeneralReport, error)
	FlightLoad(ctx context.Context, dr domain.DateRange) ([]domain.FlightLoad, error)
	Sales(ctx context.Context, dr domain.DateRange) (*domain.SalesReport, error)
	SalesByCounter(ctx context.Context, dr domain.DateRange) ([]domain.CounterSales, error)
}

// FlightSource is the part of the flight query engine reports are built from.
type FlightSource interface {
	List(ctx context.Context) ([]domain.Flight, error)
	NonStop(ctx context.Context) ([]domain.Flight, error)
	MostExpensive(ctx context.Context) (*domain.Flight, error)
	ReplacementCandidates(ctx context.Context, minFreeSeatsPercentage float64) ([]domain.ReplacementCandidate, error)
	Loads(ctx context.Context, dr domain.DateRange) ([]domain.FlightLoad, error)
}

type TicketSource interface {
	ListSoldBetween(ctx context.Context, dr domain.DateRange) ([]domain.TicketDetails, error)
}

type ReportService struct {
	flights FlightSource
	tickets TicketSource
	log     *slog.Logger
}

func NewReportService(flights FlightSource, tickets TicketSource, log *slog.Logger) *ReportService {
	return &ReportService{flights: flights, tickets: tickets, log: log}
}

// General summarizes the whole schedule. Values are read without locks and
// may trail concurrent sales.
func (s *ReportService) General(ctx context.Context) (*domain.GeneralReport, error) {
	all, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	nonStop, err := s.flights.NonStop(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.GeneralReport{
		Summary: summarize(all, len(nonStop)),
	}

	report.MostExpensiveFlight, err = s.flights.MostExpensive(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	report.FlightsForReplacement, err = s.flights.ReplacementCandidates(ctx, flights.DefaultReplacementThreshold)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) FlightLoad(ctx context.Context, dr domain.DateRange) ([]domain.FlightLoad, error) {
	return s.flights.Loads(ctx, dr)
}

// Sales groups tickets sold in the range by counter and by flight. Revenue
// uses the current price of each ticket's flight.
func (s *ReportService) Sales(ctx context.Context, dr domain.DateRange) (*domain.SalesReport, error) {
	tickets, err := s.tickets.ListSoldBetween(ctx, dr)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, t := range tickets {
		total += cents(t.Price)
	}

	report := &domain.SalesReport{
		SalesByCounter: byCounter(tickets),
		SalesByFlight:  byFlight(tickets),
	}
	report.Summary.TotalTickets = len(tickets)
	report.Summary.TotalRevenue = fromCents(total)
	if len(tickets) > 0 {
		report.Summary.AverageTicketPrice = flights.Round2(float64(total) / 100 / float64(len(tickets)))
	}
	report.Summary.DateRange.StartDate = dr.Start.Format(time.DateOnly)
	report.Summary.DateRange.EndDate = dr.End.Format(time.DateOnly)

	s.log.Debug("sales report built", "tickets", len(tickets), "start", report.Summary.DateRange.StartDate, "end", report.Summary.DateRange.EndDate)
	return report, nil
}

func (s *ReportService) SalesByCounter(ctx context.Context, dr domain.DateRange) ([]domain.CounterSales, error) {
	tickets, err := s.tickets.ListSoldBetween(ctx, dr)
	if err != nil {
		return nil, err
	}
	return byCounter(tickets), nil
}

func summarize(all []domain.Flight, nonStop int) domain.GeneralSummary {
	summary := domain.GeneralSummary{
		TotalFlights:           len(all),
		TotalDirectFlights:     nonStop,
		FlightsWithConnections: len(all) - nonStop,
	}

	var prices int64
	for _, f := range all {
		prices += cents(f.Price)
		summary.TotalCapacity += f.SeatsCount
		summary.TotalFreeSeats += f.FreeSeats
	}
	if len(all) > 0 {
		summary.AveragePrice = flights.Round2(float64(prices) / 100 / float64(len(all)))
	}
	if summary.TotalCapacity > 0 {
		occupied := summary.TotalCapacity - summary.TotalFreeSeats
		summary.OverallLoadPercentage = flights.Round2(float64(occupied) / float64(summary.TotalCapacity) * 100)
	}
	return summary
}

func byCounter(tickets []domain.TicketDetails) []domain.CounterSales {
	type acc struct {
		sold    int
		revenue int64
	}
	groups := make(map[int]*acc)
	for _, t := range tickets {
		g, ok := groups[t.CounterNumber]
		if !ok {
			g = &acc{}
			groups[t.CounterNumber] = g
		}
		g.sold++
		g.revenue += cents(t.Price)
	}

	out := make([]domain.CounterSales, 0, len(groups))
	for counter, g := range groups {
		out = append(out, domain.CounterSales{
			CounterNumber: counter,
			TicketsSold:   g.sold,
			Revenue:       fromCents(g.revenue),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].CounterNumber < out[j].CounterNumber
	})
	return out
}

func byFlight(tickets []domain.TicketDetails) []domain.FlightSales {
	type acc struct {
		sold    int
		revenue int64
	}
	groups := make(map[string]*acc)
	for _, t := range tickets {
		g, ok := groups[t.FlightNumber]
		if !ok {
			g = &acc{}
			groups[t.FlightNumber] = g
		}
		g.sold++
		g.revenue += cents(t.Price)
	}

	out := make([]domain.FlightSales, 0, len(groups))
	for number, g := range groups {
		out = append(out, domain.FlightSales{
			FlightNumber: number,
			TicketsSold:  g.sold,
			Revenue:      fromCents(g.revenue),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].FlightNumber < out[j].FlightNumber
	})
	return out
}

// prices are NUMERIC(10,2); summing in cents keeps totals exact
func cents(price float64) int64 {
	return int64(math.Round(price * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}

var _ ReportUseCase = (*ReportService)(nil)
