package inventory_service_api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/service/booking"
	"github.com/Domenick1991/airline/internal/service/flights"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server implements InventoryServiceServer on top of the flight and booking
// services.
type Server struct {
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	log      *slog.Logger
}

func NewServer(flights flights.FlightUseCase, bookings booking.BookingUseCase, log *slog.Logger) *Server {
	return &Server{flights: flights, bookings: bookings, log: log}
}

func (s *Server) CheckSeats(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	seats, err := s.flights.CheckSeats(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return structpb.NewStruct(map[string]interface{}{
		"flight_number":  seats.FlightNumber,
		"free_seats":     seats.FreeSeats,
		"has_free_seats": seats.HasFreeSeats,
	})
}

func (s *Server) SellTicket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := sellInput(req)
	if err != nil {
		return nil, s.toStatus(err)
	}

	ticket, err := s.bookings.SellTicket(ctx, input)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return structpb.NewStruct(map[string]interface{}{
		"id":             ticket.ID,
		"counter_number": ticket.CounterNumber,
		"flight_number":  ticket.FlightNumber,
		"flight_date":    ticket.FlightDate.Format(time.DateOnly),
		"sale_time":      ticket.SaleTime.Format(time.RFC3339),
	})
}

func (s *Server) CancelTicket(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if _, err := s.bookings.CancelTicket(ctx, req.GetValue()); err != nil {
		return nil, s.toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func sellInput(req *structpb.Struct) (booking.SellTicketInput, error) {
	fields := req.GetFields()
	input := booking.SellTicketInput{
		CounterNumber: int(fields["counter_number"].GetNumberValue()),
		FlightNumber:  fields["flight_number"].GetStringValue(),
	}

	if raw := fields["flight_date"].GetStringValue(); raw != "" {
		flightDate, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return input, domain.NewValidationError("invalid flight_date %q, expected YYYY-MM-DD", raw)
		}
		input.FlightDate = flightDate
	}
	if raw := fields["sale_time"].GetStringValue(); raw != "" {
		saleTime, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return input, domain.NewValidationError("invalid sale_time %q, expected RFC 3339", raw)
		}
		input.SaleTime = saleTime
	}
	return input, nil
}

func (s *Server) toStatus(err error) error {
	switch {
	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrCapacityExhausted):
		return status.Error(codes.ResourceExhausted, err.Error())
	case domain.IsConflict(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.log.Error("inventory call failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

// LoggingInterceptor logs every unary call with its outcome.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{"method", info.FullMethod, "code", code.String(), "latency", time.Since(start)}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			attrs = append(attrs, "trace_id", sc.TraceID().String())
		}
		switch code {
		case codes.OK:
			log.Info("grpc call", attrs...)
		case codes.Internal, codes.Unavailable, codes.Unknown:
			log.Error("grpc call failed", append(attrs, "error", err)...)
		default:
			log.Warn("grpc call rejected", append(attrs, "error", err)...)
		}
		return resp, err
	}
}

var _ InventoryServiceServer = (*Server)(nil)
