package inventory_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "airline.inventory.v1.InventoryService"

	checkSeatsMethod   = "/" + ServiceName + "/CheckSeats"
	sellTicketMethod   = "/" + ServiceName + "/SellTicket"
	cancelTicketMethod = "/" + ServiceName + "/CancelTicket"
)

// InventoryServiceServer is the counter-facing seat inventory API. Messages
// are protobuf well-known types, so no generated stubs are needed.
type InventoryServiceServer interface {
	CheckSeats(ctx context.Context, flightNumber *wrapperspb.StringValue) (*structpb.Struct, error)
	SellTicket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CancelTicket(ctx context.Context, ticketID *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryServiceDesc, srv)
}

var InventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CheckSeats", Handler: checkSeatsHandler},
		{MethodName: "SellTicket", Handler: sellTicketHandler},
		{MethodName: "CancelTicket", Handler: cancelTicketHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "airline/inventory/v1/inventory.proto",
}

func checkSeatsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).CheckSeats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: checkSeatsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InventoryServiceServer).CheckSeats(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func sellTicketHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).SellTicket(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: sellTicketMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InventoryServiceServer).SellTicket(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func cancelTicketHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).CancelTicket(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: cancelTicketMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InventoryServiceServer).CancelTicket(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls InventoryService over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) CheckSeats(ctx context.Context, flightNumber string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, checkSeatsMethod, wrapperspb.String(flightNumber), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SellTicket(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, sellTicketMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelTicket(ctx context.Context, ticketID int64, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, cancelTicketMethod, wrapperspb.Int64(ticketID), new(emptypb.Empty), opts...)
}
