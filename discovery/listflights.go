package discovery

import (
	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/internal/serialize"
)

// ListFlights sends one compressed Arrow IPC FlightInfo per attached
// catalog, generalizing the teacher's single-catalog ListFlights
// (flight/listflights.go) to this module's multicatalog manager.
// Criteria is ignored, as in the teacher.
func (s *Server) ListFlights(criteria *flight.Criteria, stream flight.FlightService_ListFlightsServer) error {
	ctx := stream.Context()
	tx := catalog.NewTxnState()
	defer tx.Commit()

	for _, cat := range s.Manager.List() {
		data, err := serialize.SerializeCatalog(ctx, cat, tx, s.Allocator)
		if err != nil {
			s.Logger.Error("failed to serialize catalog", "catalog", cat.Name, "error", err)
			return status.Errorf(codes.Internal, "failed to serialize catalog %q: %v", cat.Name, err)
		}

		compressed, err := serialize.CompressCatalog(data)
		if err != nil {
			s.Logger.Error("failed to compress catalog", "catalog", cat.Name, "error", err)
			return status.Errorf(codes.Internal, "failed to compress catalog %q: %v", cat.Name, err)
		}

		info := &flight.FlightInfo{
			FlightDescriptor: &flight.FlightDescriptor{
				Type: flight.DescriptorCMD,
				Cmd:  []byte(cat.Name),
			},
			Endpoint: []*flight.FlightEndpoint{
				{Ticket: &flight.Ticket{Ticket: compressed}},
			},
			TotalRecords: -1,
			TotalBytes:   int64(len(compressed)),
		}
		if err := stream.Send(info); err != nil {
			return status.Errorf(codes.Internal, "failed to send flight info: %v", err)
		}
	}
	return nil
}
