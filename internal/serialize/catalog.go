// Package serialize provides catalog snapshot serialization to Arrow
// IPC format. Used by the discovery service's ListFlights RPC to
// describe every attached catalog's entries in one compressed payload.
package serialize

import (
	"bytes"
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/heron-db/catalog/catalog"
)

// EntriesSchema is the Arrow schema snapshot rows are encoded against:
// one row per live entry across every schema of the given catalog,
// widened from the teacher's table-only GetTables shape to carry kind
// so all thirteen entry kinds share one wire format.
var EntriesSchema = arrow.NewSchema([]arrow.Field{
	{Name: "catalog_name", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "schema_name", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "entry_name", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "entry_kind", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "comment", Type: arrow.BinaryTypes.String, Nullable: true},
}, nil)

// SerializeCatalog serializes every live entry of cat, as visible to
// tx, into an Arrow IPC stream against EntriesSchema.
func SerializeCatalog(ctx context.Context, cat *catalog.Catalog, tx *catalog.TxnState, allocator memory.Allocator) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := array.NewRecordBuilder(allocator, EntriesSchema)
	defer builder.Release()

	catalogNameBuilder := builder.Field(0).(*array.StringBuilder)
	schemaNameBuilder := builder.Field(1).(*array.StringBuilder)
	entryNameBuilder := builder.Field(2).(*array.StringBuilder)
	entryKindBuilder := builder.Field(3).(*array.StringBuilder)
	commentBuilder := builder.Field(4).(*array.StringBuilder)

	for _, schema := range cat.GetAllSchemas() {
		for _, reg := range schema.AllRegistries() {
			for _, entry := range reg.Scan(tx) {
				catalogNameBuilder.Append(cat.Name)
				schemaNameBuilder.Append(schema.Name)
				entryNameBuilder.Append(entry.Name)
				entryKindBuilder.Append(entry.Kind.String())
				if entry.Comment == "" {
					commentBuilder.AppendNull()
				} else {
					commentBuilder.Append(entry.Comment)
				}
			}
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(EntriesSchema), ipc.WithAllocator(allocator))
	if err := writer.Write(record); err != nil {
		return nil, fmt.Errorf("write IPC record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close IPC writer: %w", err)
	}

	return buf.Bytes(), nil
}

// CompressCatalog compresses a serialized catalog snapshot with
// ZStandard (see compress.go).
func CompressCatalog(data []byte) ([]byte, error) {
	compressor, err := NewCompressor()
	if err != nil {
		return nil, err
	}
	defer compressor.Close()

	return compressor.Compress(data)
}
