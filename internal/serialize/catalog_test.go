package serialize

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/heron-db/catalog/catalog"
)

func buildTestCatalog(t *testing.T) (*catalog.Catalog, *catalog.TxnState) {
	t.Helper()
	cat := catalog.NewCatalog("db", false, false)
	tx := catalog.NewTxnState()
	s, err := cat.CreateSchema("main", catalog.OnConflictError)
	if err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	cols := arrow.NewSchema([]arrow.Field{{Name: "id", Type: arrow.PrimitiveTypes.Int64}}, nil)
	if _, err := s.CreateTable(tx, "widgets", cols, catalog.OnConflictError); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	return cat, tx
}

func TestSerializeCatalog(t *testing.T) {
	cat, tx := buildTestCatalog(t)

	data, err := SerializeCatalog(context.Background(), cat, tx, memory.DefaultAllocator)
	if err != nil {
		t.Fatalf("SerializeCatalog: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty serialized data")
	}
}

func TestSerializeEmptyCatalog(t *testing.T) {
	cat := catalog.NewCatalog("empty", false, false)
	tx := catalog.NewTxnState()

	data, err := SerializeCatalog(context.Background(), cat, tx, memory.DefaultAllocator)
	if err != nil {
		t.Fatalf("SerializeCatalog on empty catalog: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty IPC stream even for an empty catalog")
	}
}

func TestSerializeRespectsContextCancellation(t *testing.T) {
	cat, tx := buildTestCatalog(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := SerializeCatalog(ctx, cat, tx, memory.DefaultAllocator); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestCompressCatalogRoundTripsThroughZstd(t *testing.T) {
	cat, tx := buildTestCatalog(t)

	ipcData, err := SerializeCatalog(context.Background(), cat, tx, memory.DefaultAllocator)
	if err != nil {
		t.Fatalf("SerializeCatalog: %v", err)
	}
	compressed, err := CompressCatalog(ipcData)
	if err != nil {
		t.Fatalf("CompressCatalog: %v", err)
	}
	if len(compressed) == 0 {
		t.Fatal("expected non-empty compressed data")
	}

	decompressor, err := NewDecompressor()
	if err != nil {
		t.Fatalf("NewDecompressor: %v", err)
	}
	defer decompressor.Close()

	decompressed, err := decompressor.Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(decompressed) != string(ipcData) {
		t.Error("decompressed data does not match original IPC stream")
	}
}
