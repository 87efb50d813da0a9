package catalog

import (
	"encoding/json"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
)

func TestGeometryExtensionType(t *testing.T) {
	extType := NewGeometryExtensionType()

	if extType.ExtensionName() != "geoarrow.wkb" {
		t.Errorf("expected extension name 'geoarrow.wkb', got '%s'", extType.ExtensionName())
	}
	if !arrow.TypeEqual(extType.StorageType(), arrow.BinaryTypes.Binary) {
		t.Errorf("expected Binary storage type, got %s", extType.StorageType())
	}
	if extType.String() != "extension<geoarrow.wkb>" {
		t.Errorf("expected 'extension<geoarrow.wkb>', got '%s'", extType.String())
	}
}

func TestGeometryExtensionType_Deserialize(t *testing.T) {
	extType := NewGeometryExtensionType()

	tests := []struct {
		name        string
		storageType arrow.DataType
		wantErr     bool
	}{
		{"Binary storage", arrow.BinaryTypes.Binary, false},
		{"LargeBinary storage", arrow.BinaryTypes.LargeBinary, false},
		{"Invalid storage type", arrow.PrimitiveTypes.Int64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := extType.Deserialize(tt.storageType, "")
			if (err != nil) != tt.wantErr {
				t.Errorf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("Deserialize() returned nil result without error")
			}
		})
	}
}

func TestGeometryExtensionType_Equals(t *testing.T) {
	a := NewGeometryExtensionType()
	b := NewGeometryExtensionType()
	if !a.ExtensionEquals(b) {
		t.Error("two geometry extension types over the same storage should be equal")
	}
	if a.ExtensionEquals(nil) {
		t.Error("a geometry extension type should not equal a nil other")
	}
}

func TestNewGeometryField(t *testing.T) {
	field := NewGeometryField("location", true, 4326, "Point")

	if field.Name != "location" {
		t.Errorf("expected field name 'location', got '%s'", field.Name)
	}
	if !field.Nullable {
		t.Error("expected field to be nullable")
	}
	if field.Type.ID() != arrow.EXTENSION {
		t.Errorf("expected EXTENSION type, got %s", field.Type.ID())
	}

	extName, _ := field.Metadata.GetValue("ARROW:extension:name")
	if extName != "geoarrow.wkb" {
		t.Errorf("expected extension name 'geoarrow.wkb', got '%s'", extName)
	}
	srid, _ := field.Metadata.GetValue("srid")
	if srid != "4326" {
		t.Errorf("expected SRID '4326', got '%s'", srid)
	}
	geomType, _ := field.Metadata.GetValue("geometry_type")
	if geomType != "Point" {
		t.Errorf("expected geometry_type 'Point', got '%s'", geomType)
	}
}

func TestGeometryMetadataRoundTrip(t *testing.T) {
	field := NewGeometryField("geom", true, 4326, "Polygon")

	extMetadataStr, _ := field.Metadata.GetValue("ARROW:extension:metadata")
	if extMetadataStr == "" {
		t.Fatal("extension metadata is empty")
	}

	var metadata GeometryMetadata
	if err := json.Unmarshal([]byte(extMetadataStr), &metadata); err != nil {
		t.Fatalf("failed to unmarshal metadata: %v", err)
	}

	if metadata.CRS == nil || metadata.CRS.ID == nil {
		t.Fatal("expected CRS with ID in metadata")
	}
	if metadata.CRS.ID.Authority != "EPSG" {
		t.Errorf("expected EPSG authority, got %s", metadata.CRS.ID.Authority)
	}
	if metadata.CRS.ID.Code != 4326 {
		t.Errorf("expected EPSG:4326, got %d", metadata.CRS.ID.Code)
	}
	if metadata.Encoding != "WKB" {
		t.Errorf("expected WKB encoding, got %s", metadata.Encoding)
	}
	if len(metadata.GeometryTypes) != 1 || metadata.GeometryTypes[0] != "Polygon" {
		t.Errorf("expected ['Polygon'], got %v", metadata.GeometryTypes)
	}
}

// TestCreateTableWithGeometryColumn exercises NewGeometryField the way
// an embedding caller would: building an arrow.Schema for CreateTable
// with a spatial column, then confirming the entry's payload carries
// the extension type and CRS metadata back out.
func TestCreateTableWithGeometryColumn(t *testing.T) {
	s := NewSchema("main", NewCatalog("db", false, false))
	tx := NewTxnState()

	columns := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		NewGeometryField("location", true, 4326, "Point"),
	}, nil)

	entry, err := s.CreateTable(tx, "stops", columns, OnConflictError)
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	table, ok := entry.Payload.(*TableInfo)
	if !ok {
		t.Fatalf("expected TableInfo payload, got %T", entry.Payload)
	}
	geomField := table.Columns.Field(1)
	if _, ok := geomField.Type.(*GeometryExtensionType); !ok {
		t.Fatalf("expected geometry column to keep its extension type, got %T", geomField.Type)
	}
	if srid, _ := geomField.Metadata.GetValue("srid"); srid != "4326" {
		t.Errorf("expected srid metadata to survive CreateTable, got %q", srid)
	}
}
