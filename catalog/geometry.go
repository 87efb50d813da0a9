package catalog

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// GeometryExtensionType implements Arrow extension type for geospatial data.
// Geometries are stored as WKB (Well-Known Binary) in Binary columns.
// Compatible with DuckDB spatial extension and GeoParquet format.
type GeometryExtensionType struct {
	arrow.ExtensionBase
}

// NewGeometryExtensionType creates a new geometry extension type. The
// system catalog registers one GEOMETRY type backed by this at
// bootstrap (dbmanager.bootstrapGeometry), so a GEOMETRY column
// resolves to a real Entry rather than a magic type name.
func NewGeometryExtensionType() *GeometryExtensionType {
	return &GeometryExtensionType{
		ExtensionBase: arrow.ExtensionBase{
			Storage: arrow.BinaryTypes.Binary,
		},
	}
}

// ArrayType returns the Go type for geometry arrays.
func (g *GeometryExtensionType) ArrayType() reflect.Type {
	return reflect.TypeOf((*array.Binary)(nil))
}

// ExtensionName returns the extension type identifier.
// Uses "geoarrow.wkb" for maximum compatibility with GeoArrow and DuckDB.
func (g *GeometryExtensionType) ExtensionName() string {
	return "geoarrow.wkb"
}

// String returns a string representation of the type.
func (g *GeometryExtensionType) String() string {
	return "extension<geoarrow.wkb>"
}

// Serialize returns the extension metadata (empty for basic WKB).
func (g *GeometryExtensionType) Serialize() string {
	return ""
}

// Deserialize creates a geometry extension type from metadata.
func (g *GeometryExtensionType) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if !arrow.TypeEqual(storageType, arrow.BinaryTypes.Binary) &&
		!arrow.TypeEqual(storageType, arrow.BinaryTypes.LargeBinary) {
		return nil, fmt.Errorf("invalid storage type for geometry: %s (expected Binary or LargeBinary)", storageType)
	}
	return &GeometryExtensionType{
		ExtensionBase: arrow.ExtensionBase{Storage: storageType},
	}, nil
}

// ExtensionEquals checks equality with another extension type.
func (g *GeometryExtensionType) ExtensionEquals(other arrow.ExtensionType) bool {
	otherGeom, ok := other.(*GeometryExtensionType)
	if !ok {
		return false
	}
	return arrow.TypeEqual(g.StorageType(), otherGeom.StorageType())
}

// GeometryMetadata represents CRS and encoding information for geometry columns.
// Stored in Arrow field metadata as JSON.
type GeometryMetadata struct {
	// CRS is the coordinate reference system (PROJJSON format).
	CRS *CRS `json:"crs,omitempty"`

	// Encoding is the geometry encoding format (default: "WKB").
	Encoding string `json:"encoding,omitempty"`

	// GeometryTypes lists allowed geometry types (e.g., ["Point", "Polygon"]).
	// If nil/empty, any geometry type is allowed.
	GeometryTypes []string `json:"geometry_types,omitempty"`

	// Edges indicates edge interpretation ("planar" or "spherical").
	Edges string `json:"edges,omitempty"`

	// BBox is the bounding box [minx, miny, maxx, maxy].
	BBox []float64 `json:"bbox,omitempty"`
}

// CRS represents a coordinate reference system in PROJJSON format.
// Simplified structure for common use cases.
type CRS struct {
	// ID identifies the CRS (e.g., EPSG code).
	ID *CRSID `json:"id,omitempty"`

	// Name is human-readable CRS name.
	Name string `json:"name,omitempty"`

	// Type is the CRS type (e.g., "GeographicCRS", "ProjectedCRS").
	Type string `json:"type,omitempty"`
}

// CRSID represents a CRS identifier (typically EPSG code).
type CRSID struct {
	Authority string `json:"authority"` // e.g., "EPSG"
	Code      int    `json:"code"`      // e.g., 4326
}

// NewGeometryField builds the arrow.Field a caller passes to
// Schema.CreateTable for a spatial column: the geometry extension
// type plus CRS/encoding metadata a catalog-only module has no other
// way to attach to a column, since there is no DDL parser here to
// translate a "GEOMETRY(Point, 4326)" column type into Arrow types —
// callers embedding this catalog build the arrow.Schema themselves and
// reach for this constructor for any column typed GEOMETRY.
func NewGeometryField(name string, nullable bool, srid int, geomType string) arrow.Field {
	extType := NewGeometryExtensionType()

	metadata := &GeometryMetadata{
		CRS: &CRS{
			ID: &CRSID{
				Authority: "EPSG",
				Code:      srid,
			},
		},
		Encoding: "WKB",
	}

	if geomType != "" && geomType != "GEOMETRY" {
		metadata.GeometryTypes = []string{geomType}
	}

	metadataJSON, _ := json.Marshal(metadata)

	fieldMetadata := arrow.MetadataFrom(map[string]string{
		"ARROW:extension:name":     extType.ExtensionName(),
		"ARROW:extension:metadata": string(metadataJSON),
		"srid":                     fmt.Sprintf("%d", srid),
		"geometry_type":            geomType,
		"dimension":                "XY",
	})

	return arrow.Field{
		Name:     name,
		Type:     extType,
		Nullable: nullable,
		Metadata: fieldMetadata,
	}
}

// RegisterGeometryExtension registers the geometry extension type with Arrow.
// Should be called once during package initialization.
func RegisterGeometryExtension() {
	_ = arrow.RegisterExtensionType(&GeometryExtensionType{
		ExtensionBase: arrow.ExtensionBase{
			Storage: arrow.BinaryTypes.Binary,
		},
	})
}

func init() {
	RegisterGeometryExtension()
}
