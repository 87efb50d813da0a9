package dbmanager

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/heron-db/catalog/catalog"
)

// Bootstrap populates the system catalog's main schema from a real
// DuckDB instance's built-in function and type tables, once, at
// process startup — grounded on the teacher's
// tests/integration/integration_test.go blank-import pattern
// (`_ "github.com/duckdb/duckdb-go/v2"` + database/sql) rather than
// hand-transcribing DuckDB's built-in function table by hand.
func (m *Manager) Bootstrap(logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return fmt.Errorf("open bootstrap duckdb instance: %w", err)
	}
	defer db.Close()

	endBootstrap := m.system.BeginBootstrap()
	defer endBootstrap()

	sysMain, err := m.system.CreateSchema(catalog.DefaultSchemaName, catalog.OnConflictIgnore)
	if err != nil {
		return fmt.Errorf("create system.main: %w", err)
	}
	tx := catalog.NewTxnState()
	defer tx.Commit()

	if err := bootstrapFunctions(db, sysMain, tx, logger); err != nil {
		return err
	}
	if err := bootstrapTypes(db, sysMain, tx, logger); err != nil {
		return err
	}
	return bootstrapGeometry(sysMain, tx)
}

func bootstrapFunctions(db *sql.DB, sysMain *catalog.Schema, tx *catalog.TxnState, logger *slog.Logger) error {
	rows, err := db.Query(`SELECT function_name, function_type, return_type FROM duckdb_functions()`)
	if err != nil {
		return fmt.Errorf("query duckdb_functions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, functionType, returnType string
		if err := rows.Scan(&name, &functionType, &returnType); err != nil {
			return fmt.Errorf("scan duckdb_functions row: %w", err)
		}
		if name == "" {
			continue
		}
		sig := catalog.FunctionSignature{ReturnType: arrowTypeForDuckDBType(returnType)}
		if err := addOrMergeFunction(sysMain, tx, kindForFunctionType(functionType), name, sig, "builtin:"+name); err != nil {
			logger.Warn("bootstrap: skipping function", "name", name, "type", functionType, "err", err)
		}
	}
	return rows.Err()
}

func kindForFunctionType(functionType string) catalog.EntryKind {
	switch functionType {
	case "aggregate":
		return catalog.KindAggregateFunction
	case "table", "table_macro":
		return catalog.KindTableFunction
	case "pragma":
		return catalog.KindPragmaFunction
	default:
		return catalog.KindScalarFunction
	}
}

// addOrMergeFunction creates the entry on first sight, or appends an
// additional overload signature on subsequent sightings — DuckDB's
// duckdb_functions() yields one row per overload, and our closed
// entry model stores all overloads of one name as one entry.
func addOrMergeFunction(sysMain *catalog.Schema, tx *catalog.TxnState, kind catalog.EntryKind, name string, sig catalog.FunctionSignature, impl string) error {
	if _, err := sysMain.Get(tx, kind, name); err != nil {
		return createFunctionEntry(sysMain, tx, kind, name, sig, impl)
	}
	_, err := sysMain.AlterEntry(tx, kind, name, func(e *catalog.Entry) (*catalog.Entry, error) {
		info := functionInfoOf(e)
		info.Signatures = append(info.Signatures, sig)
		out := *e
		out.Payload = info
		return &out, nil
	})
	return err
}

func createFunctionEntry(sysMain *catalog.Schema, tx *catalog.TxnState, kind catalog.EntryKind, name string, sig catalog.FunctionSignature, impl string) error {
	sigs := []catalog.FunctionSignature{sig}
	var err error
	switch kind {
	case catalog.KindAggregateFunction:
		_, err = sysMain.CreateAggregateFunction(tx, name, sigs, impl, catalog.OnConflictError)
	case catalog.KindTableFunction:
		_, err = sysMain.CreateTableFunction(tx, name, sigs, impl, catalog.OnConflictError)
	case catalog.KindPragmaFunction:
		_, err = sysMain.CreatePragmaFunction(tx, name, sigs, impl, catalog.OnConflictError)
	default:
		_, err = sysMain.CreateScalarFunction(tx, name, sigs, impl, catalog.OnConflictError)
	}
	return err
}

// functionInfoOf extracts the embedded catalog.FunctionInfo regardless
// of which function-kind wrapper the entry's payload uses.
func functionInfoOf(e *catalog.Entry) *catalog.FunctionInfo {
	switch p := e.Payload.(type) {
	case *catalog.FunctionInfo:
		return p
	case *catalog.AggregateFunctionInfo:
		return &p.FunctionInfo
	case *catalog.TableFunctionInfo:
		return &p.FunctionInfo
	case *catalog.PragmaFunctionInfo:
		return &p.FunctionInfo
	case *catalog.CopyFunctionInfo:
		return &p.FunctionInfo
	default:
		return &catalog.FunctionInfo{}
	}
}

func bootstrapTypes(db *sql.DB, sysMain *catalog.Schema, tx *catalog.TxnState, logger *slog.Logger) error {
	rows, err := db.Query(`SELECT DISTINCT type_name FROM duckdb_types()`)
	if err != nil {
		return fmt.Errorf("query duckdb_types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan duckdb_types row: %w", err)
		}
		if name == "" {
			continue
		}
		logical := arrowTypeForDuckDBType(name)
		if _, err := sysMain.CreateType(tx, name, logical, catalog.OnConflictIgnore); err != nil {
			logger.Warn("bootstrap: skipping type", "name", name, "err", err)
		}
	}
	return rows.Err()
}

// bootstrapGeometry registers the GEOMETRY type backed by the
// GeoArrow WKB extension type (catalog/geometry.go), so spatial
// columns have a real Entry in the system catalog rather than being
// recognized only by name.
func bootstrapGeometry(sysMain *catalog.Schema, tx *catalog.TxnState) error {
	_, err := sysMain.CreateType(tx, "GEOMETRY", catalog.NewGeometryExtensionType(), catalog.OnConflictIgnore)
	return err
}

// arrowTypeForDuckDBType maps a handful of DuckDB's built-in type
// names to their closest Arrow logical type. DuckDB types with no
// direct Arrow analogue fall back to a string representation — the
// system catalog's GetType only needs type *identity*, not a
// bit-exact physical layout (function-body execution is out of
// scope).
func arrowTypeForDuckDBType(name string) arrow.DataType {
	switch name {
	case "BIGINT", "HUGEINT":
		return arrow.PrimitiveTypes.Int64
	case "INTEGER":
		return arrow.PrimitiveTypes.Int32
	case "SMALLINT":
		return arrow.PrimitiveTypes.Int16
	case "TINYINT":
		return arrow.PrimitiveTypes.Int8
	case "DOUBLE":
		return arrow.PrimitiveTypes.Float64
	case "FLOAT":
		return arrow.PrimitiveTypes.Float32
	case "BOOLEAN":
		return arrow.FixedWidthTypes.Boolean
	case "DATE":
		return arrow.FixedWidthTypes.Date32
	case "TIMESTAMP":
		return arrow.FixedWidthTypes.Timestamp_us
	case "BLOB":
		return arrow.BinaryTypes.Binary
	default:
		return arrow.BinaryTypes.String
	}
}
