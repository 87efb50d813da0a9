package catalog

import (
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow"
)

// OID is the opaque, monotone identifier assigned to an entry at
// creation. OIDs are never reused within a process.
type OID uint64

var oidCounter atomic.Uint64

// nextOID allocates the next process-wide OID. A package-level function
// (not a method) because OID allocation is a catalog-wide concern, not
// scoped to one registry.
func nextOID() OID {
	return OID(oidCounter.Add(1))
}

// Entry is the closed sum type every catalog object is represented as:
// a kind tag, a common header and a kind-specific payload. Kind-specific
// behavior lives in the payload's methods (Variant below), not in
// virtual dispatch on Entry itself — the source this is ported from
// used a CatalogEntry class hierarchy; Go has no use for the
// inheritance, only for the closed set of cases it was modeling.
type Entry struct {
	OID  OID
	Kind EntryKind
	Name string

	// Schema is a lookup back-reference, not ownership: the schema
	// that owns this entry. Never traversed to build a cycle — schemas
	// hold entries, entries only look schemas up by pointer.
	Schema *Schema

	// Dependencies lists other entries this entry refers to (e.g. a
	// view's base tables, a table's default-value sequence). Never
	// forms a cycle at any observable snapshot (spec.md §3 invariant 6).
	Dependencies []*Entry

	// Comment is optional free-text documentation.
	Comment string

	// Payload is the kind-specific body: one of the *Info types below
	// (TableInfo, ViewInfo, …), matching Kind.
	Payload Variant
}

// Variant is implemented by every kind-specific payload. It is the
// narrow surface every entry kind must support, regardless of payload
// shape — the Go analogue of the source's virtual CatalogEntry methods.
type Variant interface {
	// EntryKind returns the kind this payload belongs to, used to
	// validate that Entry.Kind and Entry.Payload agree.
	EntryKind() EntryKind
}

// TableInfo is the payload for KindTable.
type TableInfo struct {
	Columns             *arrow.Schema
	NotNullConstraints  []int
	UniqueConstraints   []int
	CheckConstraints    []string
}

func (TableInfo) EntryKind() EntryKind { return KindTable }

// ViewInfo is the payload for KindView.
type ViewInfo struct {
	Columns    *arrow.Schema
	SelectText string
	Aliases    []string
}

func (ViewInfo) EntryKind() EntryKind { return KindView }

// SequenceInfo is the payload for KindSequence.
type SequenceInfo struct {
	StartValue int64
	Increment  int64
	MinValue   int64
	MaxValue   int64
	Cycle      bool
	// CurrentValue is mutated by NEXTVAL; stored by value here since
	// sequence advancement is not itself a catalog-version-bumping
	// mutation (it is a read-modify-write on sequence state, not DDL).
	CurrentValue atomic.Int64
}

func (*SequenceInfo) EntryKind() EntryKind { return KindSequence }

// TypeInfo is the payload for KindType.
type TypeInfo struct {
	// LogicalType is the Arrow representation of the user-defined
	// type's storage shape (e.g. a struct type, an enum's underlying
	// dictionary-encoded type, or the GEOMETRY extension type).
	LogicalType arrow.DataType
}

func (TypeInfo) EntryKind() EntryKind { return KindType }

// FunctionSignature describes one overload of a scalar, aggregate,
// table, pragma or copy function.
type FunctionSignature struct {
	Parameters []arrow.DataType
	ReturnType arrow.DataType
	Variadic   bool
}

// FunctionInfo is the payload shared by KindScalarFunction,
// KindAggregateFunction, KindTableFunction, KindPragmaFunction and
// KindCopyFunction. The concrete function body is out of scope (the
// spec treats built-in UDF bodies as an external collaborator);
// Implementation carries only enough to identify and describe it.
type FunctionInfo struct {
	Signatures []FunctionSignature
	// Implementation names the external collaborator that supplies
	// the function body (e.g. "builtin:date_part", "extension:h3").
	// Never executed by this package.
	Implementation string
}

func (FunctionInfo) EntryKind() EntryKind { return KindScalarFunction }

// AggregateFunctionInfo wraps FunctionInfo for the aggregate kind so
// Variant.EntryKind() stays accurate per payload type.
type AggregateFunctionInfo struct{ FunctionInfo }

func (AggregateFunctionInfo) EntryKind() EntryKind { return KindAggregateFunction }

// TableFunctionInfo wraps FunctionInfo for the table-function kind.
type TableFunctionInfo struct{ FunctionInfo }

func (TableFunctionInfo) EntryKind() EntryKind { return KindTableFunction }

// PragmaFunctionInfo wraps FunctionInfo for the pragma-function kind.
type PragmaFunctionInfo struct{ FunctionInfo }

func (PragmaFunctionInfo) EntryKind() EntryKind { return KindPragmaFunction }

// CopyFunctionInfo wraps FunctionInfo for the copy-function kind.
type CopyFunctionInfo struct{ FunctionInfo }

func (CopyFunctionInfo) EntryKind() EntryKind { return KindCopyFunction }

// MacroInfo is the payload for KindMacro: a parameterized SQL
// expression, plus optional overloads (GetAllButFirstFunction in the
// original — here just additional elements of Overloads).
type MacroInfo struct {
	Parameters []string
	// Defaults holds MessagePack-encoded default values for trailing
	// optional parameters, keyed by parameter name.
	Defaults   map[string][]byte
	Expression string
	// Overloads holds additional macro bodies sharing this entry's
	// name (DuckDB allows macro overloading by arity).
	Overloads []MacroOverload
}

// MacroOverload is one additional macro body beyond the first.
type MacroOverload struct {
	Parameters []string
	Defaults   map[string][]byte
	Expression string
}

func (MacroInfo) EntryKind() EntryKind { return KindMacro }

// CollationInfo is the payload for KindCollation.
type CollationInfo struct {
	Implementation string
	CombinableWith []string
}

func (CollationInfo) EntryKind() EntryKind { return KindCollation }

// IndexInfo is the payload for KindIndex.
type IndexInfo struct {
	TableName  string
	Columns    []string
	Unique     bool
	Expression string
}

func (IndexInfo) EntryKind() EntryKind { return KindIndex }
