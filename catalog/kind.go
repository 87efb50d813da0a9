package catalog

// EntryKind is the closed set of object kinds the catalog names.
// Two entries of different kinds may share a name within one schema
// (disjoint namespaces per kind, per spec.md §3 invariant 1); two
// entries of the *same* kind may not.
type EntryKind int

const (
	KindSchema EntryKind = iota
	KindTable
	KindView
	KindSequence
	KindType
	KindScalarFunction
	KindAggregateFunction
	KindTableFunction
	KindPragmaFunction
	KindCopyFunction
	KindMacro
	KindCollation
	KindIndex

	numEntryKinds
)

// String renders the kind the way it appears in user-visible error
// messages ("Table with name ... does not exist!").
func (k EntryKind) String() string {
	switch k {
	case KindSchema:
		return "Schema"
	case KindTable:
		return "Table"
	case KindView:
		return "View"
	case KindSequence:
		return "Sequence"
	case KindType:
		return "Type"
	case KindScalarFunction:
		return "Scalar Function"
	case KindAggregateFunction:
		return "Aggregate Function"
	case KindTableFunction:
		return "Table Function"
	case KindPragmaFunction:
		return "Pragma Function"
	case KindCopyFunction:
		return "Copy Function"
	case KindMacro:
		return "Macro"
	case KindCollation:
		return "Collation"
	case KindIndex:
		return "Index"
	default:
		return "Entry"
	}
}

// ParseEntryKind is String's inverse, for callers decoding a kind off
// the wire (the discovery service's resolve_entry action).
func ParseEntryKind(s string) (EntryKind, bool) {
	for k := EntryKind(0); k < numEntryKinds; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// IsFunctionKind reports whether a kind is one of the function kinds
// the suggestion engine's extension lookup applies to (spec.md §4.8.3).
func (k EntryKind) IsFunctionKind() bool {
	switch k {
	case KindScalarFunction, KindAggregateFunction, KindTableFunction:
		return true
	default:
		return false
	}
}
