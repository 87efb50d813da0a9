package resolver

import (
	"sort"
	"strings"
)

// extensionEntry is one row of a static, lexicographically-sorted
// name→extension table (spec.md §6).
type extensionEntry struct {
	name      string
	extension string
}

// extensionFunctions is a small, representative slice of DuckDB's
// EXTENSION_FUNCTIONS table (duckdb/main/extension_entries.hpp, named
// in original_source's #include list but not itself retrieved — see
// DESIGN.md). Kept sorted by name for binary search.
var extensionFunctions = sortedExtensionTable([]extensionEntry{
	{"h3_latlng", "h3"},
	{"h3_cell_to_latlng", "h3"},
	{"icu_calendar_names", "icu"},
	{"pg_catalog", "postgres_scanner"},
	{"read_parquet", "parquet"},
	{"st_area", "spatial"},
	{"st_distance", "spatial"},
	{"st_geomfromtext", "spatial"},
})

// extensionSettings is a small representative slice of DuckDB's
// EXTENSION_SETTINGS table.
var extensionSettings = sortedExtensionTable([]extensionEntry{
	{"azure_storage_connection_string", "azure"},
	{"http_timeout", "httpfs"},
	{"s3_region", "httpfs"},
})

func sortedExtensionTable(rows []extensionEntry) []extensionEntry {
	out := append([]extensionEntry(nil), rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// lookupExtension binary-searches table for name, case-insensitively.
// Returns "" if absent.
func lookupExtension(table []extensionEntry, name string) string {
	lower := strings.ToLower(name)
	i := sort.Search(len(table), func(i int) bool { return table[i].name >= lower })
	if i < len(table) && table[i].name == lower {
		return table[i].extension
	}
	return ""
}
