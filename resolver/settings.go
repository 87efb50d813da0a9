package resolver

import (
	"fmt"
	"strings"

	"github.com/heron-db/catalog/catalog"
)

// knownSettings is the enumerated set of configuration options known
// at compile time: a small representative slice of DuckDB's built-in
// SETTINGS table, lowercased to match lookupExtension's convention.
// Only these names are candidates for the Levenshtein "did you mean";
// extension-registered settings are matched by exact name only and
// are never offered as a suggestion.
var knownSettings = []string{
	"access_mode",
	"checkpoint_threshold",
	"default_collation",
	"enable_progress_bar",
	"max_memory",
	"memory_limit",
	"search_path",
	"temp_directory",
	"threads",
}

// ResolveSetting validates a configuration parameter name the way
// ResolveEntry validates an entry name: exact hit against the known
// settings returns nil; otherwise the extension registry's settings
// table (resolver/extensions.go's extensionSettings) is consulted as
// the suggestion engine's third layer applied to settings rather than
// entries (spec.md §4.8 layer 3: "or the lookup came from settings,
// consult the static extension registry"); failing that, the closest
// known setting by Levenshtein distance is offered as a "did you
// mean", matching the `'unrecognized configuration parameter "<n>"'
// + candidates` message of spec.md §6.
func ResolveSetting(name string) error {
	lower := strings.ToLower(name)
	for _, s := range knownSettings {
		if s == lower {
			return nil
		}
	}

	if ext := lookupExtension(extensionSettings, name); ext != "" {
		return fmt.Errorf("%s: %w", settingExtensionHintMessage(name, ext), catalog.ErrNotFound)
	}

	msg := fmt.Sprintf("unrecognized configuration parameter %q", name)
	if candidate, ok := closestKnownSetting(lower); ok {
		msg += fmt.Sprintf("\nDid you mean %q?", candidate)
	}
	return fmt.Errorf("%s: %w", msg, catalog.ErrNotFound)
}

// settingExtensionHintMessage is extensionHintMessage's settings
// counterpart: settings have no EntryKind to prefix the message with,
// so "Configuration parameter" stands in for it.
func settingExtensionHintMessage(name, extension string) string {
	return fmt.Sprintf(
		"Configuration parameter %q is not in the catalog, but it exists in the %s extension.\n\nTo install and load the extension, run:\nINSTALL %s;\nLOAD %s;",
		name, extension, extension, extension,
	)
}

// closestKnownSetting finds the known setting closest to lower by
// case-insensitive Levenshtein distance, under the same per-name cap
// suggestionCap uses for entries. Ties are broken by knownSettings'
// declared order.
func closestKnownSetting(lower string) (string, bool) {
	distanceCap := suggestionCap(lower)
	best := ""
	bestDistance := distanceCap + 1
	for _, s := range knownSettings {
		d := catalog.Levenshtein(lower, s)
		if d <= distanceCap && d < bestDistance {
			best, bestDistance = s, d
		}
	}
	return best, best != ""
}
