package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// ERRORS — deterministic data-shape failures
// ============================================================================
// These are fatal to their pipeline but never to the process: the caller
// isolates pipelines, so a point failure does not abort a choropleth run.
// No retries — the same input will fail the same way.
// ============================================================================

// EmptyDatasetError reports that every row was filtered out, leaving
// nothing to center on or plot. An empty map is never a success.
type EmptyDatasetError struct {
	Stage string // which step emptied the set, e.g. "coordinate filter"
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no records remain after %s", e.Stage)
}

// UnmatchedKeysError reports tabular keys with no matching feature under
// the resolved join binding. Only produced in strict-join mode; the default
// best-effort join leaves mismatches silently unshaded.
type UnmatchedKeysError struct {
	Property string   // geometry property the keys were matched against
	Keys     []string // unmatched tabular keys, first occurrence order
}

func (e *UnmatchedKeysError) Error() string {
	return fmt.Sprintf("%d key(s) matched no feature on properties.%s: %s",
		len(e.Keys), e.Property, strings.Join(e.Keys, ", "))
}
