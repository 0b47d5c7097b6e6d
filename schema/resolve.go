package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// RESOLVER — Heuristic role → column matching
// ============================================================================
// For each requested role, scan its candidate list in priority order; the
// first candidate present in the schema wins. Roles resolve independently,
// but no column may be claimed by two roles: a candidate already claimed is
// skipped and the scan continues down the list. No match → role unresolved.
//
// Pure function of (schema, table). No side effects, no ambient config.
// ============================================================================

// Resolve maps each requested role to a column of the schema using the
// candidate table. Unresolvable roles are simply absent from the result;
// callers enforce their own required-role policy via Assignment.Require.
func Resolve(schema []string, table Table, roles ...Role) Assignment {
	assignment := make(Assignment)
	claimed := make(map[string]bool)

	for _, role := range roles {
		cands, ok := table[role]
		if !ok {
			continue
		}
		if col, found := matchCandidate(schema, cands, claimed); found {
			assignment[role] = col
			claimed[col] = true
		}
	}

	return assignment
}

// matchCandidate returns the first candidate present in the schema and not
// yet claimed by an earlier role.
func matchCandidate(schema []string, cands Candidates, claimed map[string]bool) (string, bool) {
	for _, cand := range cands.Names {
		for _, col := range schema {
			if claimed[col] {
				continue
			}
			if col == cand || (cands.FoldCase && strings.EqualFold(col, cand)) {
				return col, true
			}
		}
	}
	return "", false
}

// ============================================================================
// ERRORS
// ============================================================================

// SchemaResolutionError reports required roles that could not be resolved.
type SchemaResolutionError struct {
	Missing []Role   // roles left unresolved
	Schema  []string // column names actually present
}

func (e *SchemaResolutionError) Error() string {
	names := make([]string, len(e.Missing))
	for i, r := range e.Missing {
		names[i] = string(r)
	}
	return fmt.Sprintf("could not resolve required column role(s) %s in schema [%s]",
		strings.Join(names, ", "), strings.Join(e.Schema, ", "))
}
