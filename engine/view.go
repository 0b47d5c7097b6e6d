package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access
// ============================================================================
// The engine never mutates consumer data. Filtering and sampling produce
// derived views (index lists into the parent) — the original record set
// stays intact, so both pipelines can share one load.
//
// Implementations:
//   SliceView — wraps []Record from the CSV helper
//   SubView   — filtered/sampled subset (indices into parent)
// ============================================================================

// RecordView provides indexed, read-only access to a tabular record set.
// Field returns ok=false for a null (absent or empty) cell.
type RecordView interface {
	Len() int
	Columns() []string
	Field(index int, column string) (string, bool)
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	columns []string
	records []Record
}

// NewSliceView creates a RecordView over records. columns is the schema in
// header order; all records are expected to share it.
func NewSliceView(columns []string, records []Record) RecordView {
	return &SliceView{columns: columns, records: records}
}

func (v *SliceView) Len() int          { return len(v.records) }
func (v *SliceView) Columns() []string { return v.columns }

func (v *SliceView) Field(i int, column string) (string, bool) {
	if i < 0 || i >= len(v.records) {
		return "", false
	}
	val, ok := v.records[i][column]
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// ============================================================================
// SUB VIEW — derived subset (zero-copy)
// ============================================================================

// SubView is a filtered or sampled subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int          { return len(v.indices) }
func (v *SubView) Columns() []string { return v.parent.Columns() }

func (v *SubView) Field(i int, column string) (string, bool) {
	if i < 0 || i >= len(v.indices) {
		return "", false
	}
	return v.parent.Field(v.indices[i], column)
}
