package engine

// ============================================================================
// AGGREGATE PROJECTION
// ============================================================================
// The choropleth renderer wants exactly two columns: key and value. The
// projection preserves row order and passes duplicate keys through — no
// deduplication, no summing. Callers wanting last-write-wins or summed
// semantics must pre-aggregate.
// ============================================================================

// ProjectAggregates extracts (key, value) pairs from the view. Rows with a
// null key or a non-numeric value cell are silently excluded, matching the
// coordinate-filter policy of the point pipeline.
func ProjectAggregates(view RecordView, keyCol, valueCol string) []KeyValue {
	pairs := make([]KeyValue, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		key, ok := view.Field(i, keyCol)
		if !ok {
			continue
		}
		value, ok := fieldFloat(view, i, valueCol)
		if !ok {
			continue
		}
		pairs = append(pairs, KeyValue{Key: key, Value: value})
	}
	return pairs
}
