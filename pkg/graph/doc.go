// Package graph defines the value domain exchanged over the GraphBin wire
// format: graph entities (Vertex, Edge, Property, VertexProperty, Path) and
// the scalar shapes that have no native Go representation (Date, Set).
//
// Plain scalars travel as native Go types: bool, int8, int16, int32,
// int64/int, float32, float64, string, uuid.UUID, and time.Time.
// Collections travel as []any, Set, and map[any]any.
//
// Values are plain data. None of the types in this package synchronize
// access; a value handed to an encoder must not be mutated until the
// encode completes.
package graph
