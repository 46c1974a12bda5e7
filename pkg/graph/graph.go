package graph

import (
	"fmt"
	"strings"
)

// Set is a collection with set semantics on the wire. Element uniqueness
// is the producer's responsibility; the codec preserves order and does not
// deduplicate.
type Set []any

// Vertex is a graph vertex. ID may be any encodable value; servers
// commonly use int64 or uuid.UUID identifiers.
type Vertex struct {
	ID         any
	Label      string
	Properties map[string]any
}

// String returns a compact display form, e.g. v[42].
func (v *Vertex) String() string {
	return fmt.Sprintf("v[%v]", v.ID)
}

// Edge is a directed graph edge between two vertices, carried with the
// identifiers and labels of both endpoints so a decoded edge is usable
// without further lookups.
type Edge struct {
	ID             any
	Label          string
	OutVertexID    any
	OutVertexLabel string
	InVertexID     any
	InVertexLabel  string
	Properties     map[string]any
}

// String returns a compact display form, e.g. e[7][1-knows->2].
func (e *Edge) String() string {
	return fmt.Sprintf("e[%v][%v-%s->%v]", e.ID, e.OutVertexID, e.Label, e.InVertexID)
}

// Property is a single key/value pair attached to an edge or
// vertex property.
type Property struct {
	Key   string
	Value any
}

// String returns a compact display form, e.g. p[weight->0.5].
func (p *Property) String() string {
	return fmt.Sprintf("p[%s->%v]", p.Key, p.Value)
}

// VertexProperty is a vertex property value with its own identity and
// optional meta-properties.
type VertexProperty struct {
	ID         any
	Label      string
	Value      any
	Properties map[string]any
}

// String returns a compact display form, e.g. vp[name->alice].
func (vp *VertexProperty) String() string {
	return fmt.Sprintf("vp[%s->%v]", vp.Label, vp.Value)
}

// Path is the result of a traversal: the sequence of objects visited and,
// per step, the as-labels that applied at that step. Labels and Objects
// always have the same length.
type Path struct {
	Labels  [][]string
	Objects []any
}

// String returns the visited objects in order, e.g. path[v[1], e[7], v[2]].
func (p *Path) String() string {
	parts := make([]string, len(p.Objects))
	for i, o := range p.Objects {
		parts[i] = fmt.Sprintf("%v", o)
	}
	return "path[" + strings.Join(parts, ", ") + "]"
}
