// Package inspect renders decoded GraphBin values as human-readable text.
// It is used by the graphbin-inspect tool and is handy in tests and debug
// logging.
package inspect

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/graphbin-protocol/graphbin-go/pkg/graph"
)

// Formatter formats decoded values as an indented tree.
type Formatter struct {
	// ShowTypes prefixes each node with its type name.
	ShowTypes bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int
}

// NewFormatter creates a Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowTypes:   true,
		IndentWidth: 2,
	}
}

// Format renders a decoded value tree as multi-line text.
func (f *Formatter) Format(v any) string {
	var sb strings.Builder
	f.write(&sb, v, 0)
	return sb.String()
}

func (f *Formatter) indent(depth int) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width)
}

func (f *Formatter) label(name, rest string) string {
	if f.ShowTypes {
		return name + rest
	}
	return strings.TrimPrefix(rest, " ")
}

func (f *Formatter) write(sb *strings.Builder, v any, depth int) {
	pad := f.indent(depth)

	switch x := v.(type) {
	case nil:
		fmt.Fprintf(sb, "%snull\n", pad)
	case bool:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Boolean", fmt.Sprintf(" %t", x)))
	case int8:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Int8", fmt.Sprintf(" %d", x)))
	case int16:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Int16", fmt.Sprintf(" %d", x)))
	case int32:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Int32", fmt.Sprintf(" %d", x)))
	case int64:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Int64", fmt.Sprintf(" %d", x)))
	case float32:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Float32", fmt.Sprintf(" %g", x)))
	case float64:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Float64", fmt.Sprintf(" %g", x)))
	case string:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("String", fmt.Sprintf(" %q", x)))
	case uuid.UUID:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("UUID", " "+x.String()))
	case time.Time:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Timestamp", " "+x.Format(time.RFC3339Nano)))
	case graph.Date:
		fmt.Fprintf(sb, "%s%s\n", pad, f.label("Date", " "+x.String()))
	case graph.Set:
		fmt.Fprintf(sb, "%sSet (%d elements)\n", pad, len(x))
		for _, e := range x {
			f.write(sb, e, depth+1)
		}
	case []any:
		fmt.Fprintf(sb, "%sList (%d elements)\n", pad, len(x))
		for _, e := range x {
			f.write(sb, e, depth+1)
		}
	case map[any]any:
		fmt.Fprintf(sb, "%sMap (%d entries)\n", pad, len(x))
		for _, k := range sortedKeys(x) {
			fmt.Fprintf(sb, "%skey:\n", f.indent(depth+1))
			f.write(sb, k, depth+2)
			fmt.Fprintf(sb, "%svalue:\n", f.indent(depth+1))
			f.write(sb, x[k], depth+2)
		}
	case map[string]any:
		fmt.Fprintf(sb, "%sMap (%d entries)\n", pad, len(x))
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(sb, "%s%q:\n", f.indent(depth+1), k)
			f.write(sb, x[k], depth+2)
		}
	case *graph.Vertex:
		fmt.Fprintf(sb, "%sVertex label=%q\n", pad, x.Label)
		fmt.Fprintf(sb, "%sid:\n", f.indent(depth+1))
		f.write(sb, x.ID, depth+2)
		f.writeProperties(sb, x.Properties, depth+1)
	case *graph.Edge:
		fmt.Fprintf(sb, "%sEdge label=%q out=%v(%s) in=%v(%s)\n",
			pad, x.Label, x.OutVertexID, x.OutVertexLabel, x.InVertexID, x.InVertexLabel)
		fmt.Fprintf(sb, "%sid:\n", f.indent(depth+1))
		f.write(sb, x.ID, depth+2)
		f.writeProperties(sb, x.Properties, depth+1)
	case *graph.VertexProperty:
		fmt.Fprintf(sb, "%sVertexProperty label=%q\n", pad, x.Label)
		fmt.Fprintf(sb, "%svalue:\n", f.indent(depth+1))
		f.write(sb, x.Value, depth+2)
		f.writeProperties(sb, x.Properties, depth+1)
	case *graph.Property:
		fmt.Fprintf(sb, "%sProperty key=%q\n", pad, x.Key)
		f.write(sb, x.Value, depth+1)
	case *graph.Path:
		fmt.Fprintf(sb, "%sPath (%d steps)\n", pad, len(x.Objects))
		for i, o := range x.Objects {
			labels := "no labels"
			if i < len(x.Labels) && len(x.Labels[i]) > 0 {
				labels = strings.Join(x.Labels[i], ", ")
			}
			fmt.Fprintf(sb, "%sstep %d (%s):\n", f.indent(depth+1), i, labels)
			f.write(sb, o, depth+2)
		}
	default:
		fmt.Fprintf(sb, "%s%T %v\n", pad, x, x)
	}
}

func (f *Formatter) writeProperties(sb *strings.Builder, props map[string]any, depth int) {
	if props == nil {
		return
	}
	fmt.Fprintf(sb, "%sproperties:\n", f.indent(depth))
	f.write(sb, props, depth+1)
}

// sortedKeys orders map keys by their rendered form so output is stable.
func sortedKeys(m map[any]any) []any {
	keys := make([]any, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
