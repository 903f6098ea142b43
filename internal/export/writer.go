// Package export writes a board as an s-expression item listing. Every
// number goes through the unit formatter, so the text is exactly what the
// board file serializer would emit for the same geometry.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/pcbcore/pkg/types"
	"github.com/mesh-intelligence/pcbcore/pkg/units"
)

// Writer emits boards as text.
type Writer struct {
	f      *units.Formatter
	indent string
}

// NewWriter creates a Writer using f for every numeric field.
func NewWriter(f *units.Formatter) *Writer {
	return &Writer{f: f, indent: "  "}
}

// WriteBoard writes the board header, its layer table and every item.
func (w *Writer) WriteBoard(out io.Writer, b *types.Board) error {
	bw := bufio.NewWriter(out)

	fmt.Fprintf(bw, "(board %s\n", strconv.Quote(b.Name))
	fmt.Fprintf(bw, "%s(units %s) (angles %s)\n", w.indent, w.f.Config().Units, w.f.Config().Angles)
	fmt.Fprintf(bw, "%s(layers\n", w.indent)
	for _, l := range b.Layers() {
		fmt.Fprintf(bw, "%s%s(%d %s)\n", w.indent, w.indent, l.ID, quoteIfNeeded(l.Name))
	}
	fmt.Fprintf(bw, "%s)\n", w.indent)

	for _, l := range b.Lists() {
		for it := range l.All() {
			w.writeItem(bw, it, 1)
		}
	}
	fmt.Fprintln(bw, ")")
	return bw.Flush()
}

// FormatItem returns the single-line record of an item without children.
func (w *Writer) FormatItem(it *types.Item) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(recordName(it))
	for _, field := range w.fields(it) {
		sb.WriteString(" ")
		sb.WriteString(field)
	}
	sb.WriteString(")")
	return sb.String()
}

func (w *Writer) writeItem(bw *bufio.Writer, it *types.Item, depth int) {
	pad := strings.Repeat(w.indent, depth)
	children := it.Children()
	if children == nil || children.Len() == 0 {
		fmt.Fprintf(bw, "%s%s\n", pad, w.FormatItem(it))
		return
	}
	line := w.FormatItem(it)
	fmt.Fprintf(bw, "%s%s\n", pad, line[:len(line)-1])
	for child := range children.All() {
		w.writeItem(bw, child, depth+1)
	}
	fmt.Fprintf(bw, "%s)\n", pad)
}

func (w *Writer) fields(it *types.Item) []string {
	layer := "(layer " + quoteIfNeeded(it.GetLayerName()) + ")"
	switch it.Kind() {
	case types.KindTrack:
		return []string{
			w.pair("start", it.Start), w.pair("end", it.End),
			w.scalar("width", it.Width), layer,
		}
	case types.KindVia:
		return []string{w.pair("at", it.Start), w.scalar("size", it.Width), layer}
	case types.KindFootprint:
		return []string{
			quoteIfNeeded(it.Text),
			w.at(it.Start, it.Angle), layer,
		}
	case types.KindPad:
		return []string{
			it.Shape.String(), w.at(it.Start, it.Angle),
			"(size " + w.f.FormatSize(it.Size) + ")", layer,
		}
	case types.KindZone:
		return []string{
			it.Shape.String(), w.pair("start", it.Start), w.pair("end", it.End), layer,
		}
	case types.KindText:
		return []string{strconv.Quote(it.Text), w.at(it.Start, it.Angle), layer}
	default:
		fields := []string{w.pair("start", it.Start), w.pair("end", it.End)}
		if it.Shape == types.ShapeArc {
			fields = append(fields, "(angle "+w.f.FormatAngle(it.Angle)+")")
		}
		return append(fields, layer, w.scalar("width", it.Width))
	}
}

func (w *Writer) pair(key string, p types.Point) string {
	return "(" + key + " " + w.f.FormatPoint(p) + ")"
}

func (w *Writer) scalar(key string, iu int) string {
	return "(" + key + " " + w.f.FormatIU(iu) + ")"
}

// at writes a position with the angle appended only when it is non-zero.
func (w *Writer) at(p types.Point, angle float64) string {
	if angle == 0 {
		return w.pair("at", p)
	}
	return "(at " + w.f.FormatPoint(p) + " " + w.f.FormatAngle(angle) + ")"
}

func recordName(it *types.Item) string {
	switch it.Kind() {
	case types.KindTrack:
		return "segment"
	case types.KindFootprint:
		return "module"
	case types.KindText:
		return graphicPrefix(it) + "text"
	case types.KindDrawing:
		return graphicPrefix(it) + drawingName(it.Shape)
	default:
		return it.Kind().String()
	}
}

func graphicPrefix(it *types.Item) string {
	if p := it.Parent(); p != nil && p.Kind() == types.KindFootprint {
		return "fp_"
	}
	return "gr_"
}

func drawingName(s types.ShapeKind) string {
	if s == types.ShapeSegment {
		return "line"
	}
	return s.String()
}

// quoteIfNeeded quotes tokens that would not survive as bare atoms.
func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n()\"") {
		return strconv.Quote(s)
	}
	return s
}
