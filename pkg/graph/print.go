package graph

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented tree of the graph under its root.
func Fprint(w io.Writer, g *CompositionGraph) error {
	var err error
	g.Walk(g.Root, func(n *Node, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s %q [%s]%s\n",
			strings.Repeat("  ", depth), n.Kind, n.Name, n.ID.Short(), detail(n))
		return true
	})
	return err
}

func detail(n *Node) string {
	switch d := n.Data.(type) {
	case BoxData:
		return fmt.Sprintf(" %g x %g x %g", d.Size.X, d.Size.Y, d.Size.Z)
	case CylinderData:
		return fmt.Sprintf(" h=%g r=%g", d.Height, d.Radius)
	case TranslateData:
		return " by " + d.Offset.String()
	case RotateData:
		return " by " + d.Degrees.String() + " deg"
	default:
		return ""
	}
}
