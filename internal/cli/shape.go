package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

// shapeLabel is the JSON shape of one shape kind.
type shapeLabel struct {
	Kind  int    `json:"kind"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

func newShapeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "shape [name|number]",
		Short: "Show display labels for drawing shapes",
		Long: `Shape prints the translated display label of a drawing shape. With no
argument it lists every shape. A number outside the known shapes prints "??".

Example:
  pcbcore shape
  pcbcore shape arc
  pcbcore shape 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return s.listShapes(cmd)
			}
			kind, err := parseShapeArg(args[0])
			if err != nil {
				return userError(err)
			}
			label := types.ShowShapeIn(s.catalog, kind)
			if s.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), shapeLabel{Kind: int(kind), Name: kind.String(), Label: label})
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

func (s *session) listShapes(cmd *cobra.Command) error {
	out := make([]shapeLabel, 0, len(types.ShapeKinds))
	for _, k := range types.ShapeKinds {
		out = append(out, shapeLabel{Kind: int(k), Name: k.String(), Label: types.ShowShapeIn(s.catalog, k)})
	}
	if s.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), out)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tLABEL")
	for _, l := range out {
		fmt.Fprintf(w, "%d\t%s\t%s\n", l.Kind, l.Name, l.Label)
	}
	return w.Flush()
}

// parseShapeArg accepts a shape name or its numeric value. Numbers are not
// range checked so that unknown values reach the "??" label.
func parseShapeArg(arg string) (types.ShapeKind, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return types.ShapeKind(n), nil
	}
	return types.ParseShapeKind(arg)
}
