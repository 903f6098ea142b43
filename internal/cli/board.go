package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pcbcore/internal/export"
	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

// boardView is the JSON shape of board show.
type boardView struct {
	ID         string        `json:"board_id"`
	Name       string        `json:"name"`
	Units      string        `json:"units"`
	Angles     string        `json:"angles"`
	LayerNames []types.Layer `json:"layer_names"`
	Items      []itemView    `json:"items"`
}

// itemView is the JSON shape of one item. Record is the exported line.
type itemView struct {
	Kind     string     `json:"kind"`
	Class    string     `json:"class"`
	Layer    string     `json:"layer"`
	Shape    string     `json:"shape,omitempty"`
	Text     string     `json:"text,omitempty"`
	Record   string     `json:"record"`
	Children []itemView `json:"children,omitempty"`
}

// itemFlags holds the geometry flags of board add. Lengths are in
// engineering units, angles in degrees.
type itemFlags struct {
	layer     string
	shape     string
	start     string
	end       string
	size      string
	width     string
	angle     string
	text      string
	footprint int
}

func newBoardCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Create, edit, inspect and export stored boards",
	}
	cmd.AddCommand(newBoardCreateCmd(s))
	cmd.AddCommand(newBoardListCmd(s))
	cmd.AddCommand(newBoardAddCmd(s))
	cmd.AddCommand(newBoardShowCmd(s))
	cmd.AddCommand(newBoardExportCmd(s))
	cmd.AddCommand(newBoardDeleteCmd(s))
	return cmd
}

func newBoardCreateCmd(s *session) *cobra.Command {
	var layerNames []string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty board and print its id",
		Long: `Create stores a new empty board. Layer names may be assigned with
--layer-name, given as <layer>=<name>.

Example:
  pcbcore board create demo
  pcbcore board create demo --layer-name F.Cu=Top --layer-name B.Cu=Bottom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := s.newArena().NewBoard(args[0])
			for _, assign := range layerNames {
				if err := setLayerName(board, assign); err != nil {
					return userError(err)
				}
			}

			store, err := s.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			id, err := store.SaveBoard(board)
			if err != nil {
				return sysError(fmt.Errorf("save board: %w", err))
			}
			if s.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"board_id": id, "name": board.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&layerNames, "layer-name", nil, "assign a layer name as <layer>=<name> (repeatable)")
	return cmd
}

func newBoardListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			boards, err := store.ListBoards()
			if err != nil {
				return sysError(err)
			}
			if s.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), boards)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tITEMS\tUPDATED")
			for _, b := range boards {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b.ID, b.Name, b.Items, b.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

func newBoardAddCmd(s *session) *cobra.Command {
	var f itemFlags
	cmd := &cobra.Command{
		Use:   "add <board-id> <kind>",
		Short: "Add an item to a stored board",
		Long: `Add creates an item of the given kind (footprint, pad, track, via, zone,
drawing, text) and places it on the board. Pads, drawings and texts can be
placed inside a footprint with --footprint, which takes the footprint's
position in the board's footprint list.

Lengths are given in engineering units (millimetres for the nanometre scale)
and angles in degrees.

Example:
  pcbcore board add <id> track --start "1 2" --end "25.4 0" --width 0.25
  pcbcore board add <id> footprint --text R1 --start "10 20" --angle 90
  pcbcore board add <id> pad --footprint 0 --shape rect --size "1.5 0.8"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseItemKind(args[1])
			if err != nil {
				return userError(err)
			}

			store, err := s.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			board, err := loadBoard(store, s.newArena(), args[0])
			if err != nil {
				return err
			}

			it, err := board.Arena().NewItem(kind)
			if err != nil {
				return userError(fmt.Errorf("%s: %w", args[1], err))
			}
			if err := s.applyItemFlags(board, it, f); err != nil {
				return userError(err)
			}
			if err := placeItem(board, it, f.footprint); err != nil {
				return userError(err)
			}
			if _, err := store.SaveBoard(board); err != nil {
				return sysError(fmt.Errorf("save board: %w", err))
			}

			if s.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), s.viewItem(it))
			}
			fmt.Fprintln(cmd.OutOrStdout(), export.NewWriter(s.formatter).FormatItem(it))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.layer, "layer", "F.Cu", "layer name")
	fl.StringVar(&f.shape, "shape", "", "shape: segment, rect, arc, circle, curve, polygon")
	fl.StringVar(&f.start, "start", "", `start point or position as "x y"`)
	fl.StringVar(&f.end, "end", "", `end point as "x y"`)
	fl.StringVar(&f.size, "size", "", `size as "width height"`)
	fl.StringVar(&f.width, "width", "", "line width, or via diameter")
	fl.StringVar(&f.angle, "angle", "", "rotation in degrees")
	fl.StringVar(&f.text, "text", "", "text, or footprint reference")
	fl.IntVar(&f.footprint, "footprint", -1, "place inside the footprint at this index")
	return cmd
}

func newBoardShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <board-id>",
		Short: "Display a board with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			board, err := loadBoard(store, s.newArena(), args[0])
			if err != nil {
				return err
			}

			view := s.viewBoard(board)
			if s.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), view)
			}
			printBoard(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func newBoardExportCmd(s *session) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <board-id>",
		Short: "Write a board as an item listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			board, err := loadBoard(store, s.newArena(), args[0])
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return sysError(fmt.Errorf("create output: %w", err))
				}
				defer file.Close()
				out = file
			}
			if err := export.NewWriter(s.formatter).WriteBoard(out, board); err != nil {
				return sysError(fmt.Errorf("export board: %w", err))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func newBoardDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a stored board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			if err := store.DeleteBoard(args[0]); err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return userError(fmt.Errorf("board %q not found", args[0]))
				}
				return sysError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted board %s\n", args[0])
			return nil
		},
	}
}

func loadBoard(store types.BoardStore, arena *types.Arena, id string) (*types.Board, error) {
	board, err := store.LoadBoard(arena, id)
	if errors.Is(err, types.ErrNotFound) {
		return nil, userError(fmt.Errorf("board %q not found", id))
	}
	if err != nil {
		return nil, sysError(err)
	}
	return board, nil
}

// setLayerName applies a <layer>=<name> assignment.
func setLayerName(board *types.Board, assign string) error {
	layer, name, ok := strings.Cut(assign, "=")
	if !ok {
		return fmt.Errorf("layer name %q: want <layer>=<name>", assign)
	}
	id, err := types.ParseLayer(layer)
	if err != nil {
		return err
	}
	return board.SetLayerName(id, name)
}

// resolveLayer matches a board's own layer names before the standard ones.
func resolveLayer(board *types.Board, name string) (types.LayerID, error) {
	for _, l := range board.Layers() {
		if l.Name == name {
			return l.ID, nil
		}
	}
	return types.ParseLayer(name)
}

func (s *session) applyItemFlags(board *types.Board, it *types.Item, f itemFlags) error {
	var err error
	if it.Layer, err = resolveLayer(board, f.layer); err != nil {
		return err
	}
	if f.shape != "" {
		if it.Shape, err = types.ParseShapeKind(f.shape); err != nil {
			return err
		}
	}
	if f.start != "" {
		if it.Start, err = s.formatter.ParsePoint(f.start); err != nil {
			return fmt.Errorf("start: %w", err)
		}
	}
	if f.end != "" {
		if it.End, err = s.formatter.ParsePoint(f.end); err != nil {
			return fmt.Errorf("end: %w", err)
		}
	}
	if f.size != "" {
		if it.Size, err = s.formatter.ParseSize(f.size); err != nil {
			return fmt.Errorf("size: %w", err)
		}
	}
	if f.width != "" {
		if it.Width, err = s.formatter.ParseIU(f.width); err != nil {
			return fmt.Errorf("width: %w", err)
		}
	}
	if f.angle != "" {
		if it.Angle, err = s.formatter.ParseAngle(f.angle); err != nil {
			return fmt.Errorf("angle: %w", err)
		}
	}
	it.Text = f.text
	return nil
}

// placeItem adds it to the board, or to the footprint at index when index is
// not negative.
func placeItem(board *types.Board, it *types.Item, index int) error {
	if index < 0 {
		return board.Add(it)
	}
	footprints := board.Footprints.Items()
	if index >= len(footprints) {
		return fmt.Errorf("footprint %d: board has %d footprints", index, len(footprints))
	}
	return footprints[index].AddChild(it)
}

func (s *session) viewBoard(board *types.Board) boardView {
	fc := s.formatter.Config()
	view := boardView{
		ID:         board.DocumentID,
		Name:       board.Name,
		Units:      string(fc.Units),
		Angles:     string(fc.Angles),
		LayerNames: board.CustomLayerNames(),
		Items:      []itemView{},
	}
	for _, l := range board.Lists() {
		for it := range l.All() {
			view.Items = append(view.Items, s.viewItem(it))
		}
	}
	return view
}

func (s *session) viewItem(it *types.Item) itemView {
	v := itemView{
		Kind:   it.Kind().String(),
		Class:  it.Class(),
		Layer:  it.GetLayerName(),
		Text:   it.Text,
		Record: export.NewWriter(s.formatter).FormatItem(it),
	}
	switch it.Kind() {
	case types.KindDrawing, types.KindPad, types.KindZone:
		v.Shape = types.ShowShapeIn(s.catalog, it.Shape)
	}
	if children := it.Children(); children != nil {
		for child := range children.All() {
			v.Children = append(v.Children, s.viewItem(child))
		}
	}
	return v
}

func printBoard(w io.Writer, v boardView) {
	fmt.Fprintf(w, "ID:      %s\n", v.ID)
	fmt.Fprintf(w, "Name:    %s\n", v.Name)
	fmt.Fprintf(w, "Units:   %s (angles %s)\n", v.Units, v.Angles)

	if len(v.LayerNames) > 0 {
		fmt.Fprintln(w, "\nLayer names:")
		for _, l := range v.LayerNames {
			fmt.Fprintf(w, "  %d  %s\n", l.ID, l.Name)
		}
	}

	if len(v.Items) > 0 {
		fmt.Fprintln(w, "\nItems:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		printItems(tw, v.Items, "  ")
		tw.Flush()
	}
}

func printItems(w io.Writer, items []itemView, indent string) {
	for _, it := range items {
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", indent, it.Class, it.Shape, it.Record)
		printItems(w, it.Children, indent+"  ")
	}
}
