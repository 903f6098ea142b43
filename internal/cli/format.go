package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

// formatResult is the JSON shape of every format subcommand.
type formatResult struct {
	Input string `json:"input"`
	Text  string `json:"text"`
	Units string `json:"units"`
}

// parseResult is the JSON shape of format parse.
type parseResult struct {
	Input string `json:"input"`
	Value int    `json:"value"`
	Units string `json:"units"`
}

func newFormatCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Convert internal units to persisted decimal text",
		Long: `Format converts integer internal units into the decimal text written to
board files, using the configured unit scale and angle convention.

Negative values must follow "--" so they are not read as flags.

Example:
  pcbcore format value 25400000
  pcbcore format point 1000000 2000000
  pcbcore format angle 900
  pcbcore format parse 25.4
  pcbcore format value -- -127`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "value <iu>",
		Short: "Format one internal-unit value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iu, err := parseInternal(args[0])
			if err != nil {
				return err
			}
			return s.emitFormat(cmd, args[0], s.formatter.FormatIU(iu))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "point <x> <y>",
		Short: "Format a point as two space-separated values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseInternalPair(args)
			if err != nil {
				return err
			}
			return s.emitFormat(cmd, args[0]+" "+args[1], s.formatter.FormatPoint(types.Pt(x, y)))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "size <width> <height>",
		Short: "Format a size as two space-separated values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parseInternalPair(args)
			if err != nil {
				return err
			}
			return s.emitFormat(cmd, args[0]+" "+args[1], s.formatter.FormatSize(types.Size{Width: w, Height: h}))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "angle <stored>",
		Short: "Format a stored angle in degrees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return userError(fmt.Errorf("angle %q: %w", args[0], types.ErrInvalidNumber))
			}
			return s.emitFormat(cmd, args[0], s.formatter.FormatAngle(a))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "parse <text>",
		Short: "Parse engineering-unit text back to internal units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iu, err := s.formatter.ParseIU(args[0])
			if err != nil {
				return userError(err)
			}
			if s.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), parseResult{
					Input: args[0],
					Value: iu,
					Units: string(s.formatter.Config().Units),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), iu)
			return nil
		},
	})
	return cmd
}

func (s *session) emitFormat(cmd *cobra.Command, input, text string) error {
	if s.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), formatResult{
			Input: input,
			Text:  text,
			Units: string(s.formatter.Config().Units),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func parseInternal(arg string) (int, error) {
	iu, err := strconv.Atoi(arg)
	if err != nil {
		return 0, userError(fmt.Errorf("internal units %q: %w", arg, types.ErrInvalidNumber))
	}
	return iu, nil
}

func parseInternalPair(args []string) (int, int, error) {
	a, err := parseInternal(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := parseInternal(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
