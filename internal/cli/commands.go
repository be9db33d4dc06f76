package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/circuitprobe/internal/harness"
	"github.com/specialistvlad/circuitprobe/internal/resolve"
	"github.com/spf13/cobra"
)

type boardReport struct {
	Name       string `json:"name" yaml:"name"`
	Components int    `json:"components" yaml:"components"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
}

func newBoardsCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "boards DOCUMENT",
		Short: "List the boards of a document",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.app()
			if err != nil {
				return err
			}
			doc, err := a.OpenDocument(a.Context(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			var report []boardReport
			for _, b := range doc.Boards() {
				report = append(report, boardReport{Name: b.Name, Components: len(b.Components()), Width: b.Width, Height: b.Height})
			}
			return render(o.outW, o.output, report, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "BOARD\tCOMPONENTS\tCANVAS")
				for _, r := range report {
					fmt.Fprintf(tw, "%s\t%d\t%dx%d\n", r.Name, r.Components, r.Width, r.Height)
				}
			})
		},
	}
}

type typeReport struct {
	Category string `json:"category" yaml:"category"`
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
}

func newCatalogCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every known component type",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.app()
			if err != nil {
				return err
			}
			cat := a.Catalog()
			var report []typeReport
			for _, n := range cat.Names() {
				d, _ := cat.Descriptor(n)
				report = append(report, typeReport{Category: n.Category, Name: n.Name, Kind: d.Kind})
			}
			return render(o.outW, o.output, report, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "CATEGORY\tNAME\tKIND")
				for _, r := range report {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Category, r.Name, r.Kind)
				}
			})
		},
	}
}

func newCountCommand(o *options) *cobra.Command {
	var inverse, recursive bool
	cmd := &cobra.Command{
		Use:   "count DOCUMENT BOARD NAME...",
		Short: "Count components by component or category name",
		Long: `Count the components of a board whose component or category name is
among NAME, or with --inverse, whose names are not.`,
		Args: minimumArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, sub, err := o.open(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			counts, err := sub.CountComponents(ctx, args[2:], inverse, recursive)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(counts))
			for k := range counts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return render(o.outW, o.output, counts, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "NAME\tCOUNT")
				for _, k := range keys {
					fmt.Fprintf(tw, "%s\t%d\n", k, counts[k])
				}
			})
		},
	}
	cmd.Flags().BoolVar(&inverse, "inverse", false, "Count components matching none of the names.")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subcircuits, each board once.")
	return cmd
}

type matchReport struct {
	ID    string `json:"id" yaml:"id"`
	Kind  string `json:"kind" yaml:"kind"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Bits  int    `json:"bits" yaml:"bits"`
	Board string `json:"board" yaml:"board"`
}

func newLookupCommand(o *options) *cobra.Command {
	var (
		label     string
		bits      int
		recursive bool
	)
	cmd := &cobra.Command{
		Use:   "lookup DOCUMENT BOARD CATEGORY/NAME",
		Short: "Find exactly one component of a type",
		Long: `Find exactly one component of the given type, for example "Wiring/Input Pin".
Without --label the component must be the only one of its type.`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, name, ok := strings.Cut(args[2], "/")
			if !ok {
				return &ExitError{Code: 2, Message: fmt.Sprintf("component type %q must be written CATEGORY/NAME", args[2])}
			}
			ctx, sub, err := o.open(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			q := resolve.Query{Category: category, Name: name, Bits: bits, Recursive: recursive}
			if cmd.Flags().Changed("label") {
				q.Label = resolve.Label(label)
			}
			m, err := sub.Resolver().LookupOne(ctx, q)
			if err != nil {
				return err
			}
			report := matchReport{ID: m.Component.ID, Kind: m.Component.Kind, Label: m.Component.Label(), Bits: m.Component.Bits(), Board: m.At.Board.Name}
			return render(o.outW, o.output, report, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tKIND\tLABEL\tBITS\tBOARD")
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", report.ID, report.Kind, report.Label, report.Bits, report.Board)
			})
		},
	}
	cmd.Flags().StringVarP(&label, "label", "l", "", "Label the component must carry, compared after normalization.")
	cmd.Flags().IntVar(&bits, "bits", 0, "Exact bit width the component must declare.")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Search subcircuits too, every instance.")
	return cmd
}

func newRestrictCommand(o *options) *cobra.Command {
	var whitelist, blacklist []string
	cmd := &cobra.Command{
		Use:   "restrict DOCUMENT BOARD",
		Short: "Check a board and its subcircuits against allowed or banned components",
		Long: `Check that a board, including every board nested in it, uses only the
whitelisted components or none of the blacklisted ones. Pins, constants,
tunnels, text and probes are always whitelisted.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(whitelist) == 0 && len(blacklist) == 0 {
				return &ExitError{Code: 2, Message: "at least one of --whitelist or --blacklist is required"}
			}
			ctx, sub, err := o.open(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			var rs []harness.Restrictor
			if len(whitelist) > 0 {
				rs = append(rs, harness.Whitelist(whitelist...))
			}
			if len(blacklist) > 0 {
				rs = append(rs, harness.Blacklist(blacklist...))
			}
			if err := sub.Restrict(ctx, rs...); err != nil {
				return err
			}
			fmt.Fprintf(o.outW, "board %q passes every restriction\n", sub.Board().Name)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&whitelist, "whitelist", nil, "Component or category names the board may use.")
	cmd.Flags().StringSliceVar(&blacklist, "blacklist", nil, "Component or category names the board must not use.")
	return cmd
}

type outputReport struct {
	Label    string `json:"label" yaml:"label"`
	Bits     int    `json:"bits" yaml:"bits"`
	Value    uint64 `json:"value" yaml:"value"`
	Floating bool   `json:"floating,omitempty" yaml:"floating,omitempty"`
}

func parseAssignment(s string) (string, uint64, error) {
	label, raw, ok := strings.Cut(s, "=")
	if !ok || label == "" {
		return "", 0, fmt.Errorf("--set %q must be written LABEL=VALUE", s)
	}
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return "", 0, fmt.Errorf("--set %q: %w", s, err)
	}
	return label, v, nil
}

func newEvalCommand(o *options) *cobra.Command {
	var sets, gets []string
	cmd := &cobra.Command{
		Use:   "eval DOCUMENT BOARD",
		Short: "Drive input pins and read the settled output pins",
		Long: `Set input pins with --set LABEL=VALUE (decimal, 0x hex or 0b binary),
settle the simulation and print output pins. Without --get every labelled
output pin of the board is printed.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			type assignment struct {
				label string
				value uint64
			}
			var assignments []assignment
			for _, s := range sets {
				label, v, err := parseAssignment(s)
				if err != nil {
					return &ExitError{Code: 2, Message: err.Error()}
				}
				assignments = append(assignments, assignment{label, v})
			}

			ctx, sub, err := o.open(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			labels := gets
			if len(labels) == 0 {
				found, err := sub.Resolver().Matches(ctx, []string{"Output Pin"}, false, false)
				if err != nil {
					return err
				}
				for _, m := range found["Output Pin"] {
					if label := m.Component.Label(); label != "" {
						labels = append(labels, label)
					}
				}
			}
			outputs := make([]*harness.OutputPin, len(labels))
			for i, label := range labels {
				if outputs[i], err = sub.OutputPin(ctx, harness.Ref{Label: label}); err != nil {
					return err
				}
			}
			for _, as := range assignments {
				pin, err := sub.InputPin(ctx, harness.Ref{Label: as.label})
				if err != nil {
					return err
				}
				if err := pin.Set(ctx, as.value); err != nil {
					return err
				}
			}
			if err := sub.Step(ctx); err != nil {
				return err
			}

			report := make([]outputReport, len(labels))
			for i, pin := range outputs {
				v, err := pin.Get()
				report[i] = outputReport{Label: labels[i], Bits: pin.Component().Bits(), Value: v, Floating: errors.Is(err, harness.ErrFloating)}
			}
			return render(o.outW, o.output, report, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "PIN\tBITS\tVALUE")
				for _, r := range report {
					value := fmt.Sprintf("%#x", r.Value)
					if r.Floating {
						value = "floating"
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Label, r.Bits, value)
				}
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Input pin assignment LABEL=VALUE; repeatable.")
	cmd.Flags().StringArrayVar(&gets, "get", nil, "Output pin label to print; repeatable.")
	return cmd
}
