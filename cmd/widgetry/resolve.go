package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/widgetry/internal/config"
	"github.com/alexisbeaulieu97/widgetry/internal/geometry"
)

type resolveOptions struct {
	variant    string
	trigger    []float64
	content    []float64
	side       string
	align      string
	offset     float64
	jsonOutput bool
}

type resolveJSON struct {
	Variant string  `json:"variant"`
	Side    string  `json:"side"`
	Align   string  `json:"align"`
	Offset  float64 `json:"offset"`
	Top     float64 `json:"top"`
	Left    float64 `json:"left"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func newResolveCmd(flags *rootFlags) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Compute where an overlay is placed next to its trigger",
		Long: `Compute the top/left position of an overlay surface. Placement defaults come
from the variant's config section; --side, --align and --offset override them.`,
		Example: `  widgetry resolve --trigger 100,100,80,20 --content 120,40
  widgetry resolve --variant dropdown --trigger 10,10,8,1 --content 20,5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.variant, "variant", "tooltip", "Overlay variant whose defaults apply (tooltip, hover-card, dropdown)")
	cmd.Flags().Float64SliceVar(&opts.trigger, "trigger", nil, "Trigger rect as top,left,width,height")
	cmd.Flags().Float64SliceVar(&opts.content, "content", nil, "Content size as width,height")
	cmd.Flags().StringVar(&opts.side, "side", "", "Side override (top, right, bottom, left)")
	cmd.Flags().StringVar(&opts.align, "align", "", "Align override (start, center, end)")
	cmd.Flags().Float64Var(&opts.offset, "offset", 0, "Offset override")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	_ = cmd.MarkFlagRequired("trigger")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func runResolve(cmd *cobra.Command, flags *rootFlags, opts *resolveOptions) error {
	app, err := newAppContext(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = app.closeLog() }()

	if len(opts.trigger) != 4 {
		return newCommandError("resolve", "reading --trigger", fmt.Errorf("got %d values", len(opts.trigger)), "Pass four numbers: top,left,width,height.")
	}
	if len(opts.content) != 2 {
		return newCommandError("resolve", "reading --content", fmt.Errorf("got %d values", len(opts.content)), "Pass two numbers: width,height.")
	}

	variant, err := variantConfig(app.cfg, opts.variant)
	if err != nil {
		return newCommandError("resolve", "selecting variant", err, "Use tooltip, hover-card or dropdown.")
	}
	anchor := variant.Anchor()
	if opts.side != "" {
		if anchor.Side, err = geometry.ParseSide(opts.side); err != nil {
			return newCommandError("resolve", "reading --side", err, "Use top, right, bottom or left.")
		}
	}
	if opts.align != "" {
		if anchor.Align, err = geometry.ParseAlign(opts.align); err != nil {
			return newCommandError("resolve", "reading --align", err, "Use start, center or end.")
		}
	}
	if cmd.Flags().Changed("offset") {
		anchor.Offset = opts.offset
	}

	trigger := geometry.Rect{Top: opts.trigger[0], Left: opts.trigger[1], Width: opts.trigger[2], Height: opts.trigger[3]}
	content := geometry.Rect{Width: opts.content[0], Height: opts.content[1]}
	if !trigger.Ready() || !content.Ready() {
		return newCommandError("resolve", "checking measurements", fmt.Errorf("trigger or content is unmeasured"), "Pass non-zero rectangles.")
	}

	pos := geometry.Resolve(trigger, content, anchor)
	app.log.DebugFields("resolved", map[string]any{"variant": opts.variant, "top": pos.Top, "left": pos.Left})

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(resolveJSON{
			Variant: opts.variant,
			Side:    anchor.Side.String(),
			Align:   anchor.Align.String(),
			Offset:  anchor.Offset,
			Top:     pos.Top,
			Left:    pos.Left,
			Width:   content.Width,
			Height:  content.Height,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s/%s offset %g: top=%g left=%g\n",
		opts.variant, anchor.Side, anchor.Align, anchor.Offset, pos.Top, pos.Left)
	return nil
}

func variantConfig(cfg *config.Config, name string) (config.Overlay, error) {
	switch name {
	case "tooltip":
		return cfg.Overlays.Tooltip, nil
	case "hover-card":
		return cfg.Overlays.HoverCard, nil
	case "dropdown":
		return cfg.Overlays.Dropdown, nil
	default:
		return config.Overlay{}, fmt.Errorf("unknown variant %q", name)
	}
}
