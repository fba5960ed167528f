package config

import (
	"time"

	"github.com/alexisbeaulieu97/widgetry/internal/collapsible"
	"github.com/alexisbeaulieu97/widgetry/internal/geometry"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	"github.com/alexisbeaulieu97/widgetry/internal/overlay"
	"github.com/alexisbeaulieu97/widgetry/internal/scrollarea"
)

// CurrentVersion is the schema version written by Default.
const CurrentVersion = "1.0.0"

// Config is the widget defaults document.
type Config struct {
	Version     string      `yaml:"version" toml:"version" validate:"required,semver"`
	Logging     Logging     `yaml:"logging,omitempty" toml:"logging,omitempty"`
	Overlays    Overlays    `yaml:"overlays,omitempty" toml:"overlays,omitempty"`
	ScrollArea  ScrollArea  `yaml:"scroll_area,omitempty" toml:"scroll_area,omitempty"`
	Collapsible Collapsible `yaml:"collapsible,omitempty" toml:"collapsible,omitempty"`
}

// Logging configures the zerolog output.
type Logging struct {
	Level         string `yaml:"level,omitempty" toml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error disabled"`
	HumanReadable bool   `yaml:"human_readable,omitempty" toml:"human_readable,omitempty"`
}

// Overlays holds one entry per overlay variant.
type Overlays struct {
	Tooltip   Overlay `yaml:"tooltip,omitempty" toml:"tooltip,omitempty"`
	HoverCard Overlay `yaml:"hover_card,omitempty" toml:"hover_card,omitempty"`
	Dropdown  Overlay `yaml:"dropdown,omitempty" toml:"dropdown,omitempty"`
}

// Overlay is the timing and placement of one overlay variant.
type Overlay struct {
	OpenDelayMS  int     `yaml:"open_delay_ms" toml:"open_delay_ms" validate:"min=0,max=60000"`
	CloseDelayMS int     `yaml:"close_delay_ms" toml:"close_delay_ms" validate:"min=0,max=60000"`
	Side         string  `yaml:"side" toml:"side" validate:"required,side"`
	Align        string  `yaml:"align" toml:"align" validate:"required,align"`
	Offset       float64 `yaml:"offset" toml:"offset" validate:"min=0,max=1000"`
}

// ScrollArea configures scrollbars.
type ScrollArea struct {
	MinThumbRatio float64 `yaml:"min_thumb_ratio" toml:"min_thumb_ratio" validate:"gt=0,lte=1"`
}

// Collapsible configures collapsible panels.
type Collapsible struct {
	DurationMS int `yaml:"duration_ms" toml:"duration_ms" validate:"min=1,max=10000"`
}

// Default returns the built-in defaults. Parsed documents start from it, so
// missing sections keep these values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Logging: Logging{Level: "info", HumanReadable: true},
		Overlays: Overlays{
			Tooltip:   overlayFrom(overlay.TooltipDefaults()),
			HoverCard: overlayFrom(overlay.HoverCardDefaults()),
			Dropdown:  overlayFrom(overlay.DropdownDefaults()),
		},
		ScrollArea:  ScrollArea{MinThumbRatio: scrollarea.DefaultMinThumbRatio},
		Collapsible: Collapsible{DurationMS: int(collapsible.DefaultDuration / time.Millisecond)},
	}
}

func overlayFrom(opts overlay.Options) Overlay {
	return Overlay{
		OpenDelayMS:  int(opts.OpenDelay / time.Millisecond),
		CloseDelayMS: int(opts.CloseDelay / time.Millisecond),
		Side:         opts.Anchor.Side.String(),
		Align:        opts.Anchor.Align.String(),
		Offset:       opts.Anchor.Offset,
	}
}

// OpenDelay returns the open delay as a duration.
func (o Overlay) OpenDelay() time.Duration {
	return time.Duration(o.OpenDelayMS) * time.Millisecond
}

// CloseDelay returns the close delay as a duration.
func (o Overlay) CloseDelay() time.Duration {
	return time.Duration(o.CloseDelayMS) * time.Millisecond
}

// Anchor converts the placement fields. Unknown names fall back to the
// geometry defaults; ValidateConfig rejects them before this point.
func (o Overlay) Anchor() geometry.Anchor {
	a := geometry.DefaultAnchor()
	if side, err := geometry.ParseSide(o.Side); err == nil {
		a.Side = side
	}
	if align, err := geometry.ParseAlign(o.Align); err == nil {
		a.Align = align
	}
	a.Offset = o.Offset
	return a
}

// Apply overwrites the timing and placement of opts.
func (o Overlay) Apply(opts overlay.Options) overlay.Options {
	opts.OpenDelay = o.OpenDelay()
	opts.CloseDelay = o.CloseDelay()
	opts.Anchor = o.Anchor()
	return opts
}

// Duration returns the animation duration.
func (c Collapsible) Duration() time.Duration {
	return time.Duration(c.DurationMS) * time.Millisecond
}

// LoggerOptions converts the logging section.
func (l Logging) LoggerOptions() logger.Options {
	return logger.Options{Level: l.Level, HumanReadable: l.HumanReadable}
}
