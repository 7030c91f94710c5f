// Package style provides named scrim style presets loadable from YAML.
package style

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"scrimkit/pkg/anim"
	"scrimkit/pkg/colorutil"
	"scrimkit/pkg/overlay"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "250ms" or "1.5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"250ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Style describes how a scrim looks and moves. Unset fields keep the
// controller defaults.
type Style struct {
	Fill         string    `yaml:"fill"`           // Hex or SVG color name
	Opacity      *float64  `yaml:"opacity"`        // 0 to 1; overrides the fill's alpha
	Appear       *Duration `yaml:"appear"`         // Appear animation duration
	Dismiss      *Duration `yaml:"dismiss"`        // Dismiss animation duration
	DismissDelay *Duration `yaml:"dismiss_delay"`  // Pause between tap and dismiss
	DismissOnTap *bool     `yaml:"dismiss_on_tap"` // Default true
	Easing       string    `yaml:"easing"`         // linear, ease-in, ease-out, ease-in-out
	Keyframes    []float64 `yaml:"keyframes"`      // Custom easing; excludes Easing
}

// Validate checks every field that Apply would use.
func (s Style) Validate() error {
	if s.Fill != "" {
		if _, err := colorutil.Parse(s.Fill); err != nil {
			return err
		}
	}
	if s.Opacity != nil && (*s.Opacity < 0 || *s.Opacity > 1) {
		return fmt.Errorf("opacity %v out of range 0 to 1", *s.Opacity)
	}
	if _, err := s.curve(); err != nil {
		return err
	}
	return nil
}

// Apply configures the controller through its fluent API. The controller is
// left untouched on error.
func (s Style) Apply(c *overlay.Controller) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if s.Fill != "" || s.Opacity != nil {
		fill := c.FillColor()
		if s.Fill != "" {
			parsed, _ := colorutil.Parse(s.Fill)
			fill = parsed
		}
		if s.Opacity != nil {
			fill = colorutil.WithAlpha(fill, uint8(*s.Opacity*255+0.5))
		}
		c.SetFillColor(fill)
	}
	if s.Appear != nil {
		c.SetAppearDuration(time.Duration(*s.Appear))
	}
	if s.Dismiss != nil {
		c.SetDismissDuration(time.Duration(*s.Dismiss))
	}
	if s.DismissDelay != nil {
		c.SetDismissDelay(time.Duration(*s.DismissDelay))
	}
	if s.DismissOnTap != nil && !*s.DismissOnTap {
		c.DisableDismissOnTap()
	}
	if curve, _ := s.curve(); curve != nil {
		c.SetRunner(anim.NewFyneRunner(curve))
	}
	return nil
}

// curve resolves the style's easing. Nil with no error means "keep the
// controller's default".
func (s Style) curve() (anim.Curve, error) {
	if len(s.Keyframes) > 0 {
		if s.Easing != "" {
			return nil, fmt.Errorf("easing and keyframes are mutually exclusive")
		}
		return anim.KeyframeCurve(s.Keyframes)
	}
	if s.Easing == "" {
		return nil, nil
	}
	return anim.CurveByName(s.Easing)
}

// Load reads a name-to-style map from YAML.
func Load(r io.Reader) (map[string]Style, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	styles := make(map[string]Style)
	if err := yaml.Unmarshal(data, &styles); err != nil {
		return nil, fmt.Errorf("parse styles: %w", err)
	}
	return styles, nil
}

// LoadFile reads a name-to-style map from a YAML file.
func LoadFile(path string) (map[string]Style, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Builtin returns the styles available without a style file.
func Builtin() map[string]Style {
	opaque := func(v float64) *float64 { return &v }
	dur := func(d time.Duration) *Duration { v := Duration(d); return &v }
	stay := false

	return map[string]Style{
		"dim": {},
		"shadow": {
			Fill:    "#000000",
			Opacity: opaque(0.6),
			Easing:  "ease-out",
		},
		"spotlight": {
			Fill:    "white",
			Opacity: opaque(0.4),
			Appear:  dur(600 * time.Millisecond),
		},
		"sticky": {
			Fill:         "#202830",
			Opacity:      opaque(0.55),
			DismissOnTap: &stay,
		},
		"springy": {
			Keyframes: []float64{0, 0.55, 1.08, 0.97, 1},
			Appear:    dur(500 * time.Millisecond),
		},
	}
}
