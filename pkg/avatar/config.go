package avatar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidConfig is returned when a decoded configuration violates a field constraint.
var ErrInvalidConfig = errors.New("avatar: invalid configuration")

// Position is the avatar's location in scene units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Config holds the display parameters of a single avatar.
// Values are replaced wholesale on refresh and must not be mutated once shared.
type Config struct {
	// ID is the stable avatar identifier (e.g., "avatar-001")
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Position is the avatar's translation in the scene
	Position Position `json:"position"`

	// Color is a CSS color, typically "#rrggbb"
	Color string `json:"color"`

	// Scale is the uniform scale factor, always positive
	Scale float64 `json:"scale"`

	// Visible reports whether the avatar should be drawn
	Visible bool `json:"visible"`

	// RotationSpeed is the yaw speed in radians per second; zero means stationary
	RotationSpeed float64 `json:"rotationSpeed"`
}

// Default returns the reference configuration shipped with the backend.
func Default() Config {
	return Config{
		ID:            "avatar-001",
		Name:          "Default Avatar",
		Position:      Position{},
		Color:         "#4F46E5",
		Scale:         1.0,
		Visible:       true,
		RotationSpeed: 0.5,
	}
}

// Decode reads a single JSON configuration from r and validates it.
// Unknown fields are ignored.
func Decode(r io.Reader) (Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode avatar config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidConfig)
	}
	if !finite(c.Scale) || c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidConfig, c.Scale)
	}
	if !finite(c.RotationSpeed) {
		return fmt.Errorf("%w: rotationSpeed must be finite", ErrInvalidConfig)
	}
	if !finite(c.Position.X) || !finite(c.Position.Y) || !finite(c.Position.Z) {
		return fmt.Errorf("%w: position must be finite", ErrInvalidConfig)
	}
	if err := validateColor(c.Color); err != nil {
		return err
	}
	return nil
}

// HexColor returns the parsed color when Color is a hex literal.
// Named and functional CSS colors report ok=false.
func (c Config) HexColor() (colorful.Color, bool) {
	if !strings.HasPrefix(c.Color, "#") {
		return colorful.Color{}, false
	}
	col, err := parseHex(c.Color)
	if err != nil {
		return colorful.Color{}, false
	}
	return col, true
}

func validateColor(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: color is required", ErrInvalidConfig)
	}
	if !strings.HasPrefix(s, "#") {
		return nil
	}
	if _, err := parseHex(s); err != nil {
		return fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, s, err)
	}
	return nil
}

// parseHex accepts #rgb, #rgba, #rrggbb and #rrggbbaa. Alpha is dropped.
func parseHex(s string) (colorful.Color, error) {
	switch len(s) {
	case 5:
		s = s[:4]
	case 9:
		s = s[:7]
	}
	return colorful.Hex(s)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
