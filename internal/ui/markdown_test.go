package ui

import (
	"strings"
	"testing"

	"github.com/bft-labs/avatarsync/pkg/avatar"
)

func TestMarkdown(t *testing.T) {
	cfg := avatar.Default()
	cfg.Position = avatar.Position{X: 1, Y: -2.5, Z: 0}

	md := Markdown(cfg)
	for _, want := range []string{
		"# Default Avatar",
		"| ID | `avatar-001` |",
		"| Color | `#4F46E5` |",
		"| Rotation | 0.5 rad/s |",
		"| Scale | 1 |",
		"| Position | (1, -2.5, 0) |",
		"| Visible | yes |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	cfg.Name = ""
	if !strings.HasPrefix(Markdown(cfg), "# avatar-001") {
		t.Error("unnamed avatar should use its ID as title")
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(Markdown(avatar.Default()), "notty")
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(out, "avatar-001") {
		t.Errorf("rendered output missing id:\n%s", out)
	}
}
