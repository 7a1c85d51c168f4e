package renderer

import (
	"strings"
	"testing"
)

func TestBuildFlatShader(t *testing.T) {
	source, err := buildFlatShader()
	if err != nil {
		t.Fatalf("buildFlatShader() error = %v", err)
	}
	for _, want := range []string{
		"struct Lighting {",
		"struct Frame {",
		"@group(0) @binding(0) var<uniform> frame: Frame;",
		"@group(1) @binding(0) var<uniform> object: Object;",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("flat shader missing %q", want)
		}
	}
	if strings.Contains(source, "@oxy:") {
		t.Errorf("flat shader still contains annotations")
	}
}
