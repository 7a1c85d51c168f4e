package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/light"
)

const objectStruct = "struct Object {\n    model: mat4x4<f32>,\n};"

func TestProcess(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		wantContains []string
		wantDecls    int
		wantErr      string
	}{
		{
			name:         "include lighting",
			source:       "//@oxy:include lighting\nfn f() {}",
			wantContains: []string{light.LightingSource, "fn f() {}"},
		},
		{
			name:         "group declaration",
			source:       "//@oxy:include object\n// @oxy:group 1 0 uniform object object",
			wantContains: []string{objectStruct, "@group(1) @binding(0) var<uniform> object: Object;"},
			wantDecls:    1,
		},
		{
			name:         "storage address space",
			source:       "//@oxy:group 2 3 storage_read objects object",
			wantContains: []string{"@group(2) @binding(3) var<storage, read> objects: Object;"},
			wantDecls:    1,
		},
		{
			name:         "plain comments pass through",
			source:       "// model matrix\nlet a = 1;",
			wantContains: []string{"// model matrix", "let a = 1;"},
		},
		{name: "unknown include", source: "//@oxy:include camera", wantErr: "unknown @oxy:include"},
		{name: "unknown struct in group", source: "//@oxy:group 0 0 uniform cam camera", wantErr: "unknown struct type"},
		{name: "bad address space", source: "//@oxy:group 0 0 private o object", wantErr: "unknown address space"},
		{name: "negative binding", source: "//@oxy:group 0 -1 uniform o object", wantErr: "invalid binding"},
		{name: "missing arguments", source: "//@oxy:group 0 0 uniform", wantErr: "requires five arguments"},
		{name: "unknown type", source: "//@oxy:provider 0 0 material", wantErr: "unknown @oxy annotation type"},
		{
			name:    "duplicate binding",
			source:  "//@oxy:group 1 0 uniform a object\n//@oxy:group 1 0 uniform b object",
			wantErr: "already declared on line 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPreProcessor(WithStruct("object", objectStruct, "Object"))
			got, err := p.Process(tt.source)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Process() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Process() output missing %q:\n%s", want, got)
				}
			}
			if n := len(p.Declarations()); n != tt.wantDecls {
				t.Errorf("len(Declarations()) = %d, want %d", n, tt.wantDecls)
			}
		})
	}
}

func TestProcessIncludesOnce(t *testing.T) {
	p := NewPreProcessor()
	got, err := p.Process("//@oxy:include lighting\n//@oxy:include lighting")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if n := strings.Count(got, light.LightingSource); n != 1 {
		t.Errorf("lighting source injected %d times, want 1", n)
	}
}

func TestDeclarationsResetBetweenCalls(t *testing.T) {
	p := NewPreProcessor(WithStruct("object", objectStruct, "Object"))
	if _, err := p.Process("//@oxy:group 1 0 uniform object object"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, err := p.Process("fn f() {}"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if n := len(p.Declarations()); n != 0 {
		t.Errorf("len(Declarations()) = %d after plain source, want 0", n)
	}
}
