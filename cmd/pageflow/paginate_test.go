package main

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"pageflow/config"
	"pageflow/state"
)

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return &state.LocalEnv{Cfg: cfg, Log: zap.NewNop()}
}

func TestOutputPath(t *testing.T) {
	env := testEnv(t)

	tests := []struct {
		name     string
		src      string
		dst      string
		template string
		want     string
	}{
		{
			name: "default naming",
			src:  "/in/report.xml",
			dst:  "/out",
			want: filepath.Join("/out", "report.paged.xml"),
		},
		{
			name:     "template naming",
			src:      "report.xml",
			dst:      ".",
			template: "{{ .Name }}-{{ .Pages }}p.xml",
			want:     filepath.Join(".", "report-3p.xml"),
		},
		{
			name:     "template with functions",
			src:      "report.xml",
			dst:      "out",
			template: "{{ upper .Name }}.xml",
			want:     filepath.Join("out", "REPORT.xml"),
		},
		{
			name:     "broken template falls back",
			src:      "report.xml",
			dst:      ".",
			template: "{{ .Name",
			want:     filepath.Join(".", "report.paged.xml"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.Cfg.Document.OutputNameTemplate = tt.template
			if got := outputPath(tt.src, tt.dst, 3, env); got != tt.want {
				t.Errorf("outputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageAttrsFromConfig(t *testing.T) {
	env := testEnv(t)

	attrs, err := pageAttrs(&env.Cfg.Page)
	if err != nil {
		t.Fatal(err)
	}
	m := attrs.Metrics()
	if m.ContentHeight <= 0 || m.ContentWidth <= 0 {
		t.Errorf("default page has no usable area: %+v", m)
	}

	env.Cfg.Page.Paper = "bogus"
	if _, err := pageAttrs(&env.Cfg.Page); err == nil {
		t.Error("pageAttrs accepted an unknown paper size")
	}
}
