package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pageflow/common"
	"pageflow/config"
	"pageflow/document"
	"pageflow/layout"
	"pageflow/state"
)

func runPaginate(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	env.Overwrite = cmd.Bool("overwrite")

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no source document specified")
	}
	src := cmd.Args().Get(0)
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = "."
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open source document '%s': %w", src, err)
	}
	doc, err := document.ReadXML(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("unable to read source document '%s': %w", src, err)
	}

	attrs, err := pageAttrs(&env.Cfg.Page)
	if err != nil {
		return err
	}
	engine := layout.NewEngine(
		layout.EstimateMeasurer{
			LineHeight:   env.Cfg.Layout.LineHeight,
			CharsPerLine: env.Cfg.Layout.CharsPerLine,
		},
		layout.FixedResolver{Default: attrs},
		layout.Options{
			MinBlockHeight: env.Cfg.Layout.MinBlockHeight,
			Cache:          env.Cache,
			Groups:         env.Groups,
			Log:            env.Log,
		})

	res, err := engine.Repaginate(doc)
	if err != nil {
		return fmt.Errorf("unable to repaginate '%s': %w", src, err)
	}

	out := outputPath(src, dst, res.Doc.ChildCount(), env)
	if _, err := os.Stat(out); err == nil && !env.Overwrite {
		return fmt.Errorf("destination '%s' already exists, use --overwrite", out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	w, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create destination '%s': %w", out, err)
	}
	defer w.Close()
	if err := document.WriteXML(w, res.Doc); err != nil {
		return err
	}

	env.Log.Info("Document repaginated",
		zap.String("source", src),
		zap.String("destination", out),
		zap.Int("pages", res.Doc.ChildCount()),
		zap.Int("entries", len(res.Entries)))
	return nil
}

// pageAttrs converts the page configuration section to resolved page
// attributes.
func pageAttrs(pc *config.PageConfig) (layout.PageAttrs, error) {
	paper, err := common.ParsePaperSize(pc.Paper)
	if err != nil {
		return layout.PageAttrs{}, err
	}
	orientation, err := common.ParseOrientation(pc.Orientation)
	if err != nil {
		return layout.PageAttrs{}, err
	}
	return layout.PageAttrs{
		Paper:       paper,
		Orientation: orientation,
		Colour:      pc.Colour,
		Margins: layout.Margins{
			Top:    pc.MarginTop,
			Right:  pc.MarginRight,
			Bottom: pc.MarginBottom,
			Left:   pc.MarginLeft,
		},
	}, nil
}

// outputPath builds the output file path, expanding the user-defined name
// template when one is configured and falling back to the default naming
// scheme otherwise.
func outputPath(src, dst string, pages int, env *state.LocalEnv) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	name := base + ".paged.xml"

	if tmpl := env.Cfg.Document.OutputNameTemplate; len(tmpl) > 0 {
		if expanded := expandNameTemplate(tmpl, base, pages, env); len(expanded) > 0 {
			name = expanded
		}
	}
	return filepath.Join(dst, filepath.FromSlash(name))
}

func expandNameTemplate(tmpl, name string, pages int, env *state.LocalEnv) string {
	t, err := template.New("output_name").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	var buf bytes.Buffer
	data := struct {
		Name  string
		Pages int
	}{Name: name, Pages: pages}
	if err := t.Execute(&buf, data); err != nil {
		env.Log.Warn("Unable to expand output filename template", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(buf.String())
}
