package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/wudi/pdftable/config"
	"github.com/wudi/pdftable/document"
	"github.com/wudi/pdftable/htmltable"
	"github.com/wudi/pdftable/mdtable"
	"github.com/wudi/pdftable/observability"
	"github.com/wudi/pdftable/table"
	"github.com/wudi/pdftable/tabledef"
)

func runLayout(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return fmt.Errorf("no input has been specified")
	}
	tables, err := readTables(ctx, env.Cfg, env.logger(), src, cmd.String("format"))
	if err != nil {
		return err
	}

	composer := newComposer(env.Cfg, env.logger())
	for i, t := range tables {
		if err := composer.Add(ctx, t); err != nil {
			return fmt.Errorf("unable to lay out table %d: %w", i, err)
		}
	}
	plan := composer.Plan()
	env.Log.Info("Layout complete", zap.Int("tables", len(tables)), zap.Int("pages", len(plan.Pages)), zap.Int("fragments", plan.Fragments()))

	out := os.Stdout
	if fname := cmd.String("out"); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			if er := f.Close(); er != nil && err == nil {
				err = fmt.Errorf("unable to close destination file '%s': %w", fname, er)
			}
		}()
		out = f
	}
	if err := plan.WriteYAML(out); err != nil {
		return fmt.Errorf("unable to write plan: %w", err)
	}
	return nil
}

func runHeights(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return fmt.Errorf("no input has been specified")
	}
	tables, err := readTables(ctx, env.Cfg, env.logger(), src, cmd.String("format"))
	if err != nil {
		return err
	}
	return writeHeights(os.Stdout, tables, newComposer(env.Cfg, env.logger()).ContentWidth())
}

func outputConfiguration(ctx context.Context, _ *cli.Command) error {
	env := envFromContext(ctx)

	data, err := yaml.Marshal(env.Cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func newComposer(cfg *config.Config, log observability.Logger) *document.Composer {
	return document.New(
		document.WithPageSize(cfg.PageSize()),
		document.WithMargins(cfg.Page.Margins),
		document.WithLogger(log))
}

// writeHeights resolves every table at its share of width and prints one line per row.
func writeHeights(w io.Writer, tables []*table.Table, width float64) error {
	for i, t := range tables {
		if t.TotalWidth() <= 0 {
			pct := t.WidthPercentage()
			if pct <= 0 {
				pct = 100
			}
			t.SetTotalWidth(width * pct / 100)
		}
		total := t.CalculateHeights()
		if _, err := fmt.Fprintf(w, "table %d: columns %d, width %g, height %g\n", i, t.Columns(), t.TotalWidth(), total); err != nil {
			return err
		}
		for _, r := range t.Rows() {
			kind := "row"
			if r.Index < t.HeaderRows() {
				kind = "header"
			}
			if _, err := fmt.Fprintf(w, "  %s %d: %g\n", kind, r.Index, r.MaxHeight()); err != nil {
				return err
			}
		}
	}
	return nil
}

// readTables loads every table found in src.
func readTables(ctx context.Context, cfg *config.Config, log observability.Logger, src, format string) ([]*table.Table, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("unable to read input: %w", err)
	}
	if format == "" || format == "auto" {
		format = formatOf(src)
	}
	tables, err := parseTables(ctx, cfg, log, data, format)
	if err != nil {
		return nil, fmt.Errorf("unable to load tables from '%s': %w", src, err)
	}
	log.Debug("tables loaded", observability.String("source", src), observability.String("format", format), observability.Int("tables", len(tables)))
	return tables, nil
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return "html"
	case ".md", ".markdown":
		return "md"
	default:
		return "yaml"
	}
}

func parseTables(ctx context.Context, cfg *config.Config, log observability.Logger, data []byte, format string) ([]*table.Table, error) {
	m, err := cfg.Measurer()
	if err != nil {
		return nil, err
	}
	tableOpts := []table.Option{
		table.WithMeasurer(m),
		table.WithLogger(log),
		table.WithDefaultCell(cfg.DefaultCell()),
	}

	switch format {
	case "html":
		return htmltable.Parse(bytes.NewReader(data),
			htmltable.WithTableOptions(tableOpts...),
			htmltable.WithSetup(cfg.ApplyTable))
	case "md":
		return mdtable.Parse(data,
			mdtable.WithTableOptions(tableOpts...),
			mdtable.WithSetup(cfg.ApplyTable))
	case "yaml":
		defs, err := tabledef.Load(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return tabledef.BuildAll(ctx, defs,
			tabledef.WithTableOptions(tableOpts...),
			tabledef.WithSetup(cfg.ApplyTable),
			tabledef.WithLogger(log))
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
