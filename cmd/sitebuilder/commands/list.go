package commands

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// runList prints the eligible documents with their slugs and output paths.
func (c *CLI) runList(g *Global) error {
	cfg, err := config.Load(c.Source, c.Target)
	if err != nil {
		return err
	}
	c.applyLogConfig(g, cfg)

	builder, err := site.NewBuilder(cfg)
	if err != nil {
		return err
	}
	planned, err := builder.Plan()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SOURCE\tSLUG\tOUTPUT")
	for _, p := range planned {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Source, p.Slug, p.Output)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write discovery listing: %w", err)
	}

	slog.Info("Discovery completed", logfields.Source(cfg.ContentRoot()), logfields.Count(len(planned)))
	return nil
}
