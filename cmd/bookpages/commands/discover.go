package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/bookpages/internal/logfields"
	"git.home.luguber.info/inful/bookpages/internal/site"
)

// DiscoverCmd implements the 'discover' command: walk the book and report the
// tree without writing anything.
type DiscoverCmd struct {
	Section string `short:"s" help:"Limit the listing to one section label"`
}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tree, err := site.Build(cfg.Book)
	if err != nil {
		return err
	}

	shown := 0
	for _, sect := range tree.Sections {
		if d.Section != "" && sect.Label != d.Section {
			continue
		}
		shown++
		slog.Info("Section discovered",
			logfields.Section(sect.Label),
			slog.String("slug", sect.Slug),
			logfields.Count(len(sect.Docs)))
		for _, doc := range sect.Docs {
			slog.Info("  Page discovered",
				logfields.Path(doc.RelPath),
				slog.String("title", doc.Title),
				logfields.URL(doc.URLPath))
		}
	}
	if d.Section != "" && shown == 0 {
		return fmt.Errorf("section %q not found in %s", d.Section, cfg.Book)
	}

	slog.Info("Discovery completed", slog.Int("sections", shown))
	return nil
}
