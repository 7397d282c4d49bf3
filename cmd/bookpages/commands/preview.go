package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/bookpages/internal/preview"
)

// PreviewCmd starts a local server watching the book directory.
type PreviewCmd struct {
	Addr string `name:"addr" default:"localhost:1316" help:"Address the preview server listens on."`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return preview.NewServer(cfg).Run(sigctx, p.Addr)
}
