package commands

import (
	"fmt"

	"git.home.luguber.info/inful/bookpages/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct{}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Println("Starting bookpages build")
	info, err := build.NewService(cfg).Run()
	if err != nil {
		return err
	}
	fmt.Printf("Build completed: %d sections, %d pages\n", info.Counts.Sections, info.Counts.Pages)
	return nil
}
