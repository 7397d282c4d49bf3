package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/bookpages/internal/assemble"
	"git.home.luguber.info/inful/bookpages/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated files"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	cfgPath := root.Config
	tplPath := filepath.Join("templates", "section.html")
	if i.Output != "" {
		cfgPath = filepath.Join(i.Output, "bookpages.yaml")
		tplPath = filepath.Join(i.Output, "templates", "section.html")
	}
	return RunInit(cfgPath, tplPath, i.Force)
}

// RunInit writes the example configuration and the starter page template.
func RunInit(configPath, templatePath string, force bool) error {
	fmt.Println("Initializing bookpages project")

	fmt.Printf("Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		return err
	}

	if _, err := os.Stat(templatePath); err == nil && !force {
		fmt.Printf("Template already exists at %s; leaving it alone\n", templatePath)
		return nil
	}
	fmt.Printf("Writing page template to %s\n", templatePath)
	if err := os.MkdirAll(filepath.Dir(templatePath), 0o750); err != nil {
		return fmt.Errorf("create template directory: %w", err)
	}
	if err := os.WriteFile(templatePath, assemble.DefaultTemplate(), 0o644); err != nil { // #nosec G306 - template is site content
		return fmt.Errorf("write template: %w", err)
	}

	fmt.Println("initialized successfully")
	return nil
}
