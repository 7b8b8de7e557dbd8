package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/simdup/internal/config"
)

// InitCommand represents the init command.
type InitCommand struct {
	force      bool
	configPath string
}

// NewInitCommand creates a new init command.
func NewInitCommand() *InitCommand {
	return &InitCommand{configPath: ".simdup.toml"}
}

// CreateCobraCommand creates the cobra command for configuration initialization.
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize simdup configuration file",
		Long: `Initialize a simdup configuration file in the current directory.

Creates a .simdup.toml file with the clustering defaults and comments
explaining each setting.

Examples:
  # Create .simdup.toml in current directory
  simdup init

  # Create config file with custom name
  simdup init --config myconfig.toml

  # Overwrite existing configuration file
  simdup init --force`,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&i.configPath, "config", "c", ".simdup.toml", "Configuration file path")
	return cmd
}

func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	configPath, err := filepath.Abs(i.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !i.force {
		return fmt.Errorf("configuration file already exists: %s\nUse --force to overwrite", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(configPath, []byte(config.DefaultConfigTOML), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	relPath, err := filepath.Rel(".", configPath)
	if err != nil {
		relPath = configPath
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", relPath)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTo customize simdup for your project:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  1. Edit %s\n", relPath)
	fmt.Fprintf(cmd.OutOrStdout(), "  2. Uncomment and modify settings as needed\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  3. Run 'simdup cluster --config %s ...'\n", relPath)

	return nil
}

// NewInitCmd creates and returns the init cobra command.
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
