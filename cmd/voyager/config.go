package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-voyager/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a run would load, after the config search
order. --difficulty is recorded as the preset; preset scaling is applied
when a run starts, so the output can be saved as a custom config.

Examples:
  voyager config
  voyager config --difficulty hard
  voyager config --defaults > ~/.voyager/configs/voyager.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return nil
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if preset != "" {
		cfg.Difficulty.Preset = preset
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
