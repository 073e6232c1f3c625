package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/dropsearch/internal/app"
	"github.com/zjrosen/dropsearch/internal/catalog"
	"github.com/zjrosen/dropsearch/internal/config"
	"github.com/zjrosen/dropsearch/internal/log"
	"github.com/zjrosen/dropsearch/internal/search"
	"github.com/zjrosen/dropsearch/internal/ui/styles"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 response can land in the search input.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// defaultConfigPath is where a config is created when none is found.
const defaultConfigPath = ".dropsearch/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "dropsearch",
	Short:   "A searchable category dropdown for the terminal",
	Long:    `A terminal widget that filters a fixed set of categories as you type, lets you pick one with the mouse, and shows its sub-items in a table.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .dropsearch/config.yaml, then ~/.config/dropsearch/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false,
		"write logs to debug.log and enable the log overlay (ctrl+x)")
	rootCmd.Flags().IntP("width", "w", 0, "widget width in columns")
	rootCmd.Flags().Bool("fuzzy", false, "use fuzzy matching instead of substring")
	rootCmd.Flags().Bool("no-watch", false, "disable reloading when the config file changes")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("ui.width", rootCmd.Flags().Lookup("width"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		if path, ok := findConfig(home); ok {
			viper.SetConfigFile(path)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				viper.SetConfigFile(defaultConfigPath)
				_ = viper.ReadInConfig()
			}
			// If the write fails we run on defaults without a config file
		}
	}

	_ = viper.Unmarshal(&cfg)
	configPath = viper.ConfigFileUsed()
}

// findConfig returns the first existing config in lookup order:
// .dropsearch/config.yaml, then <home>/.config/dropsearch/config.yaml.
func findConfig(home string) (string, bool) {
	candidates := []string{defaultConfigPath}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", "dropsearch", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// applyFlags folds flags that have no config key of their own into c.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	if fuzzy, _ := cmd.Flags().GetBool("fuzzy"); fuzzy {
		c.Search.Mode = string(search.ModeFuzzy)
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		c.WatchConfig = false
	}
}

// startup validates the reference data and config, then applies the theme.
func startup(c config.Config) error {
	if err := catalog.Validate(catalog.All()); err != nil {
		return fmt.Errorf("invalid category set: %w", err)
	}
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(c.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	return nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd, &cfg)
	if err := startup(cfg); err != nil {
		return err
	}

	if cfg.Debug {
		logPath := os.Getenv(config.EnvPrefix + "_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}

		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()

		log.Info(log.CatConfig, "dropsearch starting", "version", version, "config", configPath)
	}

	zone.NewGlobal()

	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Debug:      cfg.Debug,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
