package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hakeys/config"
	"hakeys/dispatch"
	"hakeys/doctor"
)

var version = "dev"

var (
	cfgFlag     string
	backendFlag string
	logDirFlag  string
	background  bool
)

var rootCmd = &cobra.Command{
	Use:   "hakeys",
	Short: "Bind global hotkeys to Home Assistant REST calls",
	Long: `hakeys reads a small YAML/JSON config (server + shortcuts) and binds
OS-level hotkeys to REST calls against a Home Assistant server.
Running with no subcommand starts the hotkey listener.`,
	Version:      version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListen()
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured shortcuts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath())
		if err != nil {
			return err
		}
		fmt.Println("Configured shortcuts:")
		for _, sc := range cfg.Shortcuts {
			fmt.Println(" - " + formatShortcut(sc))
		}
		return nil
	},
}

func formatShortcut(sc config.Shortcut) string {
	return fmt.Sprintf("%s -> %s %s (%s)", sc.Name, sc.Method, sc.Endpoint, sc.Hotkey)
}

var triggerCmd = &cobra.Command{
	Use:   "trigger <name>",
	Short: "Trigger a shortcut by name and exit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath())
		if err != nil {
			return err
		}
		sc, err := cfg.Shortcut(args[0])
		if err != nil {
			return err
		}
		// A failed best-effort dispatch is still a normal exit; Trigger
		// already reported it. Non-zero exits are for config/lookup errors.
		_ = dispatch.New(cfg.Server).Trigger(cmd.Context(), sc, "cli")
		return nil
	},
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Start the hotkey listener",
	RunE: func(cmd *cobra.Command, args []string) error {
		if background {
			return startBackground()
		}
		return runListen()
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run system diagnostics and exit",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(doctor.Run(configPath(), viper.GetString("backend")))
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a background listener",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopBackground()
	},
}

func init() {
	cobra.OnInitialize(loadDotenv)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFlag, "config", "c", "", "config file (YAML or JSON, default: config.yaml)")
	pf.StringVarP(&backendFlag, "backend", "b", "global", "hotkey backend: global (X11/macOS/Windows) or evdev (headless Linux)")
	pf.StringVar(&logDirFlag, "log-dir", "", "log directory (default: OS cache dir)")

	viper.SetEnvPrefix("hakeys")
	viper.AutomaticEnv()
	viper.BindPFlag("config", pf.Lookup("config"))
	viper.BindPFlag("backend", pf.Lookup("backend"))

	listenCmd.Flags().BoolVar(&background, "background", false, "run detached and write hakeys.pid")

	rootCmd.AddCommand(listCmd, triggerCmd, listenCmd, doctorCmd, stopCmd)
}

// loadDotenv picks up HAKEYS_TOKEN and friends from a local .env, if any.
func loadDotenv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}
}

func configPath() string {
	if p := viper.GetString("config"); p != "" {
		return p
	}
	return config.DefaultPath()
}

func run() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
