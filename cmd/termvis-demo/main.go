package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/termvis/app"
	"github.com/lixenwraith/termvis/config"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/style"
	"github.com/lixenwraith/termvis/tcellterm"
	"github.com/lixenwraith/termvis/terminal"
)

const appName = "termvis-demo"

// exitCode is set by the root command and passed to os.Exit after cobra returns
var exitCode int

var rootCmd = &cobra.Command{
	Use:          appName,
	Short:        "Interactive demo of the termvis retained-mode terminal UI",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		code, err := run(cfg)
		exitCode = code
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return config.Default().WriteFile(out)
	},
}

func init() {
	f := rootCmd.Flags()
	f.String("config", "", "TOML config file")
	f.String("backend", config.BackendANSI, "Terminal backend: ansi, tcell")
	f.Duration("tick", config.Default().TickDuration(), "Input poll interval")
	f.String("color", config.ColorAuto, "Color mode: auto, truecolor, 256")
	f.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)

	configCmd.Flags().String("out", "", "Write to file instead of stdout")
	rootCmd.AddCommand(configCmd)
}

func main() {
	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTERMVIS CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		if exitCode == 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// resolveConfig loads the config file and applies flags the user set explicitly
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if f.Changed("backend") {
		cfg.Backend, _ = f.GetString("backend")
	}
	if f.Changed("tick") {
		d, _ := f.GetDuration("tick")
		cfg.TickRate = config.Duration(d)
	}
	if f.Changed("color") {
		cfg.ColorMode, _ = f.GetString("color")
	}
	if f.Changed("debug") {
		cfg.Debug, _ = f.GetBool("debug")
	}
	return cfg, cfg.Validate()
}

// screen is a backend that is both the sink and the source
type screen interface {
	app.Sink
	input.Source
	Close() error
}

func openScreen(cfg config.Config) (screen, error) {
	switch cfg.Backend {
	case config.BackendTcell:
		return tcellterm.New(tcellterm.Options{
			Mouse:        cfg.Mouse,
			Paste:        cfg.Paste,
			FocusReports: cfg.FocusReports,
		})
	default:
		opts := terminal.Options{
			ColorMode:    colorMode(cfg.ColorMode),
			Paste:        cfg.Paste,
			FocusReports: cfg.FocusReports,
		}
		if cfg.Mouse {
			opts.Mouse = terminal.MouseModeClick | terminal.MouseModeDrag
		}
		return terminal.New(opts), nil
	}
}

func colorMode(name string) terminal.ColorMode {
	switch name {
	case config.Color256:
		return terminal.ColorMode256
	case config.ColorTrueColor:
		return terminal.ColorModeTrueColor
	default:
		return terminal.DetectColorMode()
	}
}

func resolveTheme(t config.Theme) (Theme, error) {
	pair := func(p config.ColorPair) (style.Style, error) {
		fg, bg, err := p.Colors()
		return style.New().WithFg(fg).WithBg(bg), err
	}
	var th Theme
	var err error
	if th.Normal, err = pair(t.Normal); err != nil {
		return th, err
	}
	if th.Focus, err = pair(t.Focus); err != nil {
		return th, err
	}
	th.Status, err = pair(t.Status)
	return th, err
}

func run(cfg config.Config) (int, error) {
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("starting: backend=%s tick=%s color=%s", cfg.Backend, cfg.TickDuration(), cfg.ColorMode)

	theme, err := resolveTheme(cfg.Theme)
	if err != nil {
		return 1, err
	}

	scr, err := openScreen(cfg)
	if err != nil {
		return 1, err
	}
	defer scr.Close()

	d := newDemo(theme)
	a := app.New(d.root, scr, scr,
		app.WithTickRate(cfg.TickDuration()),
		app.WithLogger(log.Default()),
		app.WithTickHook(d.tick),
	)

	start := time.Now()
	code, err := a.Run()
	log.Printf("exit code %d after %s", code, time.Since(start).Round(time.Millisecond))
	return code, err
}
