package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/TrisTech/goupd"
	"github.com/spf13/cobra"

	"github.com/AtOnline/trayhost/cfgpath"
	"github.com/AtOnline/trayhost/iconfile"
	"github.com/AtOnline/trayhost/tray"
)

var (
	shutdownChannel = make(chan struct{})
	shutdownOnce    sync.Once
)

func shutdown() {
	shutdownOnce.Do(func() { close(shutdownChannel) })
}

func setupSignals() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	go func() {
		<-c
		shutdown()
	}()
}

// runTray is replaced in tests.
var runTray = run

type options struct {
	config   string
	icon     string
	tooltip  string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:          "trayhost",
		Short:        "Keep an icon in the windows notification area",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			return runTray(cfg, o.config)
		},
	}
	cmd.Flags().StringVarP(&o.config, "config", "c", cfgpath.GetConfigFile(), "config file")
	cmd.Flags().StringVar(&o.icon, "icon", "", "PNG or BMP file used as icon")
	cmd.Flags().StringVar(&o.tooltip, "tooltip", "", "tooltip text (at most 127 UTF-16 units)")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

func versionString() string {
	return goupd.PROJECT_NAME + " git#" + goupd.GIT_TAG + " released " + goupd.DATE_TAG
}

// load reads the config file and lets explicitly set flags win.
func (o options) load(cmd *cobra.Command) (Config, error) {
	cfg, err := LoadConfig(o.config)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("icon") {
		cfg.Icon = o.icon
	}
	if cmd.Flags().Changed("tooltip") {
		cfg.Tooltip = o.tooltip
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

func defaultTooltip(cfg Config) string {
	if cfg.Tooltip != "" {
		return cfg.Tooltip
	}
	return goupd.PROJECT_NAME + " running (git#" + goupd.GIT_TAG + ")"
}

func loadIcon(cfg Config) (tray.IconImage, error) {
	if cfg.Icon == "" {
		return iconfile.Badge(color.NRGBA{R: 40, G: 167, B: 69, A: 255}, iconfile.Size)
	}
	return iconfile.Load(cfgpath.Resolve(cfg.Icon), iconfile.Size)
}

// apply pushes a reloaded config to the running tray.
func apply(t *tray.Tray, cfg Config) {
	if err := t.SetTooltip(defaultTooltip(cfg)); err != nil {
		logger.Error().Err(err).Msg("failed to update tooltip")
	}
	img, err := loadIcon(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load icon")
		return
	}
	if err := t.SetIcon(img); err != nil {
		logger.Error().Err(err).Msg("failed to update icon")
	}
}

func run(cfg Config, configPath string) error {
	setupSignals()
	if err := setupLogging(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger.Info().Str("version", versionString()).Msg("starting")

	if cfg.AutoUpdate {
		goupd.AutoUpdate(false)
	}
	router := eventRouter{quit: shutdown, snapshot: saveLog}

	icon, err := loadIcon(cfg)
	if err != nil {
		return err
	}

	t, err := tray.Start(
		tray.WithHandler(router.handle),
		tray.WithTooltip(defaultTooltip(cfg)),
		tray.WithIcon(icon),
		tray.WithLogger(logger),
		tray.WithRestartPolicy(cfg.RestartPolicy()),
	)
	if err != nil {
		return err
	}

	if w, err := watchConfig(configPath, func(cfg Config) { apply(t, cfg) }); err != nil {
		logger.Warn().Err(err).Msg("config changes will not be picked up")
	} else {
		defer w.Close()
	}

	select {
	case <-shutdownChannel:
		if err := t.Close(); err != nil && !errors.Is(err, tray.ErrClosed) {
			logger.Warn().Err(err).Msg("failed to remove tray icon")
		}
		<-t.Done()
	case <-t.Done():
	}
	logger.Info().Msg("stopped")

	saveLog()
	return t.Err()
}

// saveLog copies the in-memory log to the cache dir.
func saveLog() {
	dir := cfgpath.GetCacheDir()
	if err := cfgpath.EnsureDir(dir); err != nil {
		logger.Warn().Err(err).Msg("no cache dir for log file")
		return
	}
	path := filepath.Join(dir, "trayhost.log")
	if err := dumpLog(path); err != nil {
		logger.Warn().Err(err).Msg("failed to write log file")
		return
	}
	logger.Info().Str("file", path).Msg("log saved")
}
