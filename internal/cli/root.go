package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wildguard/internal/config"
	"wildguard/internal/layers"
	"wildguard/internal/logging"
	"wildguard/internal/overlay"
	"wildguard/internal/tui"
	"wildguard/internal/viewport"
)

// NewRootCmd returns the wildguard command tree. Running it without a
// subcommand opens the interactive map.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "wildguard [data-file]",
		Short:         "Terminal map for wildlife conservation teams",
		Long:          "wildguard shows parks, tracked animals, drones, sensors and alert zones on an interactive map.\nHover for GPS readouts, click to lock reference points, drag in pan mode.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, v, cfgFile, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./wildguard.yaml or ./configs/wildguard.yaml)")
	flags.String("log-file", "", "append JSON logs to this file (logs are discarded otherwise)")
	flags.String("log-level", "info", "log level: debug|info|warn|error")
	rootCmd.Flags().Bool("panning", false, "start in pan mode")
	rootCmd.Flags().String("data-dir", "", "directory listed in the file sidebar")

	_ = v.BindPFlag("log.file", flags.Lookup("log-file"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("input.panning", rootCmd.Flags().Lookup("panning"))
	_ = v.BindPFlag("data.dir", rootCmd.Flags().Lookup("data-dir"))

	rootCmd.AddCommand(newMeasureCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func runMap(cmd *cobra.Command, v *viper.Viper, cfgFile string, args []string) error {
	envFiles := config.LoadEnv(nil)
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.WithFields(logrus.Fields{
		"config": v.ConfigFileUsed(),
		"env":    envFiles,
		"bounds": cfg.Map.Bounds,
		"zoom":   fmt.Sprintf("%g..%g", cfg.Map.Zoom.Min, cfg.Map.Zoom.Max),
	}).Info("starting wildguard")

	vc, err := newController(cfg, logger)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Controller: vc,
		Data:       overlay.Sample(),
		Dir:        cfg.Data.Dir,
		Panning:    cfg.Input.Panning,
		Logger:     logging.WithComponent(logger, "tui"),
	}
	path := cfg.Data.Path
	if len(args) > 0 {
		path = args[0]
	}
	var m tui.Model
	if path != "" {
		m = tui.NewWithPath(opts, path)
	} else {
		m = tui.New(opts)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		logger.WithError(err).Error("map exited")
		return err
	}
	logger.WithField("locked", len(vc.Locks())).Info("wildguard stopped")
	return nil
}

func newController(cfg *config.Config, logger logrus.FieldLogger) (*viewport.Controller, error) {
	tr, err := viewport.NewTransform(cfg.Map.Bounds, cfg.ViewportOptions()...)
	if err != nil {
		return nil, err
	}
	policy, err := layers.NewPolicy(cfg.Layers.Thresholds, layers.DefaultRules)
	if err != nil {
		return nil, err
	}
	return viewport.NewController(tr,
		viewport.WithPolicy(policy),
		viewport.WithLogger(logging.WithComponent(logger, "viewport")),
	), nil
}
