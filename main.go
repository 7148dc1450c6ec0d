// pawbs is a small physics platformer.
//
// Usage:
//
//	pawbs                       - play from the saved checkpoint
//	pawbs --level path.tmx      - play a specific map
//	pawbs checkpoint            - print the saved checkpoint
//	pawbs checkpoint --clear    - delete the saved checkpoint
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/pawbs/assets"
	"github.com/milk9111/pawbs/level"
	"github.com/milk9111/pawbs/logging"
	"github.com/milk9111/pawbs/prefabs"
	"github.com/milk9111/pawbs/save"
	"github.com/milk9111/pawbs/scene"
)

var (
	flagLevel   string
	flagDebug   bool
	flagWatch   bool
	flagFresh   bool
	flagMonitor bool
	flagClear   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "pawbs",
	Short:        "Run the game",
	SilenceUsage: true,
	RunE:         runGame,
}

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Show or clear the saved checkpoint",
	RunE:  runCheckpoint,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging and physics overlay")
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "TMX map to load (defaults to game.yaml start_level)")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "hot-reload prefabs/*.yaml while running")
	rootCmd.Flags().BoolVar(&flagFresh, "fresh", false, "ignore the saved checkpoint")
	rootCmd.Flags().BoolVarP(&flagMonitor, "monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	checkpointCmd.Flags().BoolVar(&flagClear, "clear", false, "delete the saved checkpoint")

	rootCmd.AddCommand(checkpointCmd)
}

func loadGameSpec(logger *log.Logger) prefabs.GameSpec {
	spec, err := prefabs.LoadSpec[prefabs.GameSpec](prefabs.GameSpecFile)
	if err != nil {
		logger.Warn("using default game spec", "err", err)
	}
	return spec.WithDefaults()
}

func runCheckpoint(cmd *cobra.Command, args []string) error {
	logger := logging.New(os.Stderr, flagDebug)
	spec := loadGameSpec(logger)
	store, err := save.Open(spec.AppName, logger)
	if err != nil {
		return err
	}
	if flagClear {
		return store.Clear()
	}
	cp, err := store.Load()
	if errors.Is(err, save.ErrNoCheckpoint) {
		fmt.Fprintln(cmd.OutOrStdout(), "no checkpoint saved")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s at (%.1f, %.1f)\n", cp.MapPath, cp.X, cp.Y)
	return nil
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := logging.New(os.Stderr, flagDebug)
	spec := loadGameSpec(logger)

	playerSpec, err := prefabs.LoadSpec[prefabs.PlayerSpec](prefabs.PlayerSpecFile)
	if err != nil {
		logger.Warn("using default player spec", "err", err)
	}
	cameraSpec, err := prefabs.LoadSpec[prefabs.CameraSpec](prefabs.CameraSpecFile)
	if err != nil {
		logger.Warn("using default camera spec", "err", err)
	}

	errs, err := logging.OpenErrorLog(spec.ErrorLog)
	if err != nil {
		logger.Warn("error log disabled", "err", err)
	}

	store, err := save.Open(spec.AppName, logger)
	if err != nil {
		logger.Warn("checkpoints will not be saved", "err", err)
	}

	path := flagLevel
	if path == "" {
		path = spec.StartLevel
	}
	fsys, name := assets.Resolve(path)
	m, err := level.Load(fsys, name)
	if err != nil {
		errs.Close()
		return err
	}
	// checkpoints are keyed by the path the player asked for
	m.Path = path

	var watcher *prefabs.Watcher
	if flagWatch {
		watcher, err = prefabs.NewWatcher("prefabs")
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		}
	}

	session := scene.NewSession(scene.Options{
		Map:     m,
		Game:    spec,
		Player:  playerSpec,
		Camera:  cameraSpec,
		Saves:   store,
		Watcher: watcher,
		Fresh:   flagFresh,
		Debug:   flagDebug,
		Logger:  logger,
	})
	session.Start()

	game := NewGame(session, errs, logger)
	defer game.Close()

	if flagMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(spec.Title)

	return ebiten.RunGame(game)
}
