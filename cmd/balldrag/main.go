package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/cadence"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/config"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/fsm"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/session"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/store"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	record     bool
	// Headless run parameters
	vx       float64
	vy       float64
	maxTicks int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "balldrag",
		Short: "grab, drag and throw a ball in the terminal",
		RunE:  runPlay,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".balldrag", "episode data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive playground",
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&record, "record", false, "save completed throws to the data directory")
	rootCmd.Flags().BoolVar(&record, "record", false, "save completed throws to the data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one scripted throw headless and save it",
		RunE:  runScripted,
	}
	runCmd.Flags().Float64Var(&vx, "vx", 300, "release velocity x (px/s)")
	runCmd.Flags().Float64Var(&vy, "vy", -200, "release velocity y (px/s)")
	runCmd.Flags().IntVar(&maxTicks, "max-ticks", 100000, "abort after this many ticks")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved episodes",
		RunE:  listEpisodes,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [episode_id]",
		Short: "plot the speed trace of a saved episode",
		Args:  cobra.ExactArgs(1),
		RunE:  replayEpisode,
	}

	exportCmd := &cobra.Command{
		Use:   "export [episode_id]",
		Short: "print episode metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportEpisode,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(playCmd, runCmd, listCmd, replayCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func loadConfig() (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := viz.NewPlayground(cfg, log)
	if err != nil {
		return err
	}

	if record {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		rec := store.NewRecorder(st, log)
		m.Session().Subscribe(rec.OnTransition)
		m.Session().AddStepObserver(rec)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func runScripted(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	clock := cadence.NewManualClock(time.Now())
	bounds := geom.NewRect(cfg.Area.Width, cfg.Area.Height)
	sess, err := session.New(cfg.PhysicsConfig(), session.Options{
		StartPos:   geom.Vec2{X: cfg.Ball.X, Y: cfg.Ball.Y},
		Radius:     cfg.Ball.Radius,
		Bounds:     func() geom.Rect { return bounds },
		Interval:   cfg.Interval(),
		MaxEpisode: cfg.MaxEpisode,
		Clock:      clock,
		Log:        log,
	})
	if err != nil {
		return err
	}

	var savedID string
	rec := store.NewRecorder(st, log)
	sess.Subscribe(rec.OnTransition)
	sess.AddStepObserver(rec)
	sess.Subscribe(func(prev, next fsm.State, trig fsm.Trigger) {
		fmt.Printf("%s -> %s (%s)\n", prev, next, trig)
	})

	// Synthesize a drag whose sampled velocity matches --vx/--vy: two
	// samples 100ms apart, displaced by a tenth of the velocity.
	start := sess.Ball().Pos
	if !sess.OnPointerDown(start) {
		return fmt.Errorf("grab failed at %+v", start)
	}
	t0 := clock.Now()
	sess.OnPointerMove(start, t0)
	sess.OnPointerUp(start.Add(geom.Vec2{X: vx * 0.1, Y: vy * 0.1}), t0.Add(100*time.Millisecond))

	ticks := 0
	for sess.State() == fsm.Thrown && ticks < maxTicks {
		clock.Advance(cfg.Interval())
		sess.Tick()
		ticks++
	}
	if sess.State() != fsm.Idle {
		return fmt.Errorf("ball never came to rest within %d ticks", maxTicks)
	}

	metas, err := st.List()
	if err != nil {
		return err
	}
	if len(metas) > 0 {
		savedID = metas[len(metas)-1].ID
	}
	final := sess.Ball()
	fmt.Printf("rest at (%.1f, %.1f) after %d ticks, episode %s\n",
		final.Pos.X, final.Pos.Y, ticks, savedID)
	return nil
}

func listEpisodes(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	metas, err := st.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no episodes recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tTICKS\tBOUNCES\tRELEASE")
	for _, m := range metas {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%d\t%d\t(%.0f, %.0f)\n",
			m.ID, m.StartedAt.Format(time.RFC3339), m.Duration, m.Ticks,
			m.Bounces, m.ReleaseVX, m.ReleaseVY)
	}
	return w.Flush()
}

func replayEpisode(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.RenderReplay(meta, frames))
	return nil
}

func exportEpisode(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
