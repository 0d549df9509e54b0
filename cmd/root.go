package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timetags/internal/config"
	"github.com/Tiliavir/timetags/internal/logging"
	"github.com/Tiliavir/timetags/internal/storage"
	"github.com/Tiliavir/timetags/internal/timecalc"
	"github.com/Tiliavir/timetags/internal/tracker"
	"github.com/Tiliavir/timetags/internal/validate"
)

// Exit codes.
const (
	ExitUsage   = 1
	ExitStorage = 2
)

// exitError carries the process exit code for Execute.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func storageErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: ExitStorage, err: err}
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	dataDir    string
	backend    string

	cfg       config.Config
	store     storage.Store
	watchPath string
	tracker   *tracker.Tracker
	logCloser io.Closer
	now       func() time.Time
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "timetags",
		Short: "timetags – a tag-based time tracker",
		Long: `timetags records time entries with coloured tags and reports hours
per day, week or month. Data lives in ~/.timetags/ unless TIMETAGS_HOME or
--data-dir says otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default <data dir>/config.yaml)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Data directory (default $TIMETAGS_HOME or ~/.timetags)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend: file, sqlite, memory")

	root.AddCommand(entryCmd(a))
	root.AddCommand(tagCmd(a))
	root.AddCommand(listCmd(a))
	root.AddCommand(reportCmd(a))
	root.AddCommand(exportCmd(a))
	root.AddCommand(watchCmd(a))
	root.AddCommand(seedCmd(a))
	root.AddCommand(clearCmd(a))
	return root, a
}

// execute runs root and releases the store and log file, also when the
// command failed.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, a := newRootCmd()
	err := execute(ctx, root, a)
	if err == nil {
		return
	}

	var verr *validate.Error
	if errors.As(err, &verr) {
		for _, msg := range verr.Result.Errors {
			fmt.Fprintln(os.Stderr, msg)
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}

	var ee *exitError
	if errors.As(err, &ee) {
		stop()
		os.Exit(ee.code)
	}
	stop()
	os.Exit(ExitUsage)
}

// open loads config, starts logging and reads the snapshot.
func (a *app) open(ctx context.Context) error {
	base := a.dataDir
	if base == "" {
		var err error
		base, err = storage.BaseDir()
		if err != nil {
			return storageErr(err)
		}
	}

	cfgPath := a.configPath
	if cfgPath == "" {
		cfgPath = config.Path(base)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Storage.Backend = a.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	dir := cfg.DataDir(base)
	if a.dataDir != "" {
		dir = a.dataDir
	}

	level, _ := cfg.LogLevel()
	closer, err := logging.Init(dir, level)
	if err != nil {
		logging.Discard()
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	} else {
		a.logCloser = closer
	}

	store, watchPath, err := storage.Open(ctx, cfg.Storage.Backend, dir)
	if err != nil {
		return storageErr(err)
	}
	a.store, a.watchPath = store, watchPath

	weekStart, _ := cfg.WeekStart()
	resolver := timecalc.Resolver{Location: time.Local, WeekStart: weekStart}
	a.tracker = tracker.New(storage.NewRepository(store), storage.GenerateID, tracker.WithResolver(resolver))
	if err := a.tracker.Load(); err != nil {
		return storageErr(err)
	}
	slog.Debug("opened", "backend", cfg.Storage.Backend, "dir", dir)
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.logCloser != nil {
		logging.Discard()
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	return storageErr(errors.Join(errs...))
}
