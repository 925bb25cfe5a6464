package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/gridkit"
	"github.com/iw2rmb/gridkit/grid"
	"github.com/iw2rmb/gridkit/internal/config"
	"github.com/iw2rmb/gridkit/internal/prefs"
	"github.com/iw2rmb/gridkit/internal/store"
	"github.com/iw2rmb/gridkit/table"
)

// Config holds the command line options.
type Config struct {
	DB         string
	Table      string
	ConfigFile string
	Editable   bool
	PageSize   int
	ExportDir  string
	Debug      bool
	LogFile    string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "gridkit-demo --db FILE --table NAME",
		Short: "Browse and edit a SQLite table in a terminal data grid",
		Example: `  # Browse a table
  gridkit-demo --db shop.db --table orders

  # Edit with the column kinds from a config file
  gridkit-demo --db shop.db --table orders --config gridkit.toml --editable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().StringVar(&cfg.DB, "db", "", "SQLite database file")
	rootCmd.Flags().StringVar(&cfg.Table, "table", "", "Table to show")
	rootCmd.Flags().StringVarP(&cfg.ConfigFile, "config", "c", "", "Grid configuration (default: gridkit.toml next to the database)")
	rootCmd.Flags().BoolVarP(&cfg.Editable, "editable", "e", false, "Allow edit mode")
	rootCmd.Flags().IntVar(&cfg.PageSize, "page-size", 0, "Paginate with this page size")
	rootCmd.Flags().StringVar(&cfg.ExportDir, "export-dir", ".", "Directory receiving exports")
	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&cfg.LogFile, "log-file", "", "Log file (default: under the XDG state directory)")
	_ = rootCmd.MarkFlagRequired("db")
	_ = rootCmd.MarkFlagRequired("table")

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion(gridkit.VersionTag()),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	logger, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	s, err := store.Open(cfg.DB, cfg.Table)
	if err != nil {
		return err
	}
	defer s.Close()

	gcfg := grid.Config{
		Style:     grid.DefaultStyle(),
		Logger:    logger,
		Clipboard: systemClipboard{},
	}

	cols, err := s.Columns()
	if err != nil {
		return err
	}
	path := cfg.ConfigFile
	if path == "" {
		path = config.Find(filepath.Dir(cfg.DB))
	}
	if path != "" {
		file, err := config.Load(path)
		if err != nil {
			return err
		}
		file.Apply(&gcfg)
		cols = file.TableColumns()
		logger.Debug("loaded grid configuration", "path", path, "columns", len(cols))
	}
	if cfg.Editable {
		gcfg.Editable = true
	}
	if cfg.PageSize > 0 {
		gcfg.Paginate = true
		gcfg.PageSizes = append([]int{cfg.PageSize}, gcfg.PageSizes...)
	}

	if p, err := prefs.DefaultPath(); err != nil {
		logger.Warn("preferences disabled", "error", err)
	} else {
		gcfg.Storage = prefs.NewFileStorage(p)
	}

	s.SetCells(gcfg.Cells)
	rows, err := s.Load(cols)
	if err != nil {
		return err
	}
	tbl := table.New(cols, rows, table.Options{})

	app := newApp(tbl, s, cols, gcfg, cfg.ExportDir, logger)
	defer app.grid.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func setupLogging(cfg Config) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	path := cfg.LogFile
	if path == "" {
		p, err := xdg.StateFile("gridkit/demo.log")
		if err != nil {
			return nil, nil, fmt.Errorf("resolve log file: %w", err)
		}
		path = p
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	// The terminal belongs to the grid, so logs only go to the file.
	handler := tint.NewHandler(f, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    true,
	})
	return slog.New(handler), func() { f.Close() }, nil
}

type systemClipboard struct{}

func (systemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }
