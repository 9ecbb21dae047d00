package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/moncal/internal/adapters/server"
	"github.com/evanschultz/moncal/internal/adapters/server/common"
	"github.com/evanschultz/moncal/internal/agenda"
	"github.com/evanschultz/moncal/internal/app"
	"github.com/evanschultz/moncal/internal/calendar"
	"github.com/evanschultz/moncal/internal/config"
	"github.com/evanschultz/moncal/internal/platform"
	"github.com/evanschultz/moncal/internal/taskfile"
	"github.com/evanschultz/moncal/internal/tui"
	"github.com/spf13/cobra"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(ctx context.Context, m tea.Model) program {
	return tea.NewProgram(m, tea.WithContext(ctx))
}

// serveFunc runs the HTTP server; tests replace it.
var serveFunc = server.Run

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run builds the command tree and executes it with fang.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version), fang.WithNotifySignal(os.Interrupt))
}

// globalFlags holds the path and mode flags shared by every command.
type globalFlags struct {
	configPath string
	tasksPath  string
	appName    string
	devMode    bool
}

// monthFlags selects a month; zero means current.
type monthFlags struct {
	year  int
	month int
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}
	var month monthFlags

	root := &cobra.Command{
		Use:   "moncal",
		Short: "Month calendar with per-day tasks",
		Long:  "moncal shows a month grid annotated with tasks from a JSON or TOML task file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags, month, stderr)
		},
	}

	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("MONCAL_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	defaultApp := platform.DefaultAppName
	if envApp := strings.TrimSpace(os.Getenv("MONCAL_APP_NAME")); envApp != "" {
		defaultApp = envApp
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&flags.tasksPath, "tasks", "", "path to the task file (.json or .toml)")
	root.PersistentFlags().StringVar(&flags.appName, "app", defaultApp, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&flags.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")
	addMonthFlags(root, &month)

	root.AddCommand(
		newServeCommand(flags, stderr),
		newAgendaCommand(flags, stdout, stderr),
		newPathsCommand(flags, stdout),
	)
	return root
}

func addMonthFlags(cmd *cobra.Command, month *monthFlags) {
	cmd.Flags().IntVar(&month.year, "year", 0, "year to show (default current)")
	cmd.Flags().IntVar(&month.month, "month", 0, "month 1-12 to show (default current)")
}

// resolve fills zero fields from now and rejects out-of-range months.
func (m monthFlags) resolve(now time.Time) (int, int, error) {
	year, month := m.year, m.month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("--month %d: must be 1..12", month)
	}
	return year, month, nil
}

func newServeCommand(flags *globalFlags, stderr io.Writer) *cobra.Command {
	var httpBind, apiEndpoint, mcpEndpoint string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar over HTTP, MCP, and a web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setupRuntime(flags, stderr, true)
			if err != nil {
				return err
			}
			defer rt.close(stderr)

			cfg := server.Config{
				HTTPBind:      firstNonEmpty(httpBind, rt.cfg.Server.HTTPBind),
				APIEndpoint:   firstNonEmpty(apiEndpoint, rt.cfg.Server.APIEndpoint),
				MCPEndpoint:   firstNonEmpty(mcpEndpoint, rt.cfg.Server.MCPEndpoint),
				ServerName:    rt.appName,
				ServerVersion: version,
			}
			rt.logger.Info("command flow start", "command", "serve")
			err = serveFunc(cmd.Context(), cfg, server.Dependencies{
				Calendar: common.NewAppServiceAdapter(rt.service),
				Pages:    rt.service,
				Logger:   requestLogger{logger: rt.logger},
			})
			if err != nil {
				rt.logger.Error("command flow failed", "command", "serve", "err", err)
				return fmt.Errorf("run server: %w", err)
			}
			rt.logger.Info("command flow complete", "command", "serve")
			return nil
		},
	}
	cmd.Flags().StringVar(&httpBind, "http", "", "listen address (default from config)")
	cmd.Flags().StringVar(&apiEndpoint, "api-endpoint", "", "REST API mount path (default from config)")
	cmd.Flags().StringVar(&mcpEndpoint, "mcp-endpoint", "", "MCP endpoint path (default from config)")
	return cmd
}

func newAgendaCommand(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		month monthFlags
		width int
		raw   bool
		style string
	)
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print one month's tasks as a markdown agenda",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setupRuntime(flags, stderr, false)
			if err != nil {
				return err
			}
			defer rt.close(stderr)

			year, m, err := month.resolve(rt.service.Now())
			if err != nil {
				return err
			}
			layout, err := rt.service.MonthLayout(cmd.Context(), year, m)
			if err != nil {
				return fmt.Errorf("build agenda: %w", err)
			}
			md := agenda.Month(layout, rt.service.Names())
			if !raw {
				md = agenda.NewRenderer(style).Render(md, width) + "\n"
			}
			_, err = io.WriteString(stdout, md)
			return err
		},
	}
	addMonthFlags(cmd, &month)
	cmd.Flags().IntVar(&width, "width", 80, "wrap width for rendered output")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style for rendered output")
	return cmd
}

func newPathsCommand(flags *globalFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config, data, and task file paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{
				AppName: flags.appName,
				DevMode: flags.devMode,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", flags.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", flags.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "tasks: %s\n", paths.TasksPath)
			return nil
		},
	}
}

// runTUI starts the interactive calendar.
func runTUI(ctx context.Context, flags *globalFlags, month monthFlags, stderr io.Writer) error {
	rt, err := setupRuntime(flags, stderr, false)
	if err != nil {
		return err
	}
	defer rt.close(stderr)

	year, m, err := month.resolve(rt.service.Now())
	if err != nil {
		return err
	}

	model := tui.NewModel(rt.service, tui.WithMonth(year, m))
	rt.logger.Info("starting tui program loop", "year", year, "month", m)
	if _, err := programFactory(ctx, model).Run(); err != nil {
		rt.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	rt.logger.Info("command flow complete", "command", "tui")
	return nil
}

// runtime is the resolved configuration and service for one command.
type runtime struct {
	appName    string
	configPath string
	cfg        config.Config
	logger     *runtimeLogger
	service    *app.Service
}

// setupRuntime resolves paths, loads config, and builds the logger and service.
// Console logging is muted when the command owns the terminal.
func setupRuntime(flags *globalFlags, stderr io.Writer, console bool) (*runtime, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: flags.appName,
		DevMode: flags.devMode,
	})
	if err != nil {
		return nil, err
	}

	configPath := firstNonEmpty(flags.configPath, os.Getenv("MONCAL_CONFIG"), paths.ConfigPath)
	tasksOverride := firstNonEmpty(flags.tasksPath, os.Getenv("MONCAL_TASKS"))

	cfg, err := config.Load(configPath, config.Default(paths.TasksPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if tasksOverride != "" {
		cfg.Tasks.Path = tasksOverride
	}

	logger, err := newRuntimeLogger(stderr, flags.appName, flags.devMode, cfg.Logging, time.Now)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	logger.SetConsoleEnabled(console)
	logger.Info("configuration loaded", "config_path", configPath, "tasks_path", cfg.Tasks.Path, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	svc := app.NewService(taskfile.Source{Path: cfg.Tasks.Path}, time.Now, app.ServiceConfig{
		MonthNames:  toNames(cfg.Calendar.MonthNames),
		DayNames:    toNames(cfg.Calendar.DayNames),
		ShowButtons: cfg.Calendar.ShowButtons,
	})
	return &runtime{
		appName:    flags.appName,
		configPath: configPath,
		cfg:        cfg,
		logger:     logger,
		service:    svc,
	}, nil
}

// close releases the dev log file.
func (rt *runtime) close(stderr io.Writer) {
	if err := rt.logger.Close(); err != nil && rt.logger.shouldLogToSink(rt.logger.consoleSink) {
		_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", err)
	}
}

// toNames converts config label overrides.
func toNames(in []config.NameConfig) []calendar.Name {
	if len(in) == 0 {
		return nil
	}
	out := make([]calendar.Name, 0, len(in))
	for _, name := range in {
		out = append(out, calendar.Name{Full: name.Full, Short: name.Short})
	}
	return out
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
