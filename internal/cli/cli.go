package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vk/mathviz/internal/app"
	"github.com/vk/mathviz/internal/catalog"
)

// EnvPrefix is the prefix of the environment variables the CLI reads.
const EnvPrefix = "MATHVIZ"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError is returned for bad flags or arguments.
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// NewRootCommand builds the mathviz command tree. Command output goes to
// outW; logs go to the command's error stream. When modules is empty the
// compiled-in modules are used.
func NewRootCommand(outW io.Writer, modules ...catalog.Module) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "mathviz",
		Short: "mathviz: browse interactive math visualization modules",
		Long: `mathviz catalogs interactive math visualization modules by syllabus strand
and topic, tracks where you are, and keeps each module's working state while
you move between them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "Path to the mathviz.hcl settings and syllabus file.")
	pf.String("store", "", "Path to the SQLite file that keeps the navigation position. Empty keeps it in memory.")
	pf.String("lua-modules", "", "Directory of .lua modules to load.")
	pf.Int("history-limit", 0, "Maximum navigation history entries (default 50).")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	_ = v.BindPFlag("config", pf.Lookup("config"))
	_ = v.BindPFlag("store", pf.Lookup("store"))
	_ = v.BindPFlag("lua_modules", pf.Lookup("lua-modules"))
	_ = v.BindPFlag("history_limit", pf.Lookup("history-limit"))
	_ = v.BindPFlag("log_format", pf.Lookup("log-format"))
	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))

	// MATHVIZ_STORE, MATHVIZ_LOG_LEVEL, etc.
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	env := &environment{viper: v, modules: modules}
	root.AddCommand(
		newListCommand(env),
		newStatsCommand(env),
		newShowCommand(env),
		newOpenCommand(env),
		newBrowseCommand(env),
	)
	return root
}

// environment carries what every subcommand needs to build the app.
type environment struct {
	viper   *viper.Viper
	modules []catalog.Module
}

// config translates bound flags and environment into an app.Config.
func (e *environment) config() (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		SettingsPath:   e.viper.GetString("config"),
		StorePath:      e.viper.GetString("store"),
		LuaModulesPath: e.viper.GetString("lua_modules"),
		HistoryLimit:   e.viper.GetInt("history_limit"),
		LogFormat:      strings.ToLower(e.viper.GetString("log_format")),
		LogLevel:       strings.ToLower(e.viper.GetString("log_level")),
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

// withApp builds the application, runs fn and closes the application.
func (e *environment) withApp(cmd *cobra.Command, fn func(a *app.App) error) (err error) {
	cfg, err := e.config()
	if err != nil {
		return err
	}
	a, err := app.NewApp(cmd.ErrOrStderr(), cfg, e.modules...)
	if err != nil {
		return fmt.Errorf("failed to start mathviz: %w", err)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(a)
}
