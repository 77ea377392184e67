// Package app is the cobra shell shared by medreq and medreq-server.
//
// Before any command runs, the shell loads .env, reads the config file,
// overlays environment variables and flags onto the options, then completes
// and validates them and finally calls the init hook (logger setup).
//
//	a := app.NewApp(
//	    app.WithName("medreq"),
//	    app.WithOptions(opts),
//	    app.WithInitFunc(initLogger),
//	    app.WithCommands(loginCmd, requestsCmd),
//	)
//	a.Run()
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kart-io/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kart-io/medreq/pkg/component"
)

// RunFunc is a hook without arguments, used for init and root run.
type RunFunc func() error

// App is a configured root command.
type App struct {
	name     string
	short    string
	long     string
	options  component.ConfigOptions
	run      RunFunc
	init     RunFunc
	commands []*cobra.Command
	envFiles []string
	onError  func(w io.Writer, err error)
	viper    *viper.Viper
	cmd      *cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithName names the binary, its config file and its env prefix.
func WithName(name string) Option { return func(a *App) { a.name = name } }

// WithShortDescription sets the one-line help.
func WithShortDescription(s string) Option { return func(a *App) { a.short = s } }

// WithDescription sets the long help.
func WithDescription(s string) Option { return func(a *App) { a.long = s } }

// WithOptions binds opts as persistent flags of the root command.
func WithOptions(opts component.ConfigOptions) Option { return func(a *App) { a.options = opts } }

// WithRunFunc makes the root command runnable.
func WithRunFunc(fn RunFunc) Option { return func(a *App) { a.run = fn } }

// WithInitFunc runs once options are valid, before the command itself.
func WithInitFunc(fn RunFunc) Option { return func(a *App) { a.init = fn } }

// WithCommands adds subcommands.
func WithCommands(cmds ...*cobra.Command) Option {
	return func(a *App) { a.commands = append(a.commands, cmds...) }
}

// WithEnvFiles replaces the default ".env". Missing files are skipped.
func WithEnvFiles(files ...string) Option { return func(a *App) { a.envFiles = files } }

// WithErrorHandler replaces the "Error: ..." line printed by Run.
func WithErrorHandler(fn func(w io.Writer, err error)) Option {
	return func(a *App) { a.onError = fn }
}

// NewApp builds the root command.
func NewApp(opts ...Option) *App {
	a := &App{
		name:     filepath.Base(os.Args[0]),
		envFiles: []string{".env"},
		viper:    viper.New(),
	}
	for _, o := range opts {
		o(a)
	}

	a.cmd = &cobra.Command{
		Use:               a.name,
		Short:             a.short,
		Long:              a.long,
		SilenceUsage:      true,
		SilenceErrors:     a.onError != nil,
		PersistentPreRunE: a.prepare,
	}
	if a.run != nil {
		a.cmd.RunE = func(*cobra.Command, []string) error { return a.run() }
	}

	fs := a.cmd.PersistentFlags()
	fs.SortFlags = true
	fs.StringP("config", "c", "", "Config file (default ./"+a.name+".yaml, ./configs, ~/."+a.name+", /etc/"+a.name+").")
	version.AddFlags(fs)
	if a.options != nil {
		a.options.AddFlags(fs)
	}

	a.cmd.AddCommand(a.commands...)
	return a
}

func (a *App) prepare(cmd *cobra.Command, _ []string) error {
	version.PrintAndExitIfRequested()

	if err := loadEnvFiles(a.envFiles); err != nil {
		return err
	}
	if a.options == nil {
		return a.callInit()
	}
	if err := a.loadConfig(cmd); err != nil {
		return err
	}
	if err := a.options.Complete(); err != nil {
		return err
	}
	if err := a.options.Validate(); err != nil {
		return err
	}
	return a.callInit()
}

func (a *App) callInit() error {
	if a.init == nil {
		return nil
	}
	return a.init()
}

// Execute runs the command tree with explicit arguments and streams.
func (a *App) Execute(args []string, stdout, stderr io.Writer) error {
	a.cmd.SetArgs(args)
	a.cmd.SetOut(stdout)
	a.cmd.SetErr(stderr)
	return a.cmd.Execute()
}

// Run executes os.Args and exits 1 on error.
func (a *App) Run() {
	err := a.cmd.Execute()
	if err == nil {
		return
	}
	if a.onError != nil {
		a.onError(os.Stderr, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

// Command returns the root command.
func (a *App) Command() *cobra.Command { return a.cmd }
