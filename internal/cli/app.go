// Package cli implements the qotd command line.
//
// Data commands go through a dataclient.Selector, so the same command talks
// to the local SQLite database or to a remote qotd server depending on the
// --local / --remote flags and the configured remote.
package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mrlokans/qotd/internal/clientconfig"
	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/dataclient/local"
	"github.com/mrlokans/qotd/internal/dataclient/remote"
	"github.com/mrlokans/qotd/internal/output"
	"github.com/mrlokans/qotd/internal/prompt"
)

// Options customise an App. Zero values select the process defaults.
type Options struct {
	Version string
	Commit  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ConfigPath is the .qotdrc location; defaults to the working directory.
	ConfigPath string
	Env        clientconfig.EnvSource

	// Interactive reports whether prompts may be shown.
	Interactive func() bool
	HTTPClient  *http.Client
	Now         func() time.Time
}

// App holds everything a command needs for one process run.
type App struct {
	Version string
	Commit  string

	Out         *output.Printer
	Prompter    prompt.Prompter
	Store       *clientconfig.Store
	Setup       *clientconfig.Setup
	Selector    *dataclient.Selector
	Interactive func() bool
	Now         func() time.Time

	stdin      io.Reader
	httpClient *http.Client

	// global flags
	dbPath      string
	forceLocal  bool
	forceRemote bool
}

func NewApp(opts Options) *App {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Env == nil {
		opts.Env = clientconfig.NewEnvSource()
	}
	if opts.Interactive == nil {
		opts.Interactive = prompt.StdinIsInteractive
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	out := output.New()
	out.Out = opts.Stdout
	out.Err = opts.Stderr

	a := &App{
		Version:     opts.Version,
		Commit:      opts.Commit,
		Out:         out,
		Prompter:    prompt.NewTerminal(opts.Stdin, opts.Stdout),
		Store:       clientconfig.NewStore(opts.ConfigPath, opts.Env),
		Interactive: opts.Interactive,
		Now:         opts.Now,
		stdin:       opts.Stdin,
		httpClient:  opts.HTTPClient,
		dbPath:      defaultDatabasePath(),
	}

	a.Setup = &clientconfig.Setup{
		Store:    a.Store,
		Prompter: a.Prompter,
		Prober:   remote.Prober{HTTPClient: opts.HTTPClient},
		Out:      a.Out,
	}

	a.Selector = dataclient.NewSelector(a.Store, dataclient.Backends{
		Local:  a.newLocalClient,
		Remote: a.newRemoteClient,
	}, a.Setup, a.Interactive)

	return a
}

// defaultDatabasePath honours DATABASE_PATH like the server does.
func defaultDatabasePath() string {
	return config.NewConfig().Database.Path
}

func (a *App) newLocalClient() (dataclient.DataClient, error) {
	return local.New(a.dbPath)
}

func (a *App) newRemoteClient(r clientconfig.Remote) (dataclient.DataClient, error) {
	var opts []remote.Option
	if a.httpClient != nil {
		opts = append(opts, remote.WithHTTPClient(a.httpClient))
	}
	return remote.NewClient(r, opts...), nil
}

// modeFlag is the global flag reproducing the current mode override.
func (a *App) modeFlag() string {
	switch a.Selector.ModeOverride() {
	case dataclient.ModeLocal:
		return "--local"
	case dataclient.ModeRemote:
		return "--remote"
	}
	return ""
}

// client resolves the backend for a data command and announces it.
// With quiet set the banner goes to stderr so stdout stays machine-readable.
func (a *App) client(ctx context.Context, quiet bool) (dataclient.DataClient, error) {
	if err := a.Selector.EnsureRemoteConfigReady(ctx); err != nil {
		return nil, err
	}

	active := a.Selector.ResolveActiveMode()
	banner := a.Out
	if quiet {
		banner = &output.Printer{Out: a.Out.Err, Err: a.Out.Err, NoColor: a.Out.NoColor}
	}
	banner.ModeBanner(active.Mode.String(), active.APIURL)

	return a.Selector.Client()
}
