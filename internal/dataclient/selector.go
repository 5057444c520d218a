package dataclient

import (
	"context"
	"fmt"
	"io"

	"github.com/mrlokans/qotd/internal/clientconfig"
)

type Mode int

const (
	ModeUnset Mode = iota
	ModeLocal
	ModeRemote
)

func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeRemote:
		return "remote"
	default:
		return "unset"
	}
}

// ActiveMode is the backend a command will talk to. APIURL is empty for local
// mode and for remote mode that still needs configuring.
type ActiveMode struct {
	Mode   Mode
	APIURL string
}

type RemoteResolver interface {
	ResolveRemote() *clientconfig.Remote
}

type RemoteConfigurator interface {
	Configure(ctx context.Context) (*clientconfig.Remote, error)
}

// Backends constructs the concrete clients.
type Backends struct {
	Local  func() (DataClient, error)
	Remote func(remote clientconfig.Remote) (DataClient, error)
}

// Selector picks the backend for a run and memoises the client it built.
// Precedence: mode override, then a configured remote, then local.
type Selector struct {
	resolver     RemoteResolver
	backends     Backends
	configurator RemoteConfigurator
	interactive  func() bool

	override Mode
	cached   DataClient
}

func NewSelector(resolver RemoteResolver, backends Backends, configurator RemoteConfigurator, interactive func() bool) *Selector {
	if interactive == nil {
		interactive = func() bool { return false }
	}
	return &Selector{
		resolver:     resolver,
		backends:     backends,
		configurator: configurator,
		interactive:  interactive,
	}
}

// SetModeOverride records an explicit mode and drops any cached client.
func (s *Selector) SetModeOverride(mode Mode) {
	s.override = mode
	s.dropCached()
}

func (s *Selector) ModeOverride() Mode {
	return s.override
}

func (s *Selector) ResolveActiveMode() ActiveMode {
	if s.override == ModeLocal {
		return ActiveMode{Mode: ModeLocal}
	}

	remote := s.resolver.ResolveRemote()
	if s.override == ModeRemote {
		if remote == nil {
			return ActiveMode{Mode: ModeRemote}
		}
		return ActiveMode{Mode: ModeRemote, APIURL: remote.APIURL}
	}

	if remote != nil {
		return ActiveMode{Mode: ModeRemote, APIURL: remote.APIURL}
	}
	return ActiveMode{Mode: ModeLocal}
}

// EnsureRemoteConfigReady makes sure an explicit remote override has a remote
// to talk to, prompting for one when running interactively.
func (s *Selector) EnsureRemoteConfigReady(ctx context.Context) error {
	if s.override != ModeRemote {
		return nil
	}
	if s.resolver.ResolveRemote() != nil {
		return nil
	}
	if !s.interactive() || s.configurator == nil {
		return ErrRemoteNotConfigured
	}

	if _, err := s.configurator.Configure(ctx); err != nil {
		return fmt.Errorf("remote setup failed: %w", err)
	}
	return nil
}

func (s *Selector) Client() (DataClient, error) {
	if s.cached != nil {
		return s.cached, nil
	}

	var (
		client DataClient
		err    error
	)

	switch s.override {
	case ModeLocal:
		client, err = s.backends.Local()
	case ModeRemote:
		remote := s.resolver.ResolveRemote()
		if remote == nil {
			return nil, ErrRemoteNotReady
		}
		client, err = s.backends.Remote(*remote)
	default:
		if remote := s.resolver.ResolveRemote(); remote != nil {
			client, err = s.backends.Remote(*remote)
		} else {
			client, err = s.backends.Local()
		}
	}
	if err != nil {
		return nil, err
	}

	s.cached = client
	return client, nil
}

func (s *Selector) Close() error {
	return s.dropCached()
}

func (s *Selector) dropCached() error {
	client := s.cached
	s.cached = nil
	if closer, ok := client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
