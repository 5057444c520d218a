package clientconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/qotd/internal/output"
	"github.com/mrlokans/qotd/internal/prompt"
)

const DefaultProbeTimeout = 5 * time.Second

// ErrIncompleteRemote is returned when the operator leaves the URL or key empty.
var ErrIncompleteRemote = errors.New("API URL and API key are both required")

// Prober checks that a remote answers authenticated requests.
type Prober interface {
	Probe(ctx context.Context, remote Remote) error
}

// statusCoder is implemented by errors carrying an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// Setup walks the operator through configuring a remote.
type Setup struct {
	Store        *Store
	Prompter     prompt.Prompter
	Prober       Prober
	Out          *output.Printer
	ProbeTimeout time.Duration
}

func (s *Setup) Configure(ctx context.Context) (*Remote, error) {
	existing := s.Store.Load()

	defaultURL := existing.APIURL
	if defaultURL == "" {
		defaultURL = DefaultAPIURL
	}

	apiURL, err := s.Prompter.Input("API URL:", defaultURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read API URL: %w", err)
	}
	apiKey, err := s.Prompter.Input("API Key:", existing.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read API key: %w", err)
	}

	remote := Remote{
		APIURL: strings.TrimSpace(apiURL),
		APIKey: strings.TrimSpace(apiKey),
	}
	if remote.APIURL == "" || remote.APIKey == "" {
		return nil, ErrIncompleteRemote
	}

	s.test(ctx, remote)

	save, err := s.Prompter.Confirm(fmt.Sprintf("Save this config to %s for future use?", FileName), true)
	if err != nil {
		return nil, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if save {
		if err := s.Store.Save(Document{APIURL: remote.APIURL, APIKey: remote.APIKey}); err != nil {
			return nil, err
		}
		s.Out.Success("Config saved to %s", s.Store.Path())
	}

	s.Store.SetSessionRemote(remote)
	return &remote, nil
}

// Check probes remote within the probe timeout.
func (s *Setup) Check(ctx context.Context, remote Remote) error {
	timeout := s.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.Prober.Probe(probeCtx, remote)
}

// DescribeProbeError renders a failed probe for the operator.
func DescribeProbeError(remote Remote, err error) string {
	var sc statusCoder
	if errors.As(err, &sc) {
		return fmt.Sprintf("Server responded with %d", sc.HTTPStatus())
	}
	return fmt.Sprintf("Could not connect to %s: %v", remote.APIURL, err)
}

func (s *Setup) test(ctx context.Context, remote Remote) {
	s.Out.Info("Testing connection...")
	if err := s.Check(ctx, remote); err != nil {
		s.Out.Warn("%s. Config saved anyway.", DescribeProbeError(remote, err))
		return
	}
	s.Out.Success("Connection successful.")
}
