package remote

import (
	"context"
	"io"
	"net/http"

	"github.com/mrlokans/qotd/internal/clientconfig"
	"github.com/mrlokans/qotd/internal/dataclient"
)

// Prober checks a remote with an authenticated GET /api/categories.
// Any non-2xx status is reported as a *dataclient.ServerError.
type Prober struct {
	HTTPClient *http.Client
}

func (p Prober) Probe(ctx context.Context, remote clientconfig.Remote) error {
	hc := p.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	c := NewClient(remote, WithHTTPClient(hc))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories", nil)
	if err != nil {
		return err
	}
	req.Header.Set(clientconfig.HeaderAPIKey, c.apiKey)

	resp, err := hc.Do(req)
	if err != nil {
		return &dataclient.TransportError{Op: "GET /api/categories", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &dataclient.ServerError{StatusCode: resp.StatusCode}
	}
	return nil
}
