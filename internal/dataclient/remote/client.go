// Package remote implements dataclient.DataClient over the qotd HTTP API.
//
// Every call is a single request authenticated with the x-api-key header.
// Requests are never retried.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/qotd/internal/clientconfig"
	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/entities"
)

const DefaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(remote clientconfig.Remote, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(remote.APIURL, "/"),
		apiKey:     remote.APIKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// codeNotFound marks a 404 for a missing resource. Any other 404, such as an
// unknown route behind a wrong base URL, is a *ServerError.
const codeNotFound = "not_found"

// errorBody mirrors the server's error response.
type errorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	op := r.method + " " + r.path

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set(clientconfig.HeaderAPIKey, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &dataclient.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var eb errorBody
	message := ""
	if err := json.Unmarshal(data, &eb); err == nil {
		message = eb.Error
	} else {
		message = strings.TrimSpace(string(data))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && eb.Code == codeNotFound:
		return dataclient.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		field, _ := eb.Details["field"].(string)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &dataclient.ValidationError{Field: field, Message: message}
	default:
		return &dataclient.ServerError{StatusCode: resp.StatusCode, Message: message}
	}
}

func questionPath(id uint) string {
	return "/api/questions/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) CreateQuestion(ctx context.Context, input dataclient.CreateQuestionInput) (*entities.Question, error) {
	var q entities.Question
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/questions", body: input}, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) CreateQuestionsBulk(ctx context.Context, inputs []dataclient.CreateQuestionInput) (*dataclient.BulkCreateResult, error) {
	payload := struct {
		Questions []dataclient.CreateQuestionInput `json:"questions"`
	}{Questions: inputs}

	var result dataclient.BulkCreateResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/questions/bulk", body: payload}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListQuestions(ctx context.Context, filter dataclient.ListQuestionsFilter) ([]entities.Question, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.SeriousnessLevel != 0 {
		query.Set("level", strconv.Itoa(filter.SeriousnessLevel))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	qs := []entities.Question{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/questions", query: query}, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func (c *Client) GetQuestion(ctx context.Context, id uint) (*entities.Question, error) {
	var q entities.Question
	err := c.do(ctx, request{method: http.MethodGet, path: questionPath(id)}, &q)
	if errors.Is(err, dataclient.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id uint, input dataclient.UpdateQuestionInput) (*entities.Question, error) {
	var q entities.Question
	if err := c.do(ctx, request{method: http.MethodPatch, path: questionPath(id), body: input}, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id uint) error {
	return c.do(ctx, request{method: http.MethodDelete, path: questionPath(id)}, nil)
}

func (c *Client) DeleteQuestions(ctx context.Context, ids []uint) (int64, error) {
	// An empty, non-nil selection must not turn into "delete everything".
	if ids != nil && len(ids) == 0 {
		return 0, nil
	}
	payload := struct {
		IDs []uint `json:"ids,omitempty"`
	}{IDs: ids}

	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/questions/delete", body: payload}, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

func (c *Client) GetQuestionCount(ctx context.Context) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/questions/count"}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) GetAllQuestionTexts(ctx context.Context) ([]string, error) {
	var resp struct {
		Texts []string `json:"texts"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/questions/texts"}, &resp); err != nil {
		return nil, err
	}
	if resp.Texts == nil {
		resp.Texts = []string{}
	}
	return resp.Texts, nil
}

func (c *Client) CheckDuplicate(ctx context.Context, text string) (*dataclient.DuplicateCheckResult, error) {
	payload := struct {
		Text string `json:"text"`
	}{Text: text}

	var result dataclient.DuplicateCheckResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/questions/check-duplicate", body: payload}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]entities.Category, error) {
	cats := []entities.Category{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/categories"}, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) ListCategoriesWithCount(ctx context.Context) ([]entities.CategoryWithCount, error) {
	query := url.Values{"withCount": []string{"true"}}

	cats := []entities.CategoryWithCount{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/categories", query: query}, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) GetStats(ctx context.Context) (*entities.Stats, error) {
	var stats entities.Stats
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/stats"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DailyPick fetches the question of the day. It is not part of DataClient.
func (c *Client) DailyPick(ctx context.Context) (*entities.DailyPick, error) {
	var pick entities.DailyPick
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/qotd"}, &pick); err != nil {
		return nil, err
	}
	return &pick, nil
}
