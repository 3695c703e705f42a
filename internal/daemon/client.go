package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/werrors"
)

const (
	retryInterval = 500 * time.Millisecond
	retryCount    = 2

	requestsPerSecond = 20
)

// Client talks to the remote node over its JSON HTTP API. Connections are
// kept alive between requests; the scheme is auto-detected on the first
// successful request when not given.
type Client struct {
	logger  *zap.Logger
	metrics RPCMetrics

	httpClient *http.Client
	limiter    ratelimit.Limiter
	userAgent  string

	mu        sync.Mutex
	address   string
	scheme    string
	connected bool
	notifier  Notifier
}

// Option configures a Client.
type Option func(*Client)

// WithScheme pins the transport scheme instead of auto-detecting.
func WithScheme(scheme string) Option {
	return func(c *Client) { c.scheme = scheme }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) { c.userAgent = agent }
}

// WithNotifier registers the connect/disconnect edge receiver.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// NewClient constructs a node client for host:port address.
func NewClient(address string, requestTimeout time.Duration, metrics RPCMetrics, logger *zap.Logger, opts ...Option) (*Client, error) {
	if metrics == nil {
		return nil, fmt.Errorf("rpc metrics is required")
	}

	c := &Client{
		logger:  logger.Named("daemon"),
		metrics: metrics,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: ratelimit.New(requestsPerSecond),
		address: address,

		// The first failed request therefore emits Disconnect without a
		// prior Connect. Preserved from the original behavior.
		connected: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Swap points the client at a different node and restarts scheme detection.
func (c *Client) Swap(address string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.address = address
	c.scheme = ""
	c.connected = true
	c.logger.Info("node swapped", zap.String("address", address))
}

// Info fetches chain and peer state.
func (c *Client) Info(ctx context.Context) (info Info, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("info", err, started) }()

	err = c.getWithRetry(ctx, "/info", &info)
	return info, err
}

// FeeInfo fetches the node operator fee.
func (c *Client) FeeInfo(ctx context.Context) (fee FeeInfo, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("fee", err, started) }()

	err = c.getWithRetry(ctx, "/fee", &fee)
	return fee, err
}

// WalletSyncData requests the next batch of blocks above the most recent
// checkpoint the node recognizes. Not retried internally: the pipeline owns
// backoff through its adaptive batch size.
func (c *Client) WalletSyncData(ctx context.Context, checkpoints []crypto.Hash, startHeight, startTimestamp, count uint64, skipCoinbase bool) (res SyncResult, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("sync", err, started) }()

	req := syncRequest{
		Count:                    count,
		Checkpoints:              checkpoints,
		SkipCoinbaseTransactions: skipCoinbase,
		Height:                   startHeight,
		Timestamp:                startTimestamp,
	}
	err = c.post(ctx, "/sync", req, &res)
	return res, err
}

// GlobalIndexesForRange fetches global output indexes for every transaction
// in [start, end).
func (c *Client) GlobalIndexesForRange(ctx context.Context, start, end uint64) (out map[crypto.Hash][]uint64, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("indexes", err, started) }()

	var entries []indexesEntry
	if err = c.getWithRetry(ctx, fmt.Sprintf("/indexes/%d/%d", start, end), &entries); err != nil {
		return nil, err
	}

	out = make(map[crypto.Hash][]uint64, len(entries))
	for _, e := range entries {
		out[e.Hash] = e.Indexes
	}
	return out, nil
}

// CancelledTransactions returns the subset of hashes the node knows neither
// from the mempool nor from a block.
func (c *Client) CancelledTransactions(ctx context.Context, hashes []crypto.Hash) (notFound []crypto.Hash, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("transaction_status", err, started) }()

	var res txStatusResponse
	if err = c.post(ctx, "/transaction/status", hashes, &res); err != nil {
		return nil, err
	}
	return res.NotFound, nil
}

// RandomOutputsByAmount fetches ring decoy candidates, sorted ascending by
// global index so the real output's position is not inferable.
func (c *Client) RandomOutputsByAmount(ctx context.Context, amounts []uint64, count uint64) (outs []RandomOutputsByAmount, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("indexes_random", err, started) }()

	req := randomIndexesRequest{Amounts: amounts, Count: count}
	if err = c.post(ctx, "/indexes/random", req, &outs); err != nil {
		return nil, err
	}
	for i := range outs {
		sort.Slice(outs[i].Outputs, func(a, b int) bool {
			return outs[i].Outputs[a].Index < outs[i].Outputs[b].Index
		})
	}
	return outs, nil
}

// SubmitTransaction sends a prepared raw transaction. The node answers 202
// on acceptance, or a coded error body.
func (c *Client) SubmitTransaction(ctx context.Context, rawHex string) (err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("transaction_submit", err, started) }()

	body, status, err := c.do(ctx, http.MethodPost, "/transaction", []byte(rawHex))
	if err != nil {
		return err
	}
	if status == http.StatusAccepted {
		return nil
	}

	var rejection submitErrorResponse
	if jsonErr := json.Unmarshal(body, &rejection); jsonErr != nil {
		return werrors.Newf(werrors.MalformedResponse, "submit status %d", status)
	}
	return werrors.Newf(werrors.DaemonSyncError, "node rejected transaction (%d): %s",
		rejection.Error.Code, rejection.Error.Message)
}

// getWithRetry performs an idempotent GET with a short constant-backoff
// retry, the same policy shape used for light HTTP APIs elsewhere.
func (c *Client) getWithRetry(ctx context.Context, path string, out any) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), retryCount), ctx)

	operation := func() error {
		body, status, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return backoff.Permanent(werrors.Newf(werrors.TransportError, "%s returned status %d", path, status))
		}
		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(werrors.Newf(werrors.MalformedResponse, "%s: %v", path, err))
		}
		return nil
	}

	notify := func(err error, next time.Duration) {
		c.logger.Debug("request failed, retrying",
			zap.String("path", path), zap.Duration("next", next), zap.Error(err))
	}

	return backoff.RetryNotify(operation, policy, notify)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}
	body, status, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusAccepted {
		return werrors.Newf(werrors.TransportError, "%s returned status %d", path, status)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return werrors.Newf(werrors.MalformedResponse, "%s: %v", path, err)
	}
	return nil
}

// do issues a single request, handling scheme detection and the
// connect/disconnect edge latch.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	c.limiter.Take()

	c.mu.Lock()
	address := c.address
	scheme := c.scheme
	c.mu.Unlock()

	schemes := []string{scheme}
	if scheme == "" {
		schemes = []string{"https", "http"}
	}

	var lastErr error
	for _, candidate := range schemes {
		body, status, err := c.roundTrip(ctx, method, candidate+"://"+address+path, payload)
		if err != nil {
			lastErr = err
			continue
		}

		c.mu.Lock()
		if c.scheme == "" {
			c.scheme = candidate
			c.logger.Info("detected node scheme", zap.String("scheme", candidate))
		}
		wasConnected := c.connected
		c.connected = true
		notifier := c.notifier
		c.mu.Unlock()

		if !wasConnected && notifier != nil {
			notifier.NotifyConnect()
		}
		return body, status, nil
	}

	c.mu.Lock()
	wasConnected := c.connected
	c.connected = false
	notifier := c.notifier
	c.mu.Unlock()

	if wasConnected && notifier != nil {
		notifier.NotifyDisconnect()
	}
	return nil, 0, werrors.Newf(werrors.TransportError, "%s %s: %v", method, path, lastErr)
}

func (c *Client) roundTrip(ctx context.Context, method, url string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil && !strings.HasSuffix(url, "/transaction") {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
