// Package docstore talks to a JSONBin-style remote document store: one
// fixed bin, GET {bin}/latest to read, PUT {bin} to replace, a static
// master key in a header. No partial updates, no history, no versions.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lendingbook/internal/domain/ledger"
)

const masterKeyHeader = "X-Master-Key"

type Client struct {
	baseURL   string
	masterKey string
	httpc     *http.Client
}

func NewClient(baseURL, masterKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		masterKey: masterKey,
		httpc:     &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope is the read response: the stored document sits under "record".
type envelope struct {
	Record json.RawMessage `json:"record"`
}

func (c *Client) fetchRecord(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(masterKeyHeader, c.masterKey)

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("docstore: fetch status %d", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("docstore: bad envelope: %w", err)
	}
	if len(env.Record) == 0 {
		return nil, fmt.Errorf("docstore: empty record")
	}
	return env.Record, nil
}

// Fetch reads the latest stored document. Any transport, status, or
// parse problem comes back as an error; the caller decides whether
// that means falling back or shrugging.
func (c *Client) Fetch(ctx context.Context) (*ledger.Ledger, error) {
	record, err := c.fetchRecord(ctx)
	if err != nil {
		return nil, err
	}
	var l ledger.Ledger
	if err := json.Unmarshal(record, &l); err != nil {
		return nil, fmt.Errorf("docstore: bad record: %w", err)
	}
	return &l, nil
}

// Push replaces the whole remote document. Last writer wins; there is
// no version token to reject a stale overwrite.
func (c *Client) Push(ctx context.Context, l *ledger.Ledger) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(masterKeyHeader, c.masterKey)

	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("docstore: push status %d", res.StatusCode)
	}
	return nil
}

// Usage reports the serialized size of the stored document in bytes,
// for the capacity monitor.
func (c *Client) Usage(ctx context.Context) (int64, error) {
	record, err := c.fetchRecord(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(record)), nil
}
