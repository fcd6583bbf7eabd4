package vnfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Store syncs documents with a spreadsheet exposed through a webhook: POST
// replaces the remote copy, GET returns it. The remote is a dumb mirror, the
// last writer wins.
type Store struct {
	URL    string
	Client *http.Client // defaults to http.DefaultClient

	now func() time.Time // test hook
}

// NewStore creates a store for the given webhook endpoint.
func NewStore(endpoint string) *Store {
	return &Store{URL: endpoint, Client: http.DefaultClient, now: time.Now}
}

func (st *Store) client() *http.Client {
	if st.Client != nil {
		return st.Client
	}
	return http.DefaultClient
}

// Push uploads doc to the remote sheet. The call is fire and forget: a
// reachable endpoint is enough, a non-2xx status is logged and ignored
// because sheet webhooks routinely answer redirects and opaque errors on
// writes that actually landed.
func (st *Store) Push(ctx context.Context, doc any) error {
	if st.URL == "" {
		return errors.New("sync: no webhook URL configured")
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("sync: cannot encode document: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, st.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	// text/plain avoids the CORS preflight that sheet webhooks reject
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	resp, err := st.client().Do(req)
	if err != nil {
		return fmt.Errorf("sync: push failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("sync: push answered %s (ignored)", resp.Status)
	}
	return nil
}

// Pull downloads the remote document into out. A cache-busting timestamp is
// appended because webhook GETs sit behind an aggressive edge cache.
func (st *Store) Pull(ctx context.Context, out any) error {
	if st.URL == "" {
		return errors.New("sync: no webhook URL configured")
	}
	u, err := url.Parse(st.URL)
	if err != nil {
		return fmt.Errorf("sync: bad webhook URL: %w", err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(st.clock().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := st.client().Do(req)
	if err != nil {
		return fmt.Errorf("sync: pull failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sync: pull answered %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sync: cannot decode remote document: %w", err)
	}
	return nil
}

// PushAndReconcile pushes doc, waits for the sheet to settle, then pulls the
// remote copy back into out so the caller sees the state the remote actually
// kept.
func (st *Store) PushAndReconcile(ctx context.Context, doc, out any, delay time.Duration) error {
	if err := st.Push(ctx, doc); err != nil {
		return err
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return st.Pull(ctx, out)
}

func (st *Store) clock() time.Time {
	if st.now != nil {
		return st.now()
	}
	return time.Now()
}
