// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client is the thin HTTP client cmd's subcommands share: every
// subcommand talks to a running node's submission HTTP surface rather than
// linking against the ledger packages directly, the same separation the
// teacher draws between its xsvm CLI and the node it drives.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/findora-network/ledgercore/txs"
)

// Client is a thin wrapper around net/http talking to one node's base URL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client with a sane request timeout.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: 15 * time.Second}}
}

// SubmitTransaction posts tx to /submit_transaction and returns the
// returned handle.
func (c *Client) SubmitTransaction(tx txs.Transaction) (txs.Handle, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("client: encoding transaction: %w", err)
	}
	resp, err := c.HTTP.Post(c.BaseURL+"/submit_transaction", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("client: submit_transaction: %s", string(respBody))
	}
	return txs.Handle(respBody), nil
}

// TxnStatus polls /txn_status/{handle} and decodes the JSON status payload
// into v (typically a map[string]interface{} or a local mirror struct).
func (c *Client) TxnStatus(handle txs.Handle, v interface{}) error {
	resp, err := c.HTTP.Get(fmt.Sprintf("%s/txn_status/%s", c.BaseURL, handle))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("client: txn_status: %s", string(body))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// Get issues a GET against path and decodes the JSON response into v.
func (c *Client) Get(path string, v interface{}) error {
	resp, err := c.HTTP.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("client: %s: %s", path, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// GetText issues a GET against path and returns the raw response body,
// for routes like /abar_memo that reply with plain text.
func (c *Client) GetText(path string) (string, error) {
	resp, err := c.HTTP.Get(c.BaseURL + path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("client: %s: %s", path, string(body))
	}
	return string(body), nil
}
