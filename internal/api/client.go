package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etoandroid/firda-carcharge/internal/config"
	"github.com/etoandroid/firda-carcharge/internal/keychain"
	"github.com/etoandroid/firda-carcharge/pkg/httpclient"
	"github.com/shopspring/decimal"
)

// Client talks to the CarCharge backend. Every call is a single request and
// response round trip: a fresh transport is minted per call, bearer tokens are
// read from the keychain on every call, and nothing is cached or retried.
type Client struct {
	baseURL   string
	keychain  keychain.Store
	transport httpclient.Factory
}

// New builds a Client from configuration and a keychain.
func New(cfg *config.Config, kc keychain.Store) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		keychain: kc,
		transport: httpclient.NewFactory(httpclient.Options{
			Timeout:            cfg.HTTPTimeout,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		}),
	}
}

// Login exchanges credentials for a token payload. It does not touch the
// keychain; persisting the token is the caller's business.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, "login", http.MethodPost, "login", "", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account. Success is signalled purely by status code.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, "register", http.MethodPost, "register", "", credentials{Email: email, Password: password}, nil)
}

// AccountBalance returns the account's current balance.
func (c *Client) AccountBalance(ctx context.Context) (decimal.Decimal, error) {
	const op = "account-balance"
	token, err := c.bearerToken(op)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var out balanceResponse
	if err := c.do(ctx, op, http.MethodGet, "api/Payment/get-account-balance", token, nil, &out); err != nil {
		return decimal.Decimal{}, err
	}
	if out.AccountBalance == nil {
		return decimal.Decimal{}, &Error{Op: op, Kind: KindDecode, Err: fmt.Errorf("response missing accountBalance")}
	}
	return *out.AccountBalance, nil
}

// Chargers lists the chargers owned by the account.
func (c *Client) Chargers(ctx context.Context) ([]ChargerInfo, error) {
	const op = "list-chargers"
	token, err := c.bearerToken(op)
	if err != nil {
		return nil, err
	}

	var out []ChargerInfo
	if err := c.do(ctx, op, http.MethodGet, "api/Charge/chargers", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StartCharging begins a session on the given charger.
func (c *Client) StartCharging(ctx context.Context, chargerID string) error {
	const op = "start-charging"
	token, err := c.bearerToken(op)
	if err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodPost, "api/Charge/start", token, chargerRequest{ChargerID: chargerID}, nil)
}

// StopCharging ends the session on the given charger and reports the new
// balance.
func (c *Client) StopCharging(ctx context.Context, chargerID string) (*StopChargeResult, error) {
	const op = "stop-charging"
	token, err := c.bearerToken(op)
	if err != nil {
		return nil, err
	}

	var out StopChargeResult
	if err := c.do(ctx, op, http.MethodPost, "api/Charge/stop", token, chargerRequest{ChargerID: chargerID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChargingStatus reads the live status of a session on the given charger.
func (c *Client) ChargingStatus(ctx context.Context, chargerID string) (*ChargingStatus, error) {
	const op = "charging-status"
	token, err := c.bearerToken(op)
	if err != nil {
		return nil, err
	}

	var out ChargingStatus
	path := "api/Charge/status/" + url.PathEscape(chargerID)
	if err := c.do(ctx, op, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCheckoutSession asks the backend for a payment flow URL topping up the
// account by amount.
func (c *Client) CreateCheckoutSession(ctx context.Context, amount decimal.Decimal) (string, error) {
	const op = "create-checkout-session"
	token, err := c.bearerToken(op)
	if err != nil {
		return "", err
	}

	var out checkoutResponse
	body := checkoutRequest{Amount: json.Number(amount.String())}
	if err := c.do(ctx, op, http.MethodPost, "api/Payment/create-checkout-session", token, body, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", &Error{Op: op, Kind: KindDecode, Err: fmt.Errorf("response missing url")}
	}
	return out.URL, nil
}

// bearerToken reads the stored access token. An absent or empty token
// short-circuits the operation before any request is made.
func (c *Client) bearerToken(op string) (string, error) {
	token, err := c.keychain.Get(keychain.AccessTokenKey)
	if err != nil {
		return "", &Error{Op: op, Kind: KindNoToken, Err: err}
	}
	if strings.TrimSpace(token) == "" {
		return "", &Error{Op: op, Kind: KindNoToken}
	}
	return token, nil
}

// do performs one round trip. The transport is scoped to this call; there is
// no connection reuse across operations.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out interface{}) error {
	req := c.transport.NewClient().R().SetContext(ctx)

	if token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	resp, err := req.Execute(method, c.baseURL+"/"+path)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if resp.IsError() {
		return &Error{
			Op:     op,
			Kind:   KindStatus,
			Status: resp.StatusCode(),
			Err:    fmt.Errorf("backend response: %s", bodySnippet(resp.Body())),
		}
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return &Error{Op: op, Kind: KindDecode, Err: err}
		}
	}
	return nil
}

// bodySnippet truncates an error response body for logging.
func bodySnippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
