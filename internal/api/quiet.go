package api

import (
	"context"

	"github.com/etoandroid/firda-carcharge/internal/logger"
	"github.com/shopspring/decimal"
)

// Quiet reproduces the contract of the mobile client this library replaces:
// every failure is logged and collapsed into an absent result (nil, false or
// empty), so callers cannot tell a missing token from a dead network from a
// rejected request. New code should use Client and inspect the error kind.
type Quiet struct {
	c *Client
}

// NewQuiet wraps a Client in the absent-on-failure contract.
func NewQuiet(c *Client) *Quiet {
	return &Quiet{c: c}
}

// Login returns the token payload, or nil on any failure.
func (q *Quiet) Login(ctx context.Context, email, password string) *LoginResult {
	res, err := q.c.Login(ctx, email, password)
	if err != nil {
		logger.ErrorObj("login failed", "error", err.Error())
		return nil
	}
	return res
}

// Register reports whether the account was created.
func (q *Quiet) Register(ctx context.Context, email, password string) bool {
	if err := q.c.Register(ctx, email, password); err != nil {
		logger.ErrorObj("register failed", "error", err.Error())
		return false
	}
	return true
}

// AccountBalance returns the balance, or nil on any failure.
func (q *Quiet) AccountBalance(ctx context.Context) *decimal.Decimal {
	balance, err := q.c.AccountBalance(ctx)
	if err != nil {
		logger.ErrorObj("account balance fetch failed", "error", err.Error())
		return nil
	}
	return &balance
}

// Chargers returns the account's chargers, or nil on any failure.
func (q *Quiet) Chargers(ctx context.Context) []ChargerInfo {
	chargers, err := q.c.Chargers(ctx)
	if err != nil {
		logger.ErrorObj("charger list fetch failed", "error", err.Error())
		return nil
	}
	return chargers
}

// StartCharging reports whether the session was started.
func (q *Quiet) StartCharging(ctx context.Context, chargerID string) bool {
	if err := q.c.StartCharging(ctx, chargerID); err != nil {
		logger.ErrorObj("start charging failed", "error", err.Error())
		return false
	}
	return true
}

// StopCharging returns the stop outcome, or nil on any failure.
func (q *Quiet) StopCharging(ctx context.Context, chargerID string) *StopChargeResult {
	res, err := q.c.StopCharging(ctx, chargerID)
	if err != nil {
		logger.ErrorObj("stop charging failed", "error", err.Error())
		return nil
	}
	return res
}

// ChargingStatus returns the live session status, or nil on any failure.
func (q *Quiet) ChargingStatus(ctx context.Context, chargerID string) *ChargingStatus {
	status, err := q.c.ChargingStatus(ctx, chargerID)
	if err != nil {
		logger.ErrorObj("charging status fetch failed", "error", err.Error())
		return nil
	}
	return status
}

// CreateCheckoutSession returns the payment flow URL, or "" on any failure.
func (q *Quiet) CreateCheckoutSession(ctx context.Context, amount decimal.Decimal) string {
	url, err := q.c.CreateCheckoutSession(ctx, amount)
	if err != nil {
		logger.ErrorObj("checkout session creation failed", "error", err.Error())
		return ""
	}
	return url
}
