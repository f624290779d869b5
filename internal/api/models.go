package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Wire types for the CarCharge backend. Monetary amounts are decimals end to
// end; only meter readings (energy, power) are floats.

// LoginResult is the token payload returned by a successful login.
type LoginResult struct {
	TokenType    string `json:"tokenType"`
	AccessToken  string `json:"accessToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	RefreshToken string `json:"refreshToken"`
}

// ChargerInfo identifies one charger owned by the account.
type ChargerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChargingStatus is a point-in-time reading of an active session.
type ChargingStatus struct {
	EnergyKWh        float64         `json:"kwh"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	PowerUsage       float64         `json:"powerUsage"`
}

// StopChargeResult reports the outcome of ending a session.
type StopChargeResult struct {
	Message    string          `json:"message"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// credentials is the request body for login and register.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// chargerRequest is the request body for start/stop.
type chargerRequest struct {
	ChargerID string `json:"chargerId"`
}

// checkoutRequest is the request body for creating a checkout session. The
// amount goes on the wire as a bare JSON number with its exact decimal digits.
type checkoutRequest struct {
	Amount json.Number `json:"amount"`
}

// balanceResponse wraps the account balance; the field is a pointer so a
// response that omits it is distinguishable from a zero balance.
type balanceResponse struct {
	AccountBalance *decimal.Decimal `json:"accountBalance"`
}

// checkoutResponse wraps the payment-provider redirect URL.
type checkoutResponse struct {
	URL string `json:"url"`
}
