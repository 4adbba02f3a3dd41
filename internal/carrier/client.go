// Package carrier is the HTTP client for the third-party shipping carrier:
// OAuth client-credentials tokens (separate shipping and tracking scopes),
// shipment creation, address resolution and shipment tracking.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zayrajewels/zayra-golang/internal/config"
)

// Scope selects which credential pair a call authenticates with. The two
// scopes are distinct carrier products and must never be interchanged.
type Scope string

const (
	ScopeShipping Scope = "shipping"
	ScopeTracking Scope = "tracking"
)

// shipmentTimeout bounds the shipment-creation call. The other carrier
// endpoints run without an explicit timeout.
const shipmentTimeout = 30 * time.Second

// Client talks to the carrier API. Construct it once with the process
// config and share it; it is safe for concurrent use.
type Client struct {
	cfg        config.CarrierConfig
	httpClient *http.Client
	shipClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg config.CarrierConfig, logger zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		shipClient: &http.Client{Timeout: shipmentTimeout},
		logger:     logger.With().Str("component", "carrier").Logger(),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// token performs the client-credentials grant for the given scope.
func (c *Client) token(ctx context.Context, scope Scope) (string, error) {
	creds := c.cfg.Shipping
	if scope == ScopeTracking {
		creds = c.cfg.Tracking
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Scope: scope, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Scope: scope, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthError{Scope: scope, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Str("scope", string(scope)).
			Str("body", string(body)).Msg("carrier token request rejected")
		return "", &AuthError{Scope: scope, Err: fmt.Errorf("token endpoint returned %d", resp.StatusCode)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", &AuthError{Scope: scope, Err: err}
	}
	if tok.AccessToken == "" {
		return "", &AuthError{Scope: scope, Err: fmt.Errorf("token response missing access_token")}
	}
	return tok.AccessToken, nil
}

// post sends an authorized JSON request and returns the raw response body.
// Non-2xx responses are logged with the full body and classified.
func (c *Client) post(ctx context.Context, client *http.Client, scope Scope, path string, payload any) ([]byte, error) {
	accessToken, err := c.token(ctx, scope)
	if err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RequestError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().Int("status", resp.StatusCode).Str("path", path).
			Str("request", string(reqBody)).Str("response", string(respBody)).
			Msg("carrier request failed")
		return nil, newRequestError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// CreateShipment submits a shipment and extracts the master tracking number
// and the first package's label URL.
func (c *Client) CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*ShipmentResult, error) {
	body, err := c.post(ctx, c.shipClient, ScopeShipping, "/ship/v1/shipments", req)
	if err != nil {
		return nil, err
	}

	var resp createShipmentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ResponseError{Reason: "shipment response is not valid JSON: " + err.Error()}
	}
	if len(resp.Output.TransactionShipments) == 0 {
		return nil, &ResponseError{Reason: "shipment response has no transaction shipments"}
	}

	shipment := resp.Output.TransactionShipments[0]
	if shipment.MasterTrackingNumber == "" {
		return nil, &ResponseError{Reason: "shipment response missing masterTrackingNumber"}
	}

	result := &ShipmentResult{
		TrackingNumber: shipment.MasterTrackingNumber,
		ServiceType:    shipment.ServiceType,
		ServiceName:    shipment.ServiceName,
	}
	if len(shipment.PieceResponses) > 0 && len(shipment.PieceResponses[0].PackageDocuments) > 0 {
		result.LabelURL = shipment.PieceResponses[0].PackageDocuments[0].URL
	}
	if result.LabelURL == "" {
		return nil, &ResponseError{Reason: "shipment response missing label document URL"}
	}

	c.logger.Info().Str("trackingNumber", result.TrackingNumber).Msg("carrier shipment created")
	return result, nil
}

// ResolveAddress runs the carrier's address resolution for client display
// before checkout. Uses the shipping scope.
func (c *Client) ResolveAddress(ctx context.Context, req *ResolveAddressRequest) (*ResolvedAddress, error) {
	body, err := c.post(ctx, c.httpClient, ScopeShipping, "/address/v1/addresses/resolve", req)
	if err != nil {
		return nil, err
	}

	var resp resolveAddressResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ResponseError{Reason: "address resolution response is not valid JSON: " + err.Error()}
	}
	if len(resp.Output.ResolvedAddresses) == 0 {
		return nil, &ResponseError{Reason: "address resolution response has no resolved addresses"}
	}
	return &resp.Output.ResolvedAddresses[0], nil
}

// Track fetches detailed scans for a tracking number and normalizes the
// carrier's event shapes into a single flat list. Uses the tracking scope.
func (c *Client) Track(ctx context.Context, trackingNumber string) (*TrackInfo, error) {
	req := &trackRequest{
		IncludeDetailedScans: true,
		TrackingInfo: []trackingInfoEntry{
			{TrackingNumberInfo: trackingNumberInfo{TrackingNumber: trackingNumber}},
		},
	}

	body, err := c.post(ctx, c.httpClient, ScopeTracking, "/track/v1/trackingnumbers", req)
	if err != nil {
		return nil, err
	}

	var resp trackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ResponseError{Reason: "tracking response is not valid JSON: " + err.Error()}
	}
	if len(resp.Output.CompleteTrackResults) == 0 {
		return nil, &ResponseError{Reason: "tracking response has no track results"}
	}

	return normalizeTrackResult(trackingNumber, resp.Output.CompleteTrackResults[0]), nil
}

// normalizeTrackResult flattens scan events regardless of whether the
// carrier nested them under trackResults[0] or put them at the top level.
// An empty event list is a valid result ("no scans yet").
func normalizeTrackResult(trackingNumber string, node trackResultNode) *TrackInfo {
	events := node.ScanEvents
	latest := node.LatestStatusDetail
	if len(node.TrackResults) > 0 {
		inner := node.TrackResults[0]
		if len(events) == 0 {
			events = inner.ScanEvents
		}
		if latest == nil {
			latest = inner.LatestStatusDetail
		}
	}

	info := &TrackInfo{
		TrackingNumber: trackingNumber,
		Events:         make([]TrackEvent, 0, len(events)),
	}
	if latest != nil {
		info.LatestStatus = latest.Description
	}

	for _, ev := range events {
		event := TrackEvent{
			Date:        ev.Date,
			Description: ev.EventDescription,
			Location: TrackLocation{
				City:    ev.ScanLocation.City,
				State:   ev.ScanLocation.StateOrProvinceCode,
				Country: ev.ScanLocation.CountryCode,
			},
		}
		if ev.ExceptionDescription != "" {
			exc := ev.ExceptionDescription
			event.Exception = &exc
		}
		info.Events = append(info.Events, event)
	}
	return info
}
