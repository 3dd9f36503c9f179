package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waabox/snatch/internal/domain"
)

// DefaultClientID is the Azure PowerShell public client, which every tenant
// allows by default. It has no secret.
const DefaultClientID = "1950a258-227b-4e31-a9cf-717495945fc2"

// DefaultResource is the audience the issued tokens are valid for.
const DefaultResource = "https://graph.microsoft.com"

// DefaultAuthority is the Microsoft identity platform login host.
const DefaultAuthority = "https://login.microsoftonline.com"

const (
	deviceCodePath  = "/common/oauth2/devicecode"
	tokenPath       = "/Common/oauth2/token"
	apiVersion      = "1.0"
	deviceCodeGrant = "urn:ietf:params:oauth:grant-type:device_code"
)

// AzureDeviceFlow implements the device code grant against the Azure AD v1 endpoints.
// It makes exactly one request per call; it never polls.
type AzureDeviceFlow struct {
	clientID string
	resource string
	client   *resty.Client
	log      *zap.Logger
}

// Ensure AzureDeviceFlow implements DeviceFlow.
var _ domain.DeviceFlow = (*AzureDeviceFlow)(nil)

// Option configures an AzureDeviceFlow.
type Option func(*AzureDeviceFlow)

// WithLogger sets the logger used for request diagnostics. Tokens are never logged.
func WithLogger(log *zap.Logger) Option {
	return func(f *AzureDeviceFlow) {
		f.log = log
		f.client.SetLogger(log.Sugar())
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(f *AzureDeviceFlow) {
		if d > 0 {
			f.client.SetTimeout(d)
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *AzureDeviceFlow) {
		f.client.SetHeader("User-Agent", ua)
	}
}

// NewAzureDeviceFlow creates an AzureDeviceFlow.
// Pass an empty baseURL to use the real Microsoft login host. Pass a test server URL in tests.
func NewAzureDeviceFlow(clientID, resource, baseURL string, opts ...Option) *AzureDeviceFlow {
	if baseURL == "" {
		baseURL = DefaultAuthority
	}
	f := &AzureDeviceFlow{
		clientID: clientID,
		resource: resource,
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewDefaultAzureDeviceFlow creates an AzureDeviceFlow for the built-in client and resource.
func NewDefaultAzureDeviceFlow(opts ...Option) *AzureDeviceFlow {
	return NewAzureDeviceFlow(DefaultClientID, DefaultResource, "", opts...)
}

// RequestCode asks the device code endpoint for a user code / device code pair.
// The returned UserCode must be shown to the user along with VerificationURL.
func (f *AzureDeviceFlow) RequestCode(ctx context.Context) (domain.DeviceCode, error) {
	body, err := f.post(ctx, deviceCodePath, map[string]string{
		"client_id": f.clientID,
		"resource":  f.resource,
	})
	if err != nil {
		return domain.DeviceCode{}, fmt.Errorf("requesting device code: %w", err)
	}

	var raw struct {
		UserCode        string          `json:"user_code"`
		DeviceCode      string          `json:"device_code"`
		VerificationURL string          `json:"verification_url"`
		ExpiresIn       json.RawMessage `json:"expires_in"`
		Interval        json.RawMessage `json:"interval"`
		Message         string          `json:"message"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.DeviceCode{}, &domain.ParseError{Cause: err}
	}
	if err := requireFields(
		"user_code", raw.UserCode,
		"device_code", raw.DeviceCode,
		"verification_url", raw.VerificationURL,
	); err != nil {
		return domain.DeviceCode{}, err
	}
	return domain.DeviceCode{
		UserCode:        raw.UserCode,
		DeviceCode:      raw.DeviceCode,
		VerificationURL: raw.VerificationURL,
		ExpiresIn:       optionalInt(raw.ExpiresIn),
		Interval:        optionalInt(raw.Interval),
		Message:         raw.Message,
	}, nil
}

// ExchangeToken redeems deviceCode for tokens. It assumes the user has already
// completed sign-in; a pending authorization comes back as an HTTPError.
func (f *AzureDeviceFlow) ExchangeToken(ctx context.Context, deviceCode string) (domain.Token, error) {
	body, err := f.post(ctx, tokenPath, map[string]string{
		"client_id":  f.clientID,
		"grant_type": deviceCodeGrant,
		"code":       deviceCode,
	})
	if err != nil {
		return domain.Token{}, fmt.Errorf("exchanging device code: %w", err)
	}

	var raw struct {
		Resource     string      `json:"resource"`
		ExpiresOn    json.Number `json:"expires_on"`
		AccessToken  string      `json:"access_token"`
		RefreshToken string      `json:"refresh_token"`
		TokenType    string      `json:"token_type"`
		Scope        string      `json:"scope"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Token{}, &domain.ParseError{Cause: err}
	}
	if err := requireFields(
		"resource", raw.Resource,
		"expires_on", raw.ExpiresOn.String(),
		"access_token", raw.AccessToken,
		"refresh_token", raw.RefreshToken,
	); err != nil {
		return domain.Token{}, err
	}
	expiresOn, err := strconv.ParseInt(raw.ExpiresOn.String(), 10, 64)
	if err != nil {
		return domain.Token{}, &domain.ParseError{Field: "expires_on", Cause: err}
	}
	return domain.Token{
		Resource:     raw.Resource,
		ExpiresOn:    domain.ExpiryFromUnix(expiresOn),
		AccessToken:  raw.AccessToken,
		RefreshToken: raw.RefreshToken,
		TokenType:    raw.TokenType,
		Scope:        raw.Scope,
	}, nil
}

// post sends a form encoded POST and returns the body of a 2xx response.
// Any other status becomes a *domain.HTTPError.
func (f *AzureDeviceFlow) post(ctx context.Context, path string, form map[string]string) ([]byte, error) {
	requestID := uuid.NewString()
	log := f.log.With(zap.String("endpoint", path), zap.String("client_request_id", requestID))
	log.Debug("sending request")

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("client-request-id", requestID).
		SetHeader("return-client-request-id", "true").
		SetQueryParam("api-version", apiVersion).
		SetFormData(form).
		Post(path)
	if err != nil {
		return nil, err
	}
	log.Debug("received response", zap.Int("status", resp.StatusCode()), zap.Duration("took", resp.Time()))

	if !resp.IsSuccess() {
		httpErr := &domain.HTTPError{
			StatusCode: resp.StatusCode(),
			Endpoint:   path,
			RequestID:  requestID,
		}
		var oauthErr struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if json.Unmarshal(resp.Body(), &oauthErr) == nil {
			httpErr.Code = oauthErr.Error
			httpErr.Description = oauthErr.Description
		}
		log.Warn("request rejected", zap.Int("status", httpErr.StatusCode), zap.String("error", httpErr.Code))
		return nil, httpErr
	}
	return resp.Body(), nil
}

// requireFields takes name/value pairs and reports the first empty value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return &domain.ParseError{Field: pairs[i], Cause: domain.ErrMissingField}
		}
	}
	return nil
}

// optionalInt reads a number or numeric string. Anything else is 0.
func optionalInt(raw json.RawMessage) int {
	var v any
	if json.Unmarshal(raw, &v) != nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
