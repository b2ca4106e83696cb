package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/httpx"
)

// SDKClient is a stateless client for the tollgate API. It performs single
// calls and leaves token bookkeeping to a Session.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Transport must match the server's AUTH_TOKEN_TRANSPORT.
	Transport httpx.TokenTransport
}

// NewSDKClient creates a client that sends tokens as bearer headers.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Transport: httpx.TransportHeader,
	}
}

// Login exchanges credentials for an access and refresh token.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body, err := marshalBody(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := c.call(ctx, http.MethodPost, "/api/login", body, credential{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new access token. In cookie mode
// the token is sent as the refreshToken cookie, otherwise in the body.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	var (
		body []byte
		cred credential
		err  error
	)
	if c.Transport == httpx.TransportCookie {
		cred = refreshCredential(refreshToken)
	} else {
		body, err = marshalBody(RefreshRequest{RefreshToken: refreshToken})
		if err != nil {
			return nil, err
		}
	}

	var out RefreshResponse
	if err := c.call(ctx, http.MethodPost, "/api/refresh", body, cred, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmTwoFactor submits the emailed token. accessToken is the token
// returned at login; the two-factor route accepts it while the gate is up.
func (c *SDKClient) ConfirmTwoFactor(ctx context.Context, accessToken, token string) error {
	body, err := marshalBody(TwoFactorRequest{Token: token})
	if err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, "/api/2fa", body, accessCredential(accessToken), nil)
}

// Me returns the claims of accessToken as the server sees them.
func (c *SDKClient) Me(ctx context.Context, accessToken string) (*Claims, error) {
	var out Claims
	if err := c.call(ctx, http.MethodGet, "/api/me", nil, accessCredential(accessToken), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
