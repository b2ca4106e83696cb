package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/tollgate/pkg/httpx"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// credential is a token to attach to a request. Where it goes depends on
// the client's transport.
type credential struct {
	cookie string // cookie name in cookie mode
	value  string
}

func accessCredential(token string) credential {
	return credential{cookie: httpx.CookieAccessToken, value: token}
}

func refreshCredential(token string) credential {
	return credential{cookie: httpx.CookieRefreshToken, value: token}
}

// doRequest sends body (may be nil) as JSON and attaches cred, if set.
// Transport failures come back as *NetworkError.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body []byte,
	cred credential,
) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if cred.value != "" {
		switch c.Transport {
		case httpx.TransportCookie:
			req.AddCookie(&http.Cookie{Name: cred.cookie, Value: cred.value})
		default:
			req.Header.Set("Authorization", "Bearer "+cred.value)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// call performs a request and decodes the envelope's data into out (may be
// nil). Any non-2xx status or success:false comes back as *APIError.
func (c *SDKClient) call(
	ctx context.Context,
	method, path string,
	body []byte,
	cred credential,
	out any,
) error {
	resp, err := c.doRequest(ctx, method, path, body, cred)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, out)
}

func decodeEnvelope(resp *http.Response, out any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	env := Envelope[json.RawMessage]{}
	decodeErr := json.Unmarshal(bodyBytes, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return parseErrorResponse(resp.StatusCode, env.Message, decodeErr)
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// parseErrorResponse falls back to the status text when the body was not an
// envelope (a proxy error page, for instance).
func parseErrorResponse(status int, message string, decodeErr error) *APIError {
	if decodeErr != nil || message == "" {
		message = http.StatusText(status)
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", status)
		}
	}
	if status >= 200 && status <= 299 {
		status = http.StatusInternalServerError
	}
	return &APIError{StatusCode: status, Message: message}
}

func marshalBody(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return b, nil
}
