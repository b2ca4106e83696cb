/*
Package authsdk is the client for the tollgate API.

# SDKClient vs Session

SDKClient performs single stateless calls. Session sits on top of it and
owns the signed-in user:

	client := authsdk.NewSDKClient("http://localhost:8080")
	session, err := authsdk.NewSession(client, authsdk.NewMemoryStorage())

	resp, err := session.Login(ctx, "user@example.com", "password")
	if resp.TwoFactorRequired {
		// The user follows the emailed link, or pastes the token:
		err = session.ConfirmTwoFactor(ctx, token)
	}

	posts, err := session.ListPosts(ctx)

# Expired Tokens

The server answers 498 when the access token has expired. Session.Do (and
every helper built on it) then refreshes once and replays the request. If
the replay is answered with 498 again, or the refresh fails, the call
returns ErrUnableToRefresh and the session is left as it was; signing out
is up to the caller. Concurrent requests that expire together share one
refresh.

# Storage

Tokens and the current user are written to a Storage at login, refresh and
logout, and read back by NewSession. MemoryStorage lasts for the process;
BoltStorage keeps state in a bbolt file between runs:

	store, err := authsdk.OpenBoltStorage(filepath.Join(dir, "session.db"))
	defer store.Close()
	session, err := authsdk.NewSession(client, store)

# Errors

Server failures are returned as *APIError carrying the status code and the
server's message, which is safe to show to a user. The predefined values
(ErrRefreshMismatch, ErrTwoFactorRequired, ...) match with errors.Is.
Transport failures are returned as *NetworkError and are never retried.

# Cookie Transport

Servers configured with AUTH_TOKEN_TRANSPORT=cookie read tokens from the
token and refreshToken cookies instead of the Authorization header and
request body. Set SDKClient.Transport to httpx.TransportCookie to match.
*/
package authsdk
