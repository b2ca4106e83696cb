package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// StatusTokenExpired tells clients to refresh their access token and retry.
// It is the only status clients recover from automatically.
const StatusTokenExpired = 498

// Messages written by the middleware in this package.
const (
	MsgMissingToken       = "Missing token"
	MsgTokenExpired       = "Token expired"
	MsgInvalidToken       = "Invalid token"
	MsgTwoFactorRequired  = "2 factor authentication is required, check your email"
	MsgUnauthorized       = "Unauthorized"
	MsgInternal           = "Internal server error"
	MsgTooManyRequests    = "Too many requests. Please try again later."
	MsgInvalidRequestBody = "Invalid request body"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes {success:true,data}.
func WriteSuccess(w http.ResponseWriter, code int, data any) {
	WriteJSON(w, code, Envelope{Success: true, Data: data})
}

// WriteMessage writes {success:true,message}.
func WriteMessage(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Envelope{Success: true, Message: message})
}

// WriteFailure writes {success:false,message}.
func WriteFailure(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Envelope{Success: false, Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// FirstField returns the first space-delimited field of s, or "".
func FirstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
