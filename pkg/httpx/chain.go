package httpx

import "net/http"

// Middleware wraps a handler. A middleware that does not call the wrapped
// handler ends the chain; whatever it wrote is the response.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that mws[0] runs first and h runs last.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// StepFunc is a pipeline step that receives the next handler explicitly.
type StepFunc func(w http.ResponseWriter, r *http.Request, next http.Handler)

// Step adapts a StepFunc into a Middleware.
func Step(fn StepFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fn(w, r, next)
		})
	}
}

// Success is the terminal handler used by Compose.
var Success http.Handler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, nil)
})

// Compose builds a handler from steps alone; if every step passes, the
// request is answered with a bare success envelope.
func Compose(steps ...Middleware) http.Handler {
	return Chain(Success, steps...)
}
