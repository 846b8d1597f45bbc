package api

import (
	"net/http"
	"time"

	"github.com/alshuwaie/qat-ledger-api/internal/utils"
)

// Logger writes one line per request with method, path and duration.
func (app *application) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		app.infoLog.Printf("%s %s %s", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

// AuthUser rejects requests without a valid bearer token and stores the
// signed-in user on the request context for the handlers.
func (app *application) AuthUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := utils.GetBearerToken(r)
		if err != nil {
			utils.Unauthorized(w, "missing or malformed authorization header")
			return
		}

		user, err := utils.ParseJWT(token, app.config.JWT)
		if err != nil {
			utils.Unauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}
