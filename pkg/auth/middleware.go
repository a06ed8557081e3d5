package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/tabshare/pkg/httpx"
	"github.com/ghuser/tabshare/pkg/logger"
)

const sessionName = "tabshare_session"
const sessionUserIDKey = "user_id"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the UserID, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or lacks a valid user_id.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userIDStr, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userIDStr == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SignIn writes the login cookie for the given user. Called by the identity
// login and signup handlers after credentials have been verified.
func SignIn(store sessions.Store, w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes with an error but still yields
		// a usable new session; overwrite it.
		session, _ = store.New(r, sessionName)
	}
	session.Values[sessionUserIDKey] = userID.String()
	return session.Save(r, w)
}

// SignOut expires the login cookie. Order-session memberships are untouched:
// logging back in resumes whatever tabs the user was part of.
func SignOut(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	delete(session.Values, sessionUserIDKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
