package controllers

import (
	"net/http"

	"github.com/angelmondragon/foodcart/api/responses"
	"github.com/angelmondragon/foodcart/internal/store"
	"github.com/angelmondragon/foodcart/pkg/logger"
)

// SessionLogin flips the session flag on. There are no credentials.
func SessionLogin(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		if err := sess.Store.Login(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPageResponse(sess, store.Outcome{}))
	}
}

// SessionLogout wipes the session's cart, history and shipping details.
func SessionLogout(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		out, err := sess.Store.Logout(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPageResponse(sess, out))
	}
}

// NoticeFetch returns the notices still on screen.
func NoticeFetch(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, map[string]any{"notices": sess.Store.Notices().All()})
	}
}
