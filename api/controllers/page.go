package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/foodcart/api/middleware"
	"github.com/angelmondragon/foodcart/api/responses"
	"github.com/angelmondragon/foodcart/internal/notice"
	"github.com/angelmondragon/foodcart/internal/render"
	"github.com/angelmondragon/foodcart/internal/schema"
	"github.com/angelmondragon/foodcart/internal/store"
	pkgerrors "github.com/angelmondragon/foodcart/pkg/errors"
	"github.com/angelmondragon/foodcart/pkg/logger"
)

// Sessions opens the store of a page session. *store.Registry implements it.
type Sessions interface {
	Open(ctx context.Context, sessionID string) (*store.Session, error)
}

// pageResponse is what every storefront call returns: the redrawn page, the
// active notices and, when the page should change, where to go.
type pageResponse struct {
	Redirect schema.Page     `json:"redirect,omitempty"`
	View     render.View     `json:"view"`
	Notices  []notice.Notice `json:"notices"`
	Order    *schema.Order   `json:"order,omitempty"`
}

func newPageResponse(sess *store.Session, out store.Outcome) pageResponse {
	return pageResponse{
		Redirect: out.Redirect,
		View:     sess.Page.View(),
		Notices:  sess.Store.Notices().All(),
		Order:    out.Order,
	}
}

// openSession loads the caller's session, writing the error response itself
// when it fails.
func openSession(w http.ResponseWriter, r *http.Request, sessions Sessions, logg *logger.Logger) (*store.Session, bool) {
	if sessions == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session registry unavailable"))
		return nil, false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id is required"))
		return nil, false
	}
	sess, err := sessions.Open(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}
	return sess, true
}
