package controllers

import (
	"net/http"

	"github.com/angelmondragon/foodcart/api/responses"
	"github.com/angelmondragon/foodcart/api/validators"
	"github.com/angelmondragon/foodcart/internal/render"
	pkgerrors "github.com/angelmondragon/foodcart/pkg/errors"
	"github.com/angelmondragon/foodcart/pkg/logger"
	"github.com/angelmondragon/foodcart/pkg/pagination"
)

type ordersResponse struct {
	render.OrderHistory
	NextCursor string `json:"next_cursor,omitempty"`
}

// OrdersList returns the order history panel, newest first, paged with
// ?limit= and ?cursor=. It is hidden while logged out.
func OrdersList(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{Limit: limit, Cursor: validators.QueryString(r, "cursor", 128)}

		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		resp := ordersResponse{OrderHistory: render.Build(sess.Store.State()).Orders}
		resp.Orders, resp.NextCursor, err = pagination.Slice(resp.Orders, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
