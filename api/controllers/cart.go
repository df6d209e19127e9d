package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/foodcart/api/responses"
	"github.com/angelmondragon/foodcart/api/validators"
	"github.com/angelmondragon/foodcart/internal/catalog"
	"github.com/angelmondragon/foodcart/internal/store"
	pkgerrors "github.com/angelmondragon/foodcart/pkg/errors"
	"github.com/angelmondragon/foodcart/pkg/logger"
)

// addItemRequest carries the attributes of the clicked menu entry. When only
// the id is sent the entry is looked up in the menu.
type addItemRequest struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Price  string `json:"price"`
	Image  string `json:"image"`
	BuyNow bool   `json:"buyNow"`
}

type changeQuantityRequest struct {
	Change *int `json:"change" validate:"required"`
}

// CartFetch returns the current page for the session.
func CartFetch(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, newPageResponse(sess, store.Outcome{}))
	}
}

// CartAddItem handles "Add to cart" and "Buy now" on a menu entry.
func CartAddItem(sessions Sessions, menu catalog.Menu, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attrs := catalog.Item{ID: payload.ID, Name: payload.Name, Price: payload.Price, Image: payload.Image}
		if payload.Name == "" && payload.Price == "" {
			found, ok := menu.Find(payload.ID)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found").
					WithDetails(map[string]string{"id": payload.ID}))
				return
			}
			attrs = found
		}
		item, err := attrs.LineItem()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		out, err := sess.Store.AddFromCatalog(r.Context(), item, payload.BuyNow)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPageResponse(sess, out))
	}
}

// CartChangeQuantity handles the +/- buttons of a cart line.
func CartChangeQuantity(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload changeQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		if err := sess.Store.ChangeQuantity(r.Context(), itemID, *payload.Change); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPageResponse(sess, store.Outcome{}))
	}
}

// CartRemoveItem handles the remove button of a cart line.
func CartRemoveItem(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		if err := sess.Store.RemoveItem(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPageResponse(sess, store.Outcome{}))
	}
}

// CartCheckout handles the cart panel's checkout button.
func CartCheckout(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		out, err := sess.Store.BeginCheckout(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPageResponse(sess, out))
	}
}

func itemIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "itemId"))
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return id, nil
}
