package controllers

import (
	"net/http"

	"github.com/angelmondragon/foodcart/api/responses"
	"github.com/angelmondragon/foodcart/api/validators"
	"github.com/angelmondragon/foodcart/internal/schema"
	"github.com/angelmondragon/foodcart/pkg/logger"
)

// checkoutRequest is the shipping form. Every field must be present; none is
// format-checked.
type checkoutRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Address  string `json:"address" validate:"required"`
	PinCode  string `json:"pinCode" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

func (c checkoutRequest) shipping() schema.ShippingDetails {
	return schema.ShippingDetails{
		FullName: c.FullName,
		Address:  c.Address,
		PinCode:  c.PinCode,
		Phone:    c.Phone,
	}
}

// CheckoutFetch loads the checkout page: order summary plus the prefilled form.
// An empty cart redirects to the storefront.
func CheckoutFetch(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		out, err := sess.Store.EnterCheckout()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPageResponse(sess, out))
	}
}

// CheckoutSubmit places the order.
func CheckoutSubmit(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, ok := openSession(w, r, sessions, logg)
		if !ok {
			return
		}
		out, err := sess.Store.Commit(r.Context(), payload.shipping())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := http.StatusOK
		if out.Order != nil {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, newPageResponse(sess, out))
	}
}
