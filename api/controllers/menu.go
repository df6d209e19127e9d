package controllers

import (
	"net/http"

	"github.com/angelmondragon/foodcart/api/responses"
	"github.com/angelmondragon/foodcart/api/validators"
	"github.com/angelmondragon/foodcart/internal/catalog"
	"github.com/angelmondragon/foodcart/internal/render"
)

type menuItemResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      int    `json:"price"`
	PriceLabel string `json:"price_label"`
	Image      string `json:"image"`
	Category   string `json:"category,omitempty"`
}

type menuResponse struct {
	Categories []string           `json:"categories"`
	Items      []menuItemResponse `json:"items"`
}

// MenuList serves the storefront menu, optionally narrowed with ?category=.
func MenuList(menu catalog.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := validators.QueryString(r, "category", 64)

		resp := menuResponse{
			Categories: menu.Categories(),
			Items:      make([]menuItemResponse, 0, len(menu.Items)),
		}
		for _, it := range menu.Items {
			if category != "" && it.Category != category {
				continue
			}
			// ParseMenu already rejected entries that do not convert.
			li, err := it.LineItem()
			if err != nil {
				continue
			}
			resp.Items = append(resp.Items, menuItemResponse{
				ID:         li.ID,
				Name:       li.Name,
				Price:      li.Price,
				PriceLabel: render.Rupees(li.Price),
				Image:      li.Image,
				Category:   it.Category,
			})
		}
		responses.WriteSuccess(w, resp)
	}
}
