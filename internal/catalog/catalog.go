// Package catalog supplies line-item candidates: the menu file behind the
// storefront, and the attribute parsing used when a menu entry is clicked.
// Prices are trusted as given; nothing here checks them against inventory.
package catalog

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/angelmondragon/foodcart/internal/schema"
	pkgerrors "github.com/angelmondragon/foodcart/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Item is a menu entry. Price keeps the attribute spelling ("299") so the menu
// file reads like the markup it replaces.
type Item struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
	Price    string `yaml:"price" validate:"required"`
	Image    string `yaml:"image"`
	Category string `yaml:"category"`
}

// LineItem converts the entry into a cart candidate with quantity 0; the store
// sets the quantity.
func (it Item) LineItem() (schema.LineItem, error) {
	if err := validate.Struct(it); err != nil {
		return schema.LineItem{}, formatValidationErrors(err)
	}
	price, ok := ParseInt(it.Price)
	if !ok {
		return schema.LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "must start with an integer"})
	}
	return schema.LineItem{ID: it.ID, Name: it.Name, Price: price, Image: it.Image}, nil
}

// Menu is the ordered list of entries offered on the storefront.
type Menu struct {
	Items []Item `yaml:"items"`
}

// Find returns the entry with id.
func (m Menu) Find(id string) (Item, bool) {
	for _, it := range m.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Categories lists categories in first-seen order.
func (m Menu) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, it := range m.Items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	return out
}

// LoadMenu reads a YAML menu file.
func LoadMenu(path string) (Menu, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Menu{}, fmt.Errorf("reading menu %s: %w", path, err)
	}
	return ParseMenu(raw)
}

// ParseMenu decodes and validates a YAML menu.
func ParseMenu(raw []byte) (Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Menu{}, fmt.Errorf("decoding menu: %w", err)
	}
	seen := map[string]bool{}
	for i, it := range m.Items {
		if _, err := it.LineItem(); err != nil {
			return Menu{}, fmt.Errorf("menu item %d: %w", i, err)
		}
		if seen[it.ID] {
			return Menu{}, fmt.Errorf("menu item %d: duplicate id %q", i, it.ID)
		}
		seen[it.ID] = true
	}
	return m, nil
}

// ParseAttributes builds a candidate from element-style attributes
// (id, name, price, image).
func ParseAttributes(attrs map[string]string) (schema.LineItem, error) {
	return Item{
		ID:    attrs["id"],
		Name:  attrs["name"],
		Price: attrs["price"],
		Image: attrs["image"],
	}.LineItem()
}

// ParseInt reads a leading base-10 integer the way a browser's parseInt does:
// leading whitespace and a sign are accepted and trailing garbage is ignored.
// ok is false when no digit is found or the value does not fit in an int.
func ParseInt(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		d := int(r - '0')
		if n > (math.MaxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
		ok = true
	}
	if neg {
		n = -n
	}
	return n, ok
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	}
	return "is invalid"
}
