// Package codec loads and saves a session's State as the named JSON records
// defined in schema. Absent or malformed records decode to their neutral value;
// only backend failures are reported.
package codec

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/multierr"

	"github.com/angelmondragon/foodcart/internal/schema"
	"github.com/angelmondragon/foodcart/internal/storage"
	pkgerrors "github.com/angelmondragon/foodcart/pkg/errors"
	"github.com/angelmondragon/foodcart/pkg/logger"
	"github.com/angelmondragon/foodcart/pkg/metrics"
)

// Codec reads and writes one session namespace.
type Codec struct {
	store   storage.Store
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

// New builds a codec over store. logg and m may be nil.
func New(store storage.Store, logg *logger.Logger, m *metrics.StoreMetrics) *Codec {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Codec{store: store, logg: logg, metrics: m}
}

// Load reads every record of the namespace.
func (c *Codec) Load(ctx context.Context) (schema.State, error) {
	st := schema.Empty()

	raw, err := c.readAll(ctx)
	if err != nil {
		c.metrics.IncStorageFailure("load")
		return schema.Empty(), pkgerrors.Wrap(pkgerrors.CodeStorageRead, err, "load persisted records")
	}

	st.Cart = normalizeCart(decodeOr(ctx, c, schema.KeyCart, raw[schema.KeyCart], schema.Cart{}))
	st.Orders = normalizeOrders(decodeOr(ctx, c, schema.KeyOrders, raw[schema.KeyOrders], []schema.Order{}))
	st.Shipping = decodeOr(ctx, c, schema.KeyShipping, raw[schema.KeyShipping], schema.ShippingDetails{})
	st.LoggedIn = decodeOr(ctx, c, schema.KeyLoggedIn, raw[schema.KeyLoggedIn], false)

	return st, nil
}

// Save writes all records. Every key is attempted even when an earlier one fails.
func (c *Codec) Save(ctx context.Context, st schema.State) error {
	cart := st.Cart
	if cart == nil {
		cart = schema.Cart{}
	}
	orders := st.Orders
	if orders == nil {
		orders = []schema.Order{}
	}
	return c.write(ctx, "save", map[string]any{
		schema.KeyCart:     cart,
		schema.KeyOrders:   orders,
		schema.KeyShipping: st.Shipping,
		schema.KeyLoggedIn: st.LoggedIn,
	})
}

// Reset wipes the session back to its logged-out state: shipping details are
// removed, cart and orders are emptied. Safe on an already empty namespace.
func (c *Codec) Reset(ctx context.Context) error {
	errs := c.store.Remove(ctx, schema.KeyShipping)
	errs = multierr.Append(errs, c.writeRecords(ctx, map[string]any{
		schema.KeyCart:     schema.Cart{},
		schema.KeyOrders:   []schema.Order{},
		schema.KeyLoggedIn: false,
	}))
	if errs != nil {
		c.metrics.IncStorageFailure("reset")
		return pkgerrors.Wrap(pkgerrors.CodeStorageWrite, errs, "reset persisted records")
	}
	return nil
}

func (c *Codec) readAll(ctx context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte, len(schema.Keys))
	for _, key := range schema.Keys {
		val, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			out[key] = val
		}
	}
	return out, nil
}

func (c *Codec) write(ctx context.Context, op string, records map[string]any) error {
	if errs := c.writeRecords(ctx, records); errs != nil {
		c.metrics.IncStorageFailure(op)
		return pkgerrors.Wrap(pkgerrors.CodeStorageWrite, errs, op+" persisted records")
	}
	return nil
}

func (c *Codec) writeRecords(ctx context.Context, records map[string]any) error {
	var errs error
	for _, key := range schema.Keys {
		val, ok := records[key]
		if !ok {
			continue
		}
		encoded, err := Encode(val)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		errs = multierr.Append(errs, c.store.Set(ctx, key, encoded))
	}
	return errs
}

// Encode renders v as compact JSON without HTML escaping, matching what a
// browser's JSON.stringify produces for the same value.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeOr decodes raw into T, returning fallback when raw is absent, null or
// malformed.
func decodeOr[T any](ctx context.Context, c *Codec, key string, raw []byte, fallback T) T {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fallback
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		c.metrics.IncMalformed(key)
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"record": key, "error": err.Error()}), "persisted record malformed, using default")
		return fallback
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fallback
	}
	return out
}

// normalizeCart drops lines with quantity ≤ 0 and merges duplicate ids into the
// first occurrence.
func normalizeCart(in schema.Cart) schema.Cart {
	out := make(schema.Cart, 0, len(in))
	for _, item := range in {
		if idx := out.IndexOf(item.ID); idx >= 0 {
			out[idx].Quantity += item.Quantity
			continue
		}
		out = append(out, item)
	}
	kept := out[:0]
	for _, item := range out {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	return kept
}

func normalizeOrders(in []schema.Order) []schema.Order {
	if in == nil {
		return []schema.Order{}
	}
	for i := range in {
		if in[i].Items == nil {
			in[i].Items = schema.Cart{}
		}
	}
	return in
}
