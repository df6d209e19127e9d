package rootcmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
	"github.com/angelmondragon/foodcart/internal/storage"
	"github.com/angelmondragon/foodcart/pkg/config"
)

const testMenu = `items:
  - id: p1
    name: Pizza
    price: "300"
    image: pizza.jpg
    category: Mains
  - id: c1
    name: Coke
    price: "40"
    image: coke.jpg
    category: Drinks
`

func writeMenu(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testMenu), 0o600))
	return path
}

func execute(t *testing.T, ctx *shared.Context, args ...string) (string, error) {
	t.Helper()
	root := NewWithContext(ctx)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMenu(t *testing.T) {
	ctx := &shared.Context{Backend: storage.NewMemoryBackend(0)}
	menu := writeMenu(t)

	out, err := execute(t, ctx, "menu", "--menu", menu, "--category", "Drinks")
	require.NoError(t, err)
	assert.Contains(t, out, "Coke")
	assert.Contains(t, out, "RS 40")
	assert.NotContains(t, out, "Pizza")
}

func TestConfiguredBackendOutlivesInvocation(t *testing.T) {
	t.Setenv(config.EnvStorageDriver, "")
	t.Setenv(config.EnvDBDriver, "sqlite")
	t.Setenv(config.EnvDBDSN, filepath.Join(t.TempDir(), "cart.db"))
	t.Setenv(shared.EnvSession, "two-runs")
	menu := writeMenu(t)

	_, err := execute(t, &shared.Context{}, "login")
	require.NoError(t, err)
	_, err = execute(t, &shared.Context{}, "add", "p1", "--menu", menu)
	require.NoError(t, err)

	out, err := execute(t, &shared.Context{}, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Pizza")
	assert.Contains(t, out, "Items: 1  Total: RS 300")
}

func TestSessionJourney(t *testing.T) {
	ctx := &shared.Context{Backend: storage.NewMemoryBackend(0)}
	menu := writeMenu(t)

	out, err := execute(t, ctx, "add", "p1", "--menu", menu)
	require.NoError(t, err)
	assert.Contains(t, out, "Please log in to add items to your cart.")

	_, err = execute(t, ctx, "login")
	require.NoError(t, err)

	out, err = execute(t, ctx, "add", "p1", "--menu", menu)
	require.NoError(t, err)
	assert.Contains(t, out, "+ Pizza")

	_, err = execute(t, ctx, "add", "p1", "--menu", menu)
	require.NoError(t, err)

	out, err = execute(t, ctx, "qty", "p1", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Items: 1  Total: RS 300")

	_, err = execute(t, ctx, "checkout", "--name", "A", "--address", "B")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--pin")

	out, err = execute(t, ctx, "checkout", "--name", "A", "--address", "B", "--pin", "1", "--phone", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Placed order #")
	assert.Contains(t, out, "index.html#orders")

	out, err = execute(t, ctx, "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "Pizza (x1)")
	assert.Contains(t, out, "Total: RS 300")

	out, err = execute(t, ctx, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")
}

func TestCheckoutUsesSavedShipping(t *testing.T) {
	ctx := &shared.Context{Backend: storage.NewMemoryBackend(0)}
	menu := writeMenu(t)

	_, err := execute(t, ctx, "login")
	require.NoError(t, err)
	_, err = execute(t, ctx, "add", "c1", "--menu", menu)
	require.NoError(t, err)
	_, err = execute(t, ctx, "checkout", "--name", "A", "--address", "B", "--pin", "1", "--phone", "2")
	require.NoError(t, err)

	_, err = execute(t, ctx, "add", "c1", "--menu", menu)
	require.NoError(t, err)
	out, err := execute(t, ctx, "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "Placed order #")
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := &shared.Context{Backend: storage.NewMemoryBackend(0)}

	out, err := execute(t, ctx, "checkout", "--name", "A", "--address", "B", "--pin", "1", "--phone", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")
	assert.Contains(t, out, "index.html")
}

func TestLogoutAndSessions(t *testing.T) {
	ctx := &shared.Context{Backend: storage.NewMemoryBackend(0)}
	menu := writeMenu(t)

	_, err := execute(t, ctx, "--session", "a", "login")
	require.NoError(t, err)
	_, err = execute(t, ctx, "--session", "a", "add", "p1", "--menu", menu)
	require.NoError(t, err)

	out, err := execute(t, ctx, "--session", "b", "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")

	out, err = execute(t, ctx, "--session", "a", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "You have been logged out.")

	out, err = execute(t, ctx, "--session", "a", "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "Please log in to see your order history.")
}

func TestQtyRejectsBadDelta(t *testing.T) {
	ctx := &shared.Context{Backend: storage.NewMemoryBackend(0)}

	_, err := execute(t, ctx, "qty", "p1", "lots")
	require.Error(t, err)
}
