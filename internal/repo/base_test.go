package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/foodcart/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.PersistedRecord{}))
	return conn
}

func TestNewBaseStoresConnection(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	if base.db != db {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)

	if withCtx == nil {
		t.Fatalf("expected non-nil DB when context provided")
	}
	if withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	withoutCtx := base.DB(nil)
	if withoutCtx != db {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(newTestDB(t))

	rec, err := records.Find(ctx, "fc:abc", "foodCart")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, records.Upsert(ctx, &models.PersistedRecord{Namespace: "fc:abc", Key: "foodCart", Value: []byte("[]")}))
	require.NoError(t, records.Upsert(ctx, &models.PersistedRecord{Namespace: "fc:abc", Key: "foodCart", Value: []byte(`[{"id":"1"}]`)}))
	require.NoError(t, records.Upsert(ctx, &models.PersistedRecord{Namespace: "fc:xyz", Key: "foodCart", Value: []byte("[]")}))

	rec, err = records.Find(ctx, "fc:abc", "foodCart")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, `[{"id":"1"}]`, string(rec.Value))

	n, err := records.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, records.Delete(ctx, "fc:abc", "foodCart"))
	require.NoError(t, records.Delete(ctx, "fc:abc", "foodCart"))

	rec, err = records.Find(ctx, "fc:abc", "foodCart")
	require.NoError(t, err)
	assert.Nil(t, rec)
}
