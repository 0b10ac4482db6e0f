// internal/testutil/mongo.go
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mwsociety/memberhub/internal/app/system/indexes"
)

var dbCounter int64

// SetupTestDB connects to the test MongoDB instance and returns a fresh
// database (unique per call) with the application's indexes ensured. The
// database is dropped and the client disconnected on test cleanup.
//
// The URI comes from MEMBERHUB_TEST_MONGO_URI (default
// mongodb://localhost:27017). Tests are skipped when the server is not
// reachable, so the suite stays runnable without local infrastructure.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MEMBERHUB_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo connect failed, skipping: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo not reachable at %s, skipping: %v", uri, err)
	}

	name := fmt.Sprintf("memberhub_test_%d_%d", time.Now().UnixNano(), atomic.AddInt64(&dbCounter, 1))
	db := client.Database(name)

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context suitable for test database operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
