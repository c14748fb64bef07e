package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stremini.backend/internal/domain/entities"
	"stremini.backend/internal/infrastructure/dataservice"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, dataservice.Migrate(db), "migrate")
	return db
}

func adminCtx() context.Context {
	return entities.ContextWithSession(context.Background(), &entities.Session{ID: "sid", UserID: uuid.New()})
}
