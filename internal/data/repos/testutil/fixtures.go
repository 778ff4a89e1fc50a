package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/neurobridge-navigation/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedNavExtension(tb testing.TB, ctx context.Context, tx *gorm.DB, level string, instanceID int64, key string) *types.NavExtension {
	tb.Helper()
	now := time.Now().UTC()
	e := &types.NavExtension{
		ID:           uuid.New(),
		ContextLevel: level,
		InstanceID:   instanceID,
		ParentKey:    "courseadmin",
		ParentType:   "course",
		NodeKey:      key,
		NodeType:     "setting",
		Text:         key,
		Action:       "/local/" + key + "/index.php",
		Meta:         datatypes.JSON([]byte("{}")),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed nav extension: %v", err)
	}
	return e
}

func SeedNavLayout(tb testing.TB, ctx context.Context, tx *gorm.DB, view, level, source, entries string) *types.NavLayout {
	tb.Helper()
	now := time.Now().UTC()
	l := &types.NavLayout{
		ID:        uuid.New(),
		View:      view,
		Level:     level,
		Source:    source,
		Entries:   datatypes.JSON([]byte(entries)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed nav layout: %v", err)
	}
	return l
}
