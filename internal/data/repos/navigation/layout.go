package navigation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/neurobridge-navigation/internal/domain"
	"github.com/yungbote/neurobridge-navigation/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

type NavLayoutRepo interface {
	Get(dbc dbctx.Context, view, level, source string) (*types.NavLayout, error)
	List(dbc dbctx.Context) ([]*types.NavLayout, error)
	// Upsert stores layout, replacing the entries of an existing row with the
	// same (view, level, source). The stored row is returned.
	Upsert(dbc dbctx.Context, layout *types.NavLayout) (*types.NavLayout, error)
	Delete(dbc dbctx.Context, view, level, source string) (bool, error)
}

type navLayoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNavLayoutRepo(db *gorm.DB, baseLog *logger.Logger) NavLayoutRepo {
	return &navLayoutRepo{
		db:  db,
		log: baseLog.With("repo", "NavLayoutRepo"),
	}
}

func (r *navLayoutRepo) Get(dbc dbctx.Context, view, level, source string) (*types.NavLayout, error) {
	var row types.NavLayout
	err := dbc.DB(r.db).
		Where("view_name = ? AND context_level = ? AND source_name = ?", view, level, source).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *navLayoutRepo) List(dbc dbctx.Context) ([]*types.NavLayout, error) {
	var out []*types.NavLayout
	if err := dbc.DB(r.db).
		Order("view_name ASC").Order("context_level ASC").Order("source_name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *navLayoutRepo) Upsert(dbc dbctx.Context, layout *types.NavLayout) (*types.NavLayout, error) {
	if layout == nil {
		return nil, nil
	}
	now := time.Now().UTC()
	if layout.ID == uuid.Nil {
		layout.ID = uuid.New()
	}
	if layout.CreatedAt.IsZero() {
		layout.CreatedAt = now
	}
	layout.UpdatedAt = now

	err := dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "view_name"}, {Name: "context_level"}, {Name: "source_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"entries", "updated_at"}),
	}).Create(layout).Error
	if err != nil {
		return nil, err
	}
	stored, err := r.Get(dbc, layout.View, layout.Level, layout.Source)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return layout, nil
	}
	r.log.Debug("Layout override stored", "view", stored.View, "level", stored.Level, "source", stored.Source)
	return stored, nil
}

func (r *navLayoutRepo) Delete(dbc dbctx.Context, view, level, source string) (bool, error) {
	res := dbc.DB(r.db).
		Where("view_name = ? AND context_level = ? AND source_name = ?", view, level, source).
		Delete(&types.NavLayout{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
