package navigation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-navigation/internal/domain"
	"github.com/yungbote/neurobridge-navigation/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

type NavExtensionRepo interface {
	Create(dbc dbctx.Context, exts []*types.NavExtension) ([]*types.NavExtension, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.NavExtension, error)
	// ListForContext returns extensions registered for level, both the
	// level-wide ones (instance 0) and those bound to instanceID.
	ListForContext(dbc dbctx.Context, level string, instanceID int64) ([]*types.NavExtension, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type navExtensionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNavExtensionRepo(db *gorm.DB, baseLog *logger.Logger) NavExtensionRepo {
	return &navExtensionRepo{
		db:  db,
		log: baseLog.With("repo", "NavExtensionRepo"),
	}
}

func (r *navExtensionRepo) Create(dbc dbctx.Context, exts []*types.NavExtension) ([]*types.NavExtension, error) {
	if len(exts) == 0 {
		return []*types.NavExtension{}, nil
	}
	now := time.Now().UTC()
	for _, e := range exts {
		if e == nil {
			continue
		}
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		e.UpdatedAt = now
	}
	if err := dbc.DB(r.db).Create(&exts).Error; err != nil {
		return nil, err
	}
	return exts, nil
}

func (r *navExtensionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.NavExtension, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var ext types.NavExtension
	if err := dbc.DB(r.db).Where("id = ?", id).First(&ext).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ext, nil
}

func (r *navExtensionRepo) ListForContext(dbc dbctx.Context, level string, instanceID int64) ([]*types.NavExtension, error) {
	var out []*types.NavExtension
	if level == "" {
		return out, nil
	}
	q := dbc.DB(r.db).Where("context_level = ?", level)
	if instanceID > 0 {
		q = q.Where("instance_id IN ?", []int64{0, instanceID})
	} else {
		q = q.Where("instance_id = 0")
	}
	if err := q.Order("sort_order ASC").Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *navExtensionRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.NavExtension{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
