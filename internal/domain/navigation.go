package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NavExtension is a node contributed by a plugin. It is inserted into the
// settings tree under (ParentType, ParentKey) before a secondary view is
// built, for pages whose context matches.
type NavExtension struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ContextLevel string `gorm:"column:context_level;not null;index:idx_nav_extension_ctx,priority:1" json:"context_level"`
	// InstanceID narrows the extension to one course or module; 0 applies to
	// every page at ContextLevel.
	InstanceID int64 `gorm:"column:instance_id;not null;default:0;index:idx_nav_extension_ctx,priority:2" json:"instance_id"`

	ParentKey  string `gorm:"column:parent_key;not null" json:"parent_key"`
	ParentType string `gorm:"column:parent_type;not null" json:"parent_type"`

	NodeKey  string `gorm:"column:node_key;not null" json:"node_key"`
	NodeType string `gorm:"column:node_type;not null" json:"node_type"`
	Text     string `gorm:"column:text;not null" json:"text"`
	Action   string `gorm:"column:action" json:"action,omitempty"`
	Icon     string `gorm:"column:icon" json:"icon,omitempty"`
	Hidden   bool   `gorm:"column:hidden;not null;default:false" json:"hidden,omitempty"`

	SortOrder int    `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	Component string `gorm:"column:component;index" json:"component,omitempty"`

	Meta datatypes.JSON `gorm:"column:meta;type:jsonb" json:"meta,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (NavExtension) TableName() string { return "nav_extension" }

// NavLayout overrides one of the built-in position maps. Entries holds the
// ordered placement list as JSON.
type NavLayout struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	View   string `gorm:"column:view_name;not null;uniqueIndex:idx_nav_layout_key,priority:1" json:"view"`
	Level  string `gorm:"column:context_level;not null;uniqueIndex:idx_nav_layout_key,priority:2" json:"level"`
	Source string `gorm:"column:source_name;not null;uniqueIndex:idx_nav_layout_key,priority:3" json:"source"`

	Entries datatypes.JSON `gorm:"column:entries;type:jsonb;not null" json:"entries"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (NavLayout) TableName() string { return "nav_layout" }
