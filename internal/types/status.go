package types

import (
	"time"
)

// Status is the lifecycle state of a stored entity.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

func (s Status) Validate() bool {
	switch s {
	case StatusPublished, StatusArchived, StatusDeleted:
		return true
	}
	return false
}

// BaseModel carries the audit columns shared by all persisted entities.
type BaseModel struct {
	Status    Status    `json:"status" gorm:"column:status;type:varchar(20);default:'published'"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// GetDefaultBaseModel returns a base model stamped with the current time.
func GetDefaultBaseModel() BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
