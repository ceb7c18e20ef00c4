package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CascadeStatusRunning = "running"
	CascadeStatusDone    = "done"
)

// CascadeLog records the progress of a cascading delete so that a rerun
// after a mid-sequence failure finishes the job instead of erroring on
// already-removed children.
type CascadeLog struct {
	gorm.Model
	RootType string         `json:"rootType" gorm:"type:varchar(20);index:idx_cascade_root"`
	RootID   uint           `json:"rootID" gorm:"index:idx_cascade_root"`
	Status   string         `json:"status" gorm:"type:varchar(10)"` // running, done
	Deleted  datatypes.JSON `json:"deleted"`                        // entity type -> rows removed so far
}

func (c *CascadeLog) SetDeleted(counts map[string]int64) {
	if b, err := json.Marshal(counts); err == nil {
		c.Deleted = b
	}
}

func (c *CascadeLog) DeletedCounts() map[string]int64 {
	counts := map[string]int64{}
	if len(c.Deleted) > 0 {
		json.Unmarshal(c.Deleted, &counts)
	}
	return counts
}
