package models

import (
	"time"

	"gorm.io/datatypes"
)

// StatusEntry is one element of a job's status history ledger. Entries are
// immutable once appended; insertion order is chronological order.
type StatusEntry struct {
	Status JobStatus `json:"status"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes,omitempty"`
}

// Job is one tracked application belonging to one user. StatusHistory is an
// append-only JSONB array; the newest entry's status mirrors the Status column
// (maintained by the service layer, not enforced by the database).
type Job struct {
	BaseModel
	UserID        string                           `gorm:"type:uuid;not null;index" json:"userId"`
	Company       string                           `gorm:"not null" json:"company"`
	Role          string                           `gorm:"not null" json:"role"`
	Status        JobStatus                        `gorm:"type:varchar(20);not null;default:'Applied'" json:"status"`
	AppliedDate   time.Time                        `gorm:"not null;default:now();index" json:"appliedDate"`
	Notes         string                           `json:"notes,omitempty"`
	Location      string                           `json:"location,omitempty"`
	Salary        string                           `json:"salary,omitempty"`
	JobURL        string                           `gorm:"column:job_url" json:"jobUrl,omitempty"`
	StatusHistory datatypes.JSONSlice[StatusEntry] `gorm:"type:jsonb" json:"statusHistory"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// AppendStatus records a transition at the end of the ledger and mirrors it
// into the Status column.
func (j *Job) AppendStatus(status JobStatus, at time.Time, notes string) {
	j.Status = status
	j.StatusHistory = append(j.StatusHistory, StatusEntry{
		Status: status,
		Date:   at,
		Notes:  notes,
	})
}

// CurrentEntry returns the most recent ledger entry, or nil for an empty ledger.
func (j *Job) CurrentEntry() *StatusEntry {
	if len(j.StatusHistory) == 0 {
		return nil
	}
	return &j.StatusHistory[len(j.StatusHistory)-1]
}
