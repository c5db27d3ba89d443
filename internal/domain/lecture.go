package domain

import "time"

// Status is the lifecycle state of a lecture's transcription.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether a lecture in this status will not change again
// without an explicit update.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

type Lecture struct {
	ID              string
	UserID          string
	Title           string
	Status          Status
	Transcript      *string
	AudioPath       *string
	DurationSeconds *int64
	Error           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LectureDraft holds the caller-supplied fields of a new lecture.
// Everything else is filled in by the service.
type LectureDraft struct {
	Title     string
	AudioPath *string
}

// LectureUpdate is a partial update; nil fields are left untouched.
type LectureUpdate struct {
	Title      *string
	Status     *Status
	Transcript *string
	Error      *string
}

// Empty reports whether the update would change nothing.
func (u LectureUpdate) Empty() bool {
	return u.Title == nil && u.Status == nil && u.Transcript == nil && u.Error == nil
}
