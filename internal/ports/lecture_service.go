package ports

import (
	"context"

	"lectern/internal/domain"
)

// LectureService is the remote document store owning lecture records.
// Every operation is scoped by the owning user: a lecture is never read
// or written on behalf of anyone but its owner.
type LectureService interface {
	// GetUserLectures returns the user's lectures, newest first.
	GetUserLectures(ctx context.Context, userID string) ([]*domain.Lecture, error)
	// GetLecture returns (nil, nil) when the lecture does not exist or
	// belongs to another user.
	GetLecture(ctx context.Context, userID, lectureID string) (*domain.Lecture, error)
	// CreateLecture stores a new lecture and returns its id.
	CreateLecture(ctx context.Context, userID string, draft domain.LectureDraft) (string, error)
	// UpdateLecture applies a partial update to an owned lecture.
	UpdateLecture(ctx context.Context, userID, lectureID string, update domain.LectureUpdate) error
	// DeleteLecture removes an owned lecture.
	DeleteLecture(ctx context.Context, userID, lectureID string) error
}
