package lectures

import (
	"context"

	"lectern/internal/domain"
)

// MockService is a mock implementation of ports.LectureService for testing.
type MockService struct {
	GetUserLecturesFunc func(ctx context.Context, userID string) ([]*domain.Lecture, error)
	GetLectureFunc      func(ctx context.Context, userID, lectureID string) (*domain.Lecture, error)
	CreateLectureFunc   func(ctx context.Context, userID string, draft domain.LectureDraft) (string, error)
	UpdateLectureFunc   func(ctx context.Context, userID, lectureID string, update domain.LectureUpdate) error
	DeleteLectureFunc   func(ctx context.Context, userID, lectureID string) error
}

func (m *MockService) GetUserLectures(ctx context.Context, userID string) ([]*domain.Lecture, error) {
	if m.GetUserLecturesFunc != nil {
		return m.GetUserLecturesFunc(ctx, userID)
	}
	return []*domain.Lecture{}, nil
}

func (m *MockService) GetLecture(ctx context.Context, userID, lectureID string) (*domain.Lecture, error) {
	if m.GetLectureFunc != nil {
		return m.GetLectureFunc(ctx, userID, lectureID)
	}
	return nil, nil
}

func (m *MockService) CreateLecture(ctx context.Context, userID string, draft domain.LectureDraft) (string, error) {
	if m.CreateLectureFunc != nil {
		return m.CreateLectureFunc(ctx, userID, draft)
	}
	return "", nil
}

func (m *MockService) UpdateLecture(ctx context.Context, userID, lectureID string, update domain.LectureUpdate) error {
	if m.UpdateLectureFunc != nil {
		return m.UpdateLectureFunc(ctx, userID, lectureID, update)
	}
	return nil
}

func (m *MockService) DeleteLecture(ctx context.Context, userID, lectureID string) error {
	if m.DeleteLectureFunc != nil {
		return m.DeleteLectureFunc(ctx, userID, lectureID)
	}
	return nil
}
