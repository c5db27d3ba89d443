package turso

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lectern/internal/domain"
	"lectern/internal/ports"
	"lectern/internal/util"
)

// LectureRepository implements the remote lecture service on top of a
// libsql database. Every query is scoped by user_id so one user can
// never see or touch another's lectures.
type LectureRepository struct {
	db *sql.DB
}

var _ ports.LectureService = (*LectureRepository)(nil)

func NewLectureRepository(db *sql.DB) *LectureRepository {
	return &LectureRepository{db: db}
}

const lectureColumns = `id, user_id, title, status, transcript, audio_path, duration_seconds, error, created_at, updated_at`

func (r *LectureRepository) GetUserLectures(ctx context.Context, userID string) ([]*domain.Lecture, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+lectureColumns+`
		FROM lectures
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}
	defer rows.Close()

	lectures := []*domain.Lecture{}
	for rows.Next() {
		lec, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, lec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}
	return lectures, nil
}

func (r *LectureRepository) GetLecture(ctx context.Context, userID, lectureID string) (*domain.Lecture, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+lectureColumns+`
		FROM lectures
		WHERE id = ? AND user_id = ?
	`, lectureID, userID)

	lec, err := scanLecture(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lecture: %w", err)
	}
	return lec, nil
}

func (r *LectureRepository) CreateLecture(ctx context.Context, userID string, draft domain.LectureDraft) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	// New lectures go straight into processing: the capture pipeline
	// starts transcribing as soon as the record exists.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lectures (id, user_id, title, status, audio_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, userID, draft.Title, string(domain.StatusProcessing), util.NullStringPtr(draft.AudioPath), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to create lecture: %w", err)
	}
	return id, nil
}

func (r *LectureRepository) UpdateLecture(ctx context.Context, userID, lectureID string, update domain.LectureUpdate) error {
	if update.Empty() {
		return nil
	}

	set := "updated_at = ?"
	args := []any{time.Now().UTC().Format(time.RFC3339)}
	if update.Title != nil {
		set += ", title = ?"
		args = append(args, *update.Title)
	}
	if update.Status != nil {
		set += ", status = ?"
		args = append(args, string(*update.Status))
	}
	if update.Transcript != nil {
		set += ", transcript = ?"
		args = append(args, *update.Transcript)
	}
	if update.Error != nil {
		set += ", error = ?"
		args = append(args, *update.Error)
	}
	args = append(args, lectureID, userID)

	res, err := r.db.ExecContext(ctx, `UPDATE lectures SET `+set+` WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update lecture: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update lecture: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LectureRepository) DeleteLecture(ctx context.Context, userID, lectureID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lectures WHERE id = ? AND user_id = ?`, lectureID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete lecture: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete lecture: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLecture(s scanner) (*domain.Lecture, error) {
	var (
		lec                               domain.Lecture
		status                            string
		transcript, audioPath, lectureErr sql.NullString
		durationSeconds                   sql.NullInt64
		createdAt, updatedAt              string
	)
	err := s.Scan(
		&lec.ID, &lec.UserID, &lec.Title, &status,
		&transcript, &audioPath, &durationSeconds, &lectureErr,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	lec.Status = domain.Status(status)
	lec.Transcript = util.NullStringToPtr(transcript)
	lec.AudioPath = util.NullStringToPtr(audioPath)
	lec.Error = util.NullStringToPtr(lectureErr)
	if durationSeconds.Valid {
		lec.DurationSeconds = &durationSeconds.Int64
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		lec.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		lec.UpdatedAt = t
	}
	return &lec, nil
}
