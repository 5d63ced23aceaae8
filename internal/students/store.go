package students

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PGStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

var (
	ErrNotFound  = errors.New("student not found")
	ErrDuplicate = errors.New("student already exists")
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

const studentColumns = `id, first_name, last_name, email, student_id, course, semester, application_date, status, documents, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*Student, error) {
	st := &Student{}
	var docs pq.StringArray
	if err := row.Scan(&st.ID, &st.FirstName, &st.LastName, &st.Email, &st.StudentID,
		&st.Course, &st.Semester, &st.ApplicationDate, &st.Status, &docs,
		&st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	st.Documents = []string(docs)
	return st, nil
}

// List returns applications, newest first, optionally filtered by status.
func (s *PGStore) List(ctx context.Context, status Status) ([]Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *st)
	}
	return result, rows.Err()
}

func (s *PGStore) GetByID(ctx context.Context, id string) (*Student, error) {
	const q = `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	st, err := scanStudent(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *PGStore) Create(ctx context.Context, st *Student) (*Student, error) {
	now := time.Now().UTC()
	if st.ApplicationDate.IsZero() {
		st.ApplicationDate = now
	}
	if st.Status == "" {
		st.Status = StatusPending
	}
	if st.Documents == nil {
		st.Documents = []string{}
	}
	const q = `
		INSERT INTO students (id, first_name, last_name, email, student_id, course, semester, application_date, status, documents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING ` + studentColumns
	created, err := scanStudent(s.db.QueryRowContext(ctx, q,
		uuid.NewString(), st.FirstName, st.LastName, strings.ToLower(st.Email), st.StudentID,
		st.Course, st.Semester, st.ApplicationDate, string(st.Status), pq.Array(st.Documents), now))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return created, nil
}

// Update applies a partial update; nil fields in p are left untouched.
func (s *PGStore) Update(ctx context.Context, id string, p UpdateStudentRequest) (*Student, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.FirstName != nil {
		st.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		st.LastName = *p.LastName
	}
	if p.Email != nil {
		st.Email = strings.ToLower(*p.Email)
	}
	if p.Course != nil {
		st.Course = *p.Course
	}
	if p.Semester != nil {
		st.Semester = *p.Semester
	}
	if p.Status != nil {
		st.Status = *p.Status
	}
	if p.Documents != nil {
		st.Documents = *p.Documents
	}
	const q = `
		UPDATE students
		SET first_name = $2, last_name = $3, email = $4, course = $5, semester = $6,
		    status = $7, documents = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + studentColumns
	updated, err := scanStudent(s.db.QueryRowContext(ctx, q,
		st.ID, st.FirstName, st.LastName, st.Email, st.Course, st.Semester,
		string(st.Status), pq.Array(st.Documents), time.Now().UTC()))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return updated, nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM students WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
