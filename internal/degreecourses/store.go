package degreecourses

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type PGStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

var ErrNotFound = errors.New("degree course not found")

const courseColumns = `id, university_name, university_short_name, department_name, department_short_name, name, short_name, created_at, updated_at`

func scanCourse(row interface{ Scan(...interface{}) error }) (*DegreeCourse, error) {
	c := &DegreeCourse{}
	if err := row.Scan(&c.ID, &c.UniversityName, &c.UniversityShortName, &c.DepartmentName,
		&c.DepartmentShortName, &c.Name, &c.ShortName, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all degree courses, optionally narrowed to one university by
// its short name.
func (s *PGStore) List(ctx context.Context, universityShortName string) ([]DegreeCourse, error) {
	query := `SELECT ` + courseColumns + ` FROM degree_courses`
	args := []interface{}{}
	if universityShortName != "" {
		query += ` WHERE university_short_name = $1`
		args = append(args, universityShortName)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DegreeCourse
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (s *PGStore) GetByID(ctx context.Context, id string) (*DegreeCourse, error) {
	const q = `SELECT ` + courseColumns + ` FROM degree_courses WHERE id = $1`
	c, err := scanCourse(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *PGStore) Create(ctx context.Context, c *DegreeCourse) (*DegreeCourse, error) {
	now := time.Now().UTC()
	const q = `
		INSERT INTO degree_courses (id, university_name, university_short_name, department_name, department_short_name, name, short_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + courseColumns
	return scanCourse(s.db.QueryRowContext(ctx, q,
		uuid.NewString(), c.UniversityName, c.UniversityShortName, c.DepartmentName,
		c.DepartmentShortName, c.Name, c.ShortName, now))
}

// Update applies a partial update; nil fields in p are left untouched.
func (s *PGStore) Update(ctx context.Context, id string, p UpdateDegreeCourseRequest) (*DegreeCourse, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UniversityName != nil {
		c.UniversityName = *p.UniversityName
	}
	if p.UniversityShortName != nil {
		c.UniversityShortName = *p.UniversityShortName
	}
	if p.DepartmentName != nil {
		c.DepartmentName = *p.DepartmentName
	}
	if p.DepartmentShortName != nil {
		c.DepartmentShortName = *p.DepartmentShortName
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ShortName != nil {
		c.ShortName = *p.ShortName
	}
	const q = `
		UPDATE degree_courses
		SET university_name = $2, university_short_name = $3, department_name = $4,
		    department_short_name = $5, name = $6, short_name = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + courseColumns
	return scanCourse(s.db.QueryRowContext(ctx, q,
		c.ID, c.UniversityName, c.UniversityShortName, c.DepartmentName,
		c.DepartmentShortName, c.Name, c.ShortName, time.Now().UTC()))
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM degree_courses WHERE id = $1`
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
