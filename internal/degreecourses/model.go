package degreecourses

import "time"

// DegreeCourse is a course of study offered by a university department. The
// record is addressed by its store-assigned id; timestamps stay internal.
type DegreeCourse struct {
	ID                  string    `json:"id"`
	UniversityName      string    `json:"universityName"`
	UniversityShortName string    `json:"universityShortName"`
	DepartmentName      string    `json:"departmentName"`
	DepartmentShortName string    `json:"departmentShortName"`
	Name                string    `json:"name"`
	ShortName           string    `json:"shortName"`
	CreatedAt           time.Time `json:"-"`
	UpdatedAt           time.Time `json:"-"`
}
