package students

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Courses lists the degree programmes applications are accepted for.
var Courses = []string{"Informatik", "Wirtschaftsinformatik", "Medieninformatik", "Cybersecurity"}

// Student is an application record submitted by a prospective student.
type Student struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	StudentID       string    `json:"studentId"`
	Course          string    `json:"course"`
	Semester        int       `json:"semester"`
	ApplicationDate time.Time `json:"applicationDate"`
	Status          Status    `json:"status"`
	Documents       []string  `json:"documents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
