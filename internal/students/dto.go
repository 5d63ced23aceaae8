package students

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type CreateStudentRequest struct {
	FirstName string   `json:"firstName" validate:"required,max=50"`
	LastName  string   `json:"lastName" validate:"required,max=50"`
	Email     string   `json:"email" validate:"required,email"`
	StudentID string   `json:"studentId" validate:"required,matriculation"`
	Course    string   `json:"course" validate:"required,oneof=Informatik Wirtschaftsinformatik Medieninformatik Cybersecurity"`
	Semester  int      `json:"semester" validate:"required,gte=1,lte=10"`
	Documents []string `json:"documents,omitempty"`
}

type UpdateStudentRequest struct {
	FirstName *string   `json:"firstName,omitempty" validate:"omitempty,max=50"`
	LastName  *string   `json:"lastName,omitempty" validate:"omitempty,max=50"`
	Email     *string   `json:"email,omitempty" validate:"omitempty,email"`
	Course    *string   `json:"course,omitempty" validate:"omitempty,oneof=Informatik Wirtschaftsinformatik Medieninformatik Cybersecurity"`
	Semester  *int      `json:"semester,omitempty" validate:"omitempty,gte=1,lte=10"`
	Status    *Status   `json:"status,omitempty" validate:"omitempty,oneof=pending accepted rejected"`
	Documents *[]string `json:"documents,omitempty"`
}

var matriculationRe = regexp.MustCompile(`^\d{6,8}$`)

// newValidator returns a validator with the matriculation-number rule
// registered: 6 to 8 digits.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("matriculation", func(fl validator.FieldLevel) bool {
		return matriculationRe.MatchString(fl.Field().String())
	})
	return v
}
