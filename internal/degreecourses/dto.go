package degreecourses

type CreateDegreeCourseRequest struct {
	UniversityName      string `json:"universityName" validate:"required,max=200"`
	UniversityShortName string `json:"universityShortName" validate:"required,max=50"`
	DepartmentName      string `json:"departmentName" validate:"required,max=200"`
	DepartmentShortName string `json:"departmentShortName" validate:"required,max=50"`
	Name                string `json:"name" validate:"required,max=200"`
	ShortName           string `json:"shortName" validate:"required,max=50"`
}

type UpdateDegreeCourseRequest struct {
	UniversityName      *string `json:"universityName,omitempty" validate:"omitempty,max=200"`
	UniversityShortName *string `json:"universityShortName,omitempty" validate:"omitempty,max=50"`
	DepartmentName      *string `json:"departmentName,omitempty" validate:"omitempty,max=200"`
	DepartmentShortName *string `json:"departmentShortName,omitempty" validate:"omitempty,max=50"`
	Name                *string `json:"name,omitempty" validate:"omitempty,max=200"`
	ShortName           *string `json:"shortName,omitempty" validate:"omitempty,max=50"`
}
