package models

// CourseOffering is one scheduled instance of a course in a term.
// CurrentEnrollment counts every enrollment ever accepted for the offering;
// withdrawals do not give the seat back.
type CourseOffering struct {
	ID                int64  `db:"id" json:"id"`
	CourseID          int64  `db:"course_id" json:"course_id"`
	InstructorID      int64  `db:"instructor_id" json:"instructor_id"`
	Semester          string `db:"semester" json:"semester"`
	Year              int    `db:"year" json:"year"`
	Room              string `db:"room" json:"room"`
	MaxStudents       int    `db:"max_students" json:"max_students"`
	CurrentEnrollment int    `db:"current_enrollment" json:"current_enrollment"`
}

// OfferingCapacity is the slice of offering state the enrollment engine
// reads under lock before admitting a student.
type OfferingCapacity struct {
	MaxStudents       int `db:"max_students"`
	CurrentEnrollment int `db:"current_enrollment"`
}
