package models

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "Enrolled"
	EnrollmentStatusCompleted EnrollmentStatus = "Completed"
	EnrollmentStatusWithdrawn EnrollmentStatus = "Withdrawn"
)

// Grade is a letter grade recorded against an enrollment.
type Grade string

// Grades accepted by the engine. P and W carry no grade points.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
	GradeP Grade = "P"
	GradeW Grade = "W"
)

var gradePoints = map[Grade]float64{
	GradeA: 4.0,
	GradeB: 3.0,
	GradeC: 2.0,
	GradeD: 1.0,
	GradeF: 0.0,
}

// Valid reports whether the grade belongs to the allowed set.
func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeD, GradeF, GradeP, GradeW:
		return true
	}
	return false
}

// Points returns the grade-point value for GPA computation. Grades outside
// the A-F scale (P, W) contribute no points and are excluded from averages.
func (g Grade) Points() (float64, bool) {
	points, ok := gradePoints[g]
	return points, ok
}

// Enrollment links one student to one course offering. At most one
// enrollment exists per (student, offering) pair.
type Enrollment struct {
	ID         int64            `db:"id" json:"id"`
	StudentID  int64            `db:"student_id" json:"student_id"`
	OfferingID int64            `db:"offering_id" json:"offering_id"`
	Status     EnrollmentStatus `db:"status" json:"status"`
	Grade      *Grade           `db:"grade" json:"grade,omitempty"`
}
