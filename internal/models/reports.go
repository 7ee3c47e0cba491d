package models

// TranscriptEntry is one graded (or in-progress) course on a transcript,
// ordered by year, semester, then course code.
type TranscriptEntry struct {
	CourseCode  string   `db:"course_code" json:"course_code"`
	CourseName  string   `db:"course_name" json:"course_name"`
	Credits     int      `db:"credits" json:"credits"`
	Term        string   `db:"term" json:"term"`
	Instructor  string   `db:"instructor" json:"instructor"`
	Grade       *Grade   `db:"grade" json:"grade,omitempty"`
	GradePoints *float64 `db:"grade_points" json:"grade_points,omitempty"`
}

// GPASummary aggregates a student's graded enrollments. GPA is nil when the
// student has no graded enrollments.
type GPASummary struct {
	CoursesCompleted int      `db:"courses_completed" json:"courses_completed"`
	TotalCredits     *int     `db:"total_credits" json:"total_credits,omitempty"`
	GPA              *float64 `db:"gpa" json:"gpa,omitempty"`
}

// Seat availability classifications.
const (
	AvailabilityFull       = "Full"
	AvailabilityAlmostFull = "Almost Full"
	AvailabilityAvailable  = "Available"
)

// CourseAvailability describes an offering's remaining capacity for a term.
type CourseAvailability struct {
	OfferingID        int64  `db:"offering_id" json:"offering_id"`
	CourseCode        string `db:"course_code" json:"course_code"`
	CourseName        string `db:"course_name" json:"course_name"`
	Credits           int    `db:"credits" json:"credits"`
	Level             string `db:"level" json:"level"`
	InstructorName    string `db:"instructor_name" json:"instructor_name"`
	Room              string `db:"room" json:"room"`
	MaxStudents       int    `db:"max_students" json:"max_students"`
	CurrentEnrollment int    `db:"current_enrollment" json:"current_enrollment"`
	AvailableSeats    int    `db:"available_seats" json:"available_seats"`
	Status            string `db:"status" json:"status"`
}

// OfferingStats carries per-offering fill rate and grade distribution,
// newest term first.
type OfferingStats struct {
	Term              string  `db:"term" json:"term"`
	MaxStudents       int     `db:"max_students" json:"max_students"`
	CurrentEnrollment int     `db:"current_enrollment" json:"current_enrollment"`
	FillRate          float64 `db:"fill_rate" json:"fill_rate"`
	TotalEnrollments  int     `db:"total_enrollments" json:"total_enrollments"`
	GradeA            int     `db:"grade_a" json:"grade_a"`
	GradeB            int     `db:"grade_b" json:"grade_b"`
	GradeC            int     `db:"grade_c" json:"grade_c"`
	GradeDF           int     `db:"grade_df" json:"grade_df"`
}

// DepartmentSummary is a per-department roll-up with outer-join semantics:
// departments with no programs, courses, or students still appear.
type DepartmentSummary struct {
	DepartmentName   string `db:"department_name" json:"department_name"`
	TotalPrograms    int    `db:"total_programs" json:"total_programs"`
	TotalCourses     int    `db:"total_courses" json:"total_courses"`
	TotalInstructors int    `db:"total_instructors" json:"total_instructors"`
	TotalStudents    int    `db:"total_students" json:"total_students"`
}

// SemesterReport is the single aggregate row for a term. Aggregates are nil
// when no offerings exist for the term.
type SemesterReport struct {
	CoursesOffered   int      `db:"courses_offered" json:"courses_offered"`
	UniqueStudents   int      `db:"unique_students" json:"unique_students"`
	TotalEnrollments int      `db:"total_enrollments" json:"total_enrollments"`
	TotalCapacity    *int     `db:"total_capacity" json:"total_capacity,omitempty"`
	TotalEnrolled    *int     `db:"total_enrolled" json:"total_enrolled,omitempty"`
	OverallFillRate  *float64 `db:"overall_fill_rate" json:"overall_fill_rate,omitempty"`
}

// AtRiskStudent is an active student whose GPA fell strictly below the
// requested threshold. Students with no graded enrollments never qualify.
type AtRiskStudent struct {
	StudentID        int64   `db:"student_id" json:"student_id"`
	StudentName      string  `db:"student_name" json:"student_name"`
	Email            string  `db:"email" json:"email"`
	ProgramName      string  `db:"program_name" json:"program_name"`
	CoursesCompleted int     `db:"courses_completed" json:"courses_completed"`
	GPA              float64 `db:"gpa" json:"gpa"`
	FailedCourses    int     `db:"failed_courses" json:"failed_courses"`
}
