package models

import "time"

// StudentStatus represents the lifecycle of a student record.
type StudentStatus string

// Possible student statuses.
const (
	StudentStatusActive    StudentStatus = "Active"
	StudentStatusInactive  StudentStatus = "Inactive"
	StudentStatusGraduated StudentStatus = "Graduated"
)

// Student represents a learner admitted to a program.
type Student struct {
	ID          int64         `db:"id" json:"id"`
	FirstName   string        `db:"first_name" json:"first_name"`
	LastName    string        `db:"last_name" json:"last_name"`
	Email       string        `db:"email" json:"email"`
	DateOfBirth time.Time     `db:"date_of_birth" json:"date_of_birth"`
	ProgramID   int64         `db:"program_id" json:"program_id"`
	Status      StudentStatus `db:"status" json:"status"`
}

// StudentDetail enriches Student with program and department context.
type StudentDetail struct {
	Student
	ProgramName    string `db:"program_name" json:"program_name"`
	DepartmentName string `db:"department_name" json:"department_name"`
}
