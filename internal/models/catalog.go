package models

// Department is a read-only reference entity.
type Department struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Program groups students and belongs to exactly one department.
type Program struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	DepartmentID int64  `db:"department_id" json:"department_id"`
}

// Instructor teaches course offerings.
type Instructor struct {
	ID           int64  `db:"id" json:"id"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	Email        string `db:"email" json:"email"`
	DepartmentID int64  `db:"department_id" json:"department_id"`
}

// Course is an immutable catalog entity.
type Course struct {
	ID           int64  `db:"id" json:"id"`
	Code         string `db:"code" json:"code"`
	Name         string `db:"name" json:"name"`
	Credits      int    `db:"credits" json:"credits"`
	Level        string `db:"level" json:"level"`
	DepartmentID int64  `db:"department_id" json:"department_id"`
}
