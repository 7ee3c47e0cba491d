package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePoints(t *testing.T) {
	cases := []struct {
		grade  Grade
		points float64
		graded bool
	}{
		{GradeA, 4, true},
		{GradeB, 3, true},
		{GradeC, 2, true},
		{GradeD, 1, true},
		{GradeF, 0, true},
		{GradeP, 0, false},
		{GradeW, 0, false},
	}
	for _, tc := range cases {
		points, graded := tc.grade.Points()
		assert.Equal(t, tc.graded, graded, "grade %s", tc.grade)
		if tc.graded {
			assert.Equal(t, tc.points, points, "grade %s", tc.grade)
		}
	}
}

func TestGradeValid(t *testing.T) {
	for _, grade := range []Grade{GradeA, GradeB, GradeC, GradeD, GradeF, GradeP, GradeW} {
		assert.True(t, grade.Valid(), "grade %s", grade)
	}
	for _, grade := range []Grade{"", "Z", "a", "A+", "AB"} {
		assert.False(t, grade.Valid(), "grade %q", grade)
	}
}
