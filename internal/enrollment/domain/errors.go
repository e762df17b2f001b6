package domain

import "errors"

var (
	ErrNotFound             = errors.New("not_found")
	ErrInvalidID            = errors.New("invalid_id")
	ErrCourseRequired       = errors.New("course_required")
	ErrCourseInactive       = errors.New("course_inactive")
	ErrInvalidStudentName   = errors.New("invalid_student_name")
	ErrInvalidStudentPhone  = errors.New("invalid_student_phone")
	ErrInvalidPaidAmount    = errors.New("invalid_paid_amount")
	ErrInvalidExtraDiscount = errors.New("invalid_extra_discount")
	ErrTotalMismatch        = errors.New("total_mismatch")
)
