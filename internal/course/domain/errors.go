package domain

import "errors"

var (
	ErrNotFound         = errors.New("not_found")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidTitle     = errors.New("invalid_title")
	ErrInvalidDuration  = errors.New("invalid_duration")
	ErrInvalidBaseFee   = errors.New("invalid_base_fee")
	ErrInvalidDiscount  = errors.New("invalid_discount_percentage")
	ErrInvalidHostelFee = errors.New("invalid_hostel_fee")
	ErrInvalidMessFee   = errors.New("invalid_mess_fee")
	ErrSlugTaken        = errors.New("slug_taken")
)
