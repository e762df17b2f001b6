// Package pdf renders fee receipts for enrollments.
package pdf

import (
	"context"
	"io"
)

// ReceiptLine is a single labelled amount on the receipt.
type ReceiptLine struct {
	Label  string
	Amount string
}

type ReceiptData struct {
	AcademyName    string
	AcademyAddress string
	AcademyGSTIN   string

	ReceiptNumber string
	IssuedAt      string

	StudentName  string
	StudentPhone string
	CourseTitle  string

	Lines []ReceiptLine

	TotalPayable string
	PaidAmount   string
	DueAmount    string
}

type Provider interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error)
}
