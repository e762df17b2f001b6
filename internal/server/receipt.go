package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
	"github.com/abhijitabd5/sti-academy/internal/providers/pdf"
)

// GetEnrollmentReceipt renders the fee receipt PDF for an enrollment.
func (s *Server) GetEnrollmentReceipt(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.enrollmentSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	b := resp.Breakdown
	lines := []pdf.ReceiptLine{
		{Label: "Course fee", Amount: fee.FormatAmount(b.BaseCourseFee)},
	}
	if b.DiscountPercentage > 0 {
		lines = append(lines, pdf.ReceiptLine{
			Label:  "Course fee after discount (" + fee.FormatAmount(b.DiscountPercentage) + "%)",
			Amount: fee.FormatAmount(b.DiscountedCourseFee),
		})
	}
	if b.HostelFeeApplied > 0 {
		lines = append(lines, pdf.ReceiptLine{Label: "Hostel fee", Amount: fee.FormatAmount(b.HostelFeeApplied)})
	}
	if b.MessFeeApplied > 0 {
		lines = append(lines, pdf.ReceiptLine{Label: "Mess fee", Amount: fee.FormatAmount(b.MessFeeApplied)})
	}
	if b.ExtraDiscountAmount != 0 {
		lines = append(lines, pdf.ReceiptLine{Label: "Extra discount", Amount: "-" + fee.FormatAmount(b.ExtraDiscountAmount)})
	}
	lines = append(lines, pdf.ReceiptLine{Label: "Taxable amount", Amount: fee.FormatAmount(b.PreTaxTotal)})
	if resp.IGSTApplicable {
		lines = append(lines, pdf.ReceiptLine{Label: "IGST", Amount: fee.FormatAmount(b.IGSTAmount)})
	} else {
		lines = append(lines,
			pdf.ReceiptLine{Label: "SGST", Amount: fee.FormatAmount(b.SGSTAmount)},
			pdf.ReceiptLine{Label: "CGST", Amount: fee.FormatAmount(b.CGSTAmount)},
		)
	}

	data := pdf.ReceiptData{
		AcademyName:    s.cfg.AcademyName,
		AcademyAddress: s.cfg.AcademyAddress,
		AcademyGSTIN:   s.cfg.AcademyGSTIN,
		ReceiptNumber:  resp.ID,
		IssuedAt:       resp.CreatedAt.Format("02 Jan 2006"),
		StudentName:    resp.StudentName,
		StudentPhone:   resp.StudentPhone,
		CourseTitle:    resp.CourseTitle,
		Lines:          lines,
		TotalPayable:   fee.FormatAmount(b.TotalPayableFee),
		PaidAmount:     fee.FormatAmount(b.PaidAmount),
		DueAmount:      fee.FormatAmount(b.DueAmount),
	}

	reader, err := s.pdfProvider.GenerateReceipt(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt-`+resp.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
