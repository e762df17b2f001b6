package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type MarotoProvider struct{}

func NewProvider() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(25,
		text.NewCol(8, "Fee Receipt", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		col.New(4).Add(
			text.New("Receipt no: "+data.ReceiptNumber, props.Text{Size: 9, Align: align.Right}),
			text.New("Date: "+data.IssuedAt, props.Text{Size: 9, Top: 4, Align: align.Right}),
		),
	)

	// Academy and student details
	m.AddRow(35,
		col.New(6).Add(
			text.New(data.AcademyName, props.Text{Style: fontstyle.Bold}),
			text.New(data.AcademyAddress, props.Text{Top: 5, Size: 9}),
			text.New("GSTIN: "+data.AcademyGSTIN, props.Text{Top: 18, Size: 9}),
		),
		col.New(6).Add(
			text.New("Received from", props.Text{Style: fontstyle.Bold}),
			text.New(data.StudentName, props.Text{Top: 5, Size: 9}),
			text.New(data.StudentPhone, props.Text{Top: 9, Size: 9}),
			text.New("Course: "+data.CourseTitle, props.Text{Top: 18, Size: 9}),
		),
	)

	// Breakdown table
	m.AddRow(10,
		text.NewCol(8, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Amount (INR)", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, line := range data.Lines {
		m.AddRow(8,
			text.NewCol(8, line.Label, props.Text{Size: 9}),
			text.NewCol(4, line.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	m.AddRow(12,
		col.New(6),
		text.NewCol(3, "Total payable", props.Text{Size: 10, Style: fontstyle.Bold, Top: 3}),
		text.NewCol(3, data.TotalPayable, props.Text{Size: 10, Style: fontstyle.Bold, Top: 3, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(6),
		text.NewCol(3, "Paid", props.Text{Size: 9}),
		text.NewCol(3, data.PaidAmount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(6),
		text.NewCol(3, "Due", props.Text{Size: 9}),
		text.NewCol(3, data.DueAmount, props.Text{Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
