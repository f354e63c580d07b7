package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"kingflex/internal/domain"
)

// A4 portrait layout, measurements in millimetres.
const (
	leftMargin      = 18.0
	rightEdge       = 192.0
	lineHeight      = 6.0
	bottomThreshold = 260.0
)

// Column X positions for the items table: Item, Detail, Quantity, UOM.
var colX = [4]float64{18, 72, 126, 162}

// Renderer produces the purchase-order PDF for an order and owns the
// temporary files it writes until they are cleaned up.
type Renderer struct {
	tempDir string
}

func NewRenderer(tempDir string) (*Renderer, error) {
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	return &Renderer{tempDir: tempDir}, nil
}

// Render writes <orderNumber>.pdf into the temp dir and returns its path.
// A partially written document is never left behind as a valid handle.
func (r *Renderer) Render(order *domain.Order) (string, error) {
	doc := r.build(order, time.Now())
	if doc.Err() {
		return "", fmt.Errorf("rendering order %s: %w", order.OrderNumber, doc.Error())
	}

	path := filepath.Join(r.tempDir, order.OrderNumber+".pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing order document %s: %w", path, err)
	}

	return path, nil
}

func (r *Renderer) build(order *domain.Order, now time.Time) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(leftMargin, 18, 18)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 24)
	doc.CellFormat(0, 12, "Purchase Order", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	line := func(s string) {
		doc.CellFormat(0, lineHeight, s, "", 1, "L", false, 0, "")
	}
	line("Date: " + now.Format("01/02/2006"))
	line("Order Number: " + order.OrderNumber)
	line("Company Name: " + order.CompanyName)
	line("Site Contact Name: " + order.ContactName)
	line("Phone Number: " + order.Phone)
	line("Delivery Address: " + order.DeliveryAddress)
	line("Delivery Date: " + order.DeliveryDate.Format("01/02/2006"))
	line("Delivery Time: " + order.DeliveryTime)
	line("Crane Truck: " + string(order.CraneTruck))
	doc.Ln(lineHeight)

	doc.SetFont("Helvetica", "U", 12)
	line("Items:")
	doc.SetFont("Helvetica", "", 12)
	doc.Ln(2)

	r.tableRow(doc, "Item", "Detail", "Quantity", "UOM")
	doc.Line(leftMargin, doc.GetY(), rightEdge, doc.GetY())
	doc.Ln(2)

	for _, item := range order.Items {
		if doc.GetY() > bottomThreshold {
			doc.AddPage()
		}
		detail := item.Detail
		if detail == "" {
			detail = "N/A"
		}
		quantity := strconv.FormatFloat(item.Quantity, 'f', -1, 64)
		r.tableRow(doc, item.Name, detail, quantity, item.UOM)
	}

	if order.Note != "" {
		if doc.GetY() > bottomThreshold {
			doc.AddPage()
		}
		doc.Ln(lineHeight)
		doc.SetFont("Helvetica", "U", 12)
		line("Note:")
		doc.SetFont("Helvetica", "", 12)
		doc.MultiCell(0, lineHeight, order.Note, "", "L", false)
	}

	return doc
}

func (r *Renderer) tableRow(doc *fpdf.Fpdf, item, detail, quantity, uom string) {
	y := doc.GetY()
	cells := [4]string{item, detail, quantity, uom}
	for i, cell := range cells {
		doc.SetXY(colX[i], y)
		width := rightEdge - colX[i]
		if i < len(colX)-1 {
			width = colX[i+1] - colX[i] - 2
		}
		doc.CellFormat(width, lineHeight, cell, "", 0, "L", false, 0, "")
	}
	doc.SetXY(leftMargin, y+lineHeight)
}

// Exists reports whether a previously rendered document is still readable.
func (r *Renderer) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cleanup removes a rendered document. Removing an already-deleted handle is
// not an error.
func (r *Renderer) Cleanup(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing order document %s: %w", path, err)
	}
	return nil
}
