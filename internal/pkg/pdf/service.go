// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/order"
)

// Service renders order invoices as PDF documents
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// GenerateInvoice renders the invoice PDF for an order
func (s *Service) GenerateInvoice(o *order.Order) ([]byte, error) {
	html, err := s.renderInvoiceHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfg.Bytes(), nil
}

func (s *Service) renderInvoiceHTML(o *order.Order) ([]byte, error) {
	t, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"StoreName": s.config.App.Name,
		"Order":     o,
		"Date":      o.CreatedAt.Format("02 Jan 2006"),
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #333; margin: 40px; }
  h1 { font-size: 24px; }
  table { width: 100%; border-collapse: collapse; margin-top: 20px; }
  th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
  th { background: #f4f4f4; }
  .totals td { border: none; text-align: right; }
  .muted { color: #777; font-size: 12px; }
</style>
</head>
<body>
  <h1>{{.StoreName}} — Invoice</h1>
  <p>
    Order <strong>{{.Order.OrderNumber}}</strong><br>
    Date: {{.Date}}<br>
    Status: {{.Order.Status}}
  </p>

  <p>
    <strong>Ship to</strong><br>
    {{.Order.ShipFullName}}<br>
    {{.Order.ShipAddressLine1}}{{if .Order.ShipAddressLine2}}, {{.Order.ShipAddressLine2}}{{end}}<br>
    {{.Order.ShipCity}}{{if .Order.ShipState}}, {{.Order.ShipState}}{{end}} {{.Order.ShipPostalCode}}<br>
    {{.Order.ShipCountry}}<br>
    {{.Order.ShipPhone}}
  </p>

  <table>
    <tr><th>Product</th><th>Unit Price</th><th>Qty</th><th>Total</th></tr>
    {{range .Order.Items}}
    <tr>
      <td>{{.ProductName}}</td>
      <td>{{.UnitPrice}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.LineTotal}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal:</td><td>{{.Order.Subtotal}}</td></tr>
    <tr><td>Shipping:</td><td>{{.Order.ShippingFee}}</td></tr>
    <tr><td><strong>Total:</strong></td><td><strong>{{.Order.TotalAmount}}</strong></td></tr>
  </table>

  <p class="muted">Payment method: {{.Order.Payment}}. Thank you for shopping with us.</p>
</body>
</html>`
