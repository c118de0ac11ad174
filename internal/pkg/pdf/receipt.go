// internal/pkg/pdf/receipt.go
package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// StoreInfo is rendered in the receipt header
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// receiptLine is one rendered order line with decoded toppings
type receiptLine struct {
	Name      string
	SizeName  string
	Toppings  []string
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

// ReceiptData is the template payload for an order receipt
type ReceiptData struct {
	ReceiptNumber string
	IssuedAt      string
	Order         *order.Order
	Lines         []receiptLine
	Store         StoreInfo
	Currency      string
}

// GenerateReceipt renders an order receipt as a PDF
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCPT-%s", o.OrderNumber),
		IssuedAt:      time.Now().Format("02/01/2006 15:04"),
		Order:         o,
		Lines:         buildLines(o),
		Store: StoreInfo{
			Name:    s.config.Store.Name,
			Address: s.config.Store.Address,
			Phone:   s.config.Store.Phone,
			Email:   s.config.Store.Email,
		},
		Currency: o.Currency,
	}

	htmlContent, err := s.renderHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render receipt HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// buildLines decodes the stored topping snapshots into display names
func buildLines(o *order.Order) []receiptLine {
	lines := make([]receiptLine, 0, len(o.Items))
	for _, item := range o.Items {
		var snapshots []struct {
			Name string `json:"name"`
		}
		// Malformed snapshots just render without toppings.
		_ = json.Unmarshal([]byte(item.Toppings), &snapshots)

		names := make([]string, 0, len(snapshots))
		for _, snapshot := range snapshots {
			names = append(names, snapshot.Name)
		}

		lines = append(lines, receiptLine{
			Name:      item.Name,
			SizeName:  item.SizeName,
			Toppings:  names,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return lines
}

func (s *Service) renderHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: "DejaVu Sans", sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 0; }
  .muted { color: #777; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { padding: 6px 8px; border-bottom: 1px solid #ddd; text-align: left; }
  td.num, th.num { text-align: right; }
  .total td { font-weight: bold; border-top: 2px solid #222; }
  .toppings { color: #777; font-size: 10px; }
</style>
</head>
<body>
  <h1>{{.Store.Name}}</h1>
  <p class="muted">{{.Store.Address}}<br>{{.Store.Phone}} · {{.Store.Email}}</p>

  <p>
    <strong>Biên nhận:</strong> {{.ReceiptNumber}}<br>
    <strong>Đơn hàng:</strong> {{.Order.OrderNumber}}<br>
    <strong>Ngày:</strong> {{.IssuedAt}}<br>
    <strong>Khách hàng:</strong> {{.Order.CustomerName}} · {{.Order.CustomerPhone}}<br>
    <strong>Địa chỉ:</strong> {{.Order.Address}}
  </p>

  <table>
    <tr><th>Món</th><th class="num">SL</th><th class="num">Đơn giá</th><th class="num">Thành tiền</th></tr>
    {{range .Lines}}
    <tr>
      <td>
        {{.Name}}{{if .SizeName}} ({{.SizeName}}){{end}}
        {{if .Toppings}}<div class="toppings">{{range $i, $t := .Toppings}}{{if $i}}, {{end}}{{$t}}{{end}}</div>{{end}}
      </td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{.UnitPrice}}</td>
      <td class="num">{{.LineTotal}}</td>
    </tr>
    {{end}}
    <tr class="total">
      <td colspan="3">Tổng cộng ({{.Order.TotalQuantity}} món)</td>
      <td class="num">{{.Order.TotalAmount}} {{.Currency}}</td>
    </tr>
  </table>

  <p class="muted">Cảm ơn quý khách!</p>
</body>
</html>`
