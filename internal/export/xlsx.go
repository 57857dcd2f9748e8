package export

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"pizzapos-backend/internal/domain"
)

// OrdersXLSX renders the same per-order rows as OrdersCSV into a
// styled workbook. Amounts are written as floats so the spreadsheet
// can sum them.
func OrdersXLSX(orders []domain.Order) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Pedidos"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{
		"Numero", "Data", "Hora", "Tipo", "Status", "Cliente", "Telefone",
		"Endereco", "Bairro", "Itens", "Subtotal", "Desconto", "Taxa Entrega",
		"Total", "Pagamento", "Entregador", "Operador",
	}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, o := range orders {
		row := r + 2
		items := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, itemLabel(item))
		}
		values := []any{
			o.Number,
			o.CreatedAt.Format("2006-01-02"),
			o.CreatedAt.Format("15:04"),
			string(o.Type),
			string(o.Status),
			o.Customer.Name,
			o.Customer.Phone,
			o.Customer.Address,
			o.Customer.Neighborhood,
			strings.Join(items, " | "),
			float64(o.Subtotal) / 100,
			float64(o.Discount) / 100,
			float64(o.DeliveryFee) / 100,
			float64(o.Total) / 100,
			string(o.PaymentMethod),
			o.Driver,
			o.Operator,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	_ = f.SetColWidth(sheet, "D", "E", 12)
	_ = f.SetColWidth(sheet, "F", "F", 24)
	_ = f.SetColWidth(sheet, "G", "G", 16)
	_ = f.SetColWidth(sheet, "H", "I", 24)
	_ = f.SetColWidth(sheet, "J", "J", 40)
	_ = f.SetColWidth(sheet, "K", "N", 12)
	_ = f.SetColWidth(sheet, "O", "Q", 14)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#7F1D1D"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "Q1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CustomersXLSX renders the customer base for the CRM screen export.
func CustomersXLSX(customers []domain.Customer) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Clientes"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Nome", "Telefone", "Endereco", "Bairro", "Referencia", "Pedidos", "Total Gasto"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, cst := range customers {
		row := r + 2
		values := []any{
			cst.Name,
			cst.Phone,
			cst.Address,
			cst.Neighborhood,
			cst.Reference,
			cst.OrderCount,
			float64(cst.TotalSpent) / 100,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 16)
	_ = f.SetColWidth(sheet, "C", "D", 24)
	_ = f.SetColWidth(sheet, "E", "E", 24)
	_ = f.SetColWidth(sheet, "F", "G", 12)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#7F1D1D"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "G1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
