package console

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/ovenbird/bakehouse/internal/client"
)

type orderRow struct {
	OrderID      uint    `csv:"order_id"`
	Customer     string  `csv:"customer"`
	Email        string  `csv:"email"`
	Status       string  `csv:"status"`
	OrderTotal   float64 `csv:"order_total"`
	Product      string  `csv:"product"`
	Quantity     uint    `csv:"quantity"`
	UnitPrice    float64 `csv:"unit_price"`
	LineTotal    float64 `csv:"line_total"`
	Instructions string  `csv:"instructions"`
}

// WriteOrdersCSV flattens orders to one row per line item. An order without
// items still gets a single row so it shows up in the export.
func WriteOrdersCSV(w io.Writer, orders []client.Order) error {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		base := orderRow{
			OrderID:    o.ID,
			Customer:   o.CustomerName,
			Email:      o.CustomerEmail,
			Status:     o.Status,
			OrderTotal: o.Total,
		}
		if len(o.Items) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, it := range o.Items {
			row := base
			row.Product = it.ProductName
			row.Quantity = it.Quantity
			row.UnitPrice = it.UnitPrice
			row.LineTotal = it.LineTotal
			row.Instructions = it.Instructions
			rows = append(rows, row)
		}
	}
	return gocsv.Marshal(&rows, w)
}
