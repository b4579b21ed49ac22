package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovenbird/bakehouse/internal/client"
)

func TestWriteOrdersCSV(t *testing.T) {
	orders := []client.Order{
		{
			ID: 1, CustomerName: "Ada", CustomerEmail: "ada@example.com",
			Status: "READY", Total: 12.5,
			Items: []client.OrderItem{
				{ProductName: "rye", Quantity: 1, UnitPrice: 5, LineTotal: 5},
				{ProductName: "bun", Quantity: 3, UnitPrice: 2.5, LineTotal: 7.5, Instructions: "warm"},
			},
		},
		{ID: 2, CustomerName: "Bob", CustomerEmail: "bob@example.com", Status: "PENDING"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, orders))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "header, two item rows, one itemless order row")
	require.Contains(t, lines[0], "order_id")
	require.Contains(t, lines[0], "line_total")
	require.Contains(t, lines[1], "rye")
	require.Contains(t, lines[2], "warm")
	require.Contains(t, lines[3], "Bob")
}

func TestWriteOrdersCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil))
	require.Contains(t, buf.String(), "order_id", "even an empty export keeps the header")
}
