package export

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
)

func TestExport_EstructuraDelDocumento(t *testing.T) {
	exporter := NewSalesXMLExporter("Farmacia Central")
	sales := []dto.SaleResponse{
		{
			ID:            "venta-1",
			CustomerID:    "cli-1",
			PaymentMethod: "CASH",
			CashierID:     "caj-1",
			Subtotal:      decimal.NewFromInt(2000),
			Tax:           decimal.NewFromInt(200),
			Discount:      decimal.Zero,
			Total:         decimal.NewFromInt(2200),
			SaleDate:      "2026-08-01 10:30:00",
		},
		{
			ID:            "venta-2",
			PaymentMethod: "CARD",
			CashierID:     "caj-1",
			Subtotal:      decimal.NewFromInt(500),
			Tax:           decimal.NewFromInt(50),
			Discount:      decimal.NewFromInt(25),
			Total:         decimal.NewFromInt(525),
			SaleDate:      "2026-08-02 16:00:00",
		},
	}

	out, err := exporter.Export("2026-08-01", "2026-08-31", sales)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("SalesExport")
	require.NotNil(t, root)
	assert.Equal(t, "Farmacia Central", root.SelectAttrValue("pharmacy", ""))

	period := root.SelectElement("Period")
	require.NotNil(t, period)
	assert.Equal(t, "2026-08-01", period.SelectAttrValue("from", ""))

	salesEl := root.SelectElement("Sales")
	require.NotNil(t, salesEl)
	assert.Equal(t, "2", salesEl.SelectAttrValue("count", ""))

	elements := salesEl.SelectElements("Sale")
	require.Len(t, elements, 2)

	first := elements[0]
	assert.Equal(t, "venta-1", first.SelectAttrValue("id", ""))
	assert.Equal(t, "cli-1", first.SelectAttrValue("customerId", ""))
	assert.Equal(t, "2200.00", first.SelectElement("Total").Text())
	assert.Equal(t, "CASH", first.SelectElement("PaymentMethod").Text())

	// venta de mostrador: sin atributo customerId
	second := elements[1]
	assert.Empty(t, second.SelectAttrValue("customerId", ""))
	assert.Equal(t, "525.00", second.SelectElement("Total").Text())
}

func TestExport_SinVentas(t *testing.T) {
	exporter := NewSalesXMLExporter("Farmacia Central")

	out, err := exporter.Export("2026-08-01", "2026-08-31", nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	salesEl := doc.SelectElement("SalesExport").SelectElement("Sales")
	require.NotNil(t, salesEl)
	assert.Equal(t, "0", salesEl.SelectAttrValue("count", ""))
	assert.Empty(t, salesEl.SelectElements("Sale"))
}
