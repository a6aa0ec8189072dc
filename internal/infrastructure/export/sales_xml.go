// Package export genera el archivo XML de ventas para intercambio con
// sistemas contables externos.
package export

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
)

// SalesXMLExporter serializa un reporte de ventas a XML.
type SalesXMLExporter struct {
	pharmacyName string
}

// NewSalesXMLExporter construye el exportador con el nombre de la farmacia.
func NewSalesXMLExporter(pharmacyName string) *SalesXMLExporter {
	return &SalesXMLExporter{pharmacyName: pharmacyName}
}

// Export genera el documento XML con cabeceras de venta del rango dado.
//
// Estructura:
//
//	<SalesExport pharmacy="..." generatedAt="...">
//	  <Period from="..." to="..."/>
//	  <Sales count="N">
//	    <Sale id="..." date="...">
//	      <PaymentMethod>CASH</PaymentMethod>
//	      <Subtotal>2000</Subtotal> <Tax>200</Tax> <Discount>0</Discount> <Total>2200</Total>
//	    </Sale>
//	  </Sales>
//	</SalesExport>
func (e *SalesXMLExporter) Export(from, to string, sales []dto.SaleResponse) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("SalesExport")
	root.CreateAttr("pharmacy", e.pharmacyName)
	root.CreateAttr("generatedAt", time.Now().Format(time.RFC3339))

	period := root.CreateElement("Period")
	period.CreateAttr("from", from)
	period.CreateAttr("to", to)

	salesEl := root.CreateElement("Sales")
	salesEl.CreateAttr("count", fmt.Sprintf("%d", len(sales)))
	for i := range sales {
		s := &sales[i]
		saleEl := salesEl.CreateElement("Sale")
		saleEl.CreateAttr("id", s.ID)
		saleEl.CreateAttr("date", s.SaleDate)
		if s.CustomerID != "" {
			saleEl.CreateAttr("customerId", s.CustomerID)
		}
		if s.PrescriptionID != "" {
			saleEl.CreateAttr("prescriptionId", s.PrescriptionID)
		}
		saleEl.CreateElement("PaymentMethod").SetText(s.PaymentMethod)
		saleEl.CreateElement("CashierID").SetText(s.CashierID)
		saleEl.CreateElement("Subtotal").SetText(s.Subtotal.StringFixed(2))
		saleEl.CreateElement("Tax").SetText(s.Tax.StringFixed(2))
		saleEl.CreateElement("Discount").SetText(s.Discount.StringFixed(2))
		saleEl.CreateElement("Total").SetText(s.Total.StringFixed(2))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar XML: %w", err)
	}
	return out, nil
}
