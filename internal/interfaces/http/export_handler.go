package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/clinicayacucho/inventario-stock/internal/application/dto"
	"github.com/clinicayacucho/inventario-stock/internal/application/ledgerview"
	"github.com/clinicayacucho/inventario-stock/internal/application/recon"
	"github.com/clinicayacucho/inventario-stock/internal/domain/entity"
)

// Encabezados de exportación, con los mismos rótulos que la tabla del tablero.
var exportHeaders = []string{"ID", "Producto", "Principio Activo", "Lote", "Vencimiento", "Stock Real"}

// ExportHandler descarga la vista filtrada de un ledger como CSV o XLSX.
type ExportHandler struct {
	engine *recon.Engine
}

// NewExportHandler construye el handler.
func NewExportHandler(engine *recon.Engine) *ExportHandler {
	return &ExportHandler{engine: engine}
}

// Export godoc
// @Summary      Exportar ledger
// @Description  Descarga la vista filtrada del ledger. format=csv (default) o xlsx.
// @Tags         ledgers
// @Security     Bearer
// @Produce      octet-stream
// @Param        location  path   string  true   "farmacia | almacen"
// @Param        format    query  string  false  "csv | xlsx"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledgers/{location}/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	snap, err := h.engine.Reconcile(c.Context())
	if err != nil {
		return reconcileError(c, err)
	}
	ledger, ok := pickLedger(snap, c.Params("location"))
	if !ok {
		return unknownLocation(c)
	}
	if ledger.Unavailable {
		return ledgerUnavailable(c)
	}

	filter := ledgerview.Filter{
		Search:       c.Query("search"),
		InStockOnly:  c.QueryBool("in_stock_only"),
		ExpiryMonths: c.QueryInt("expiry_months"),
	}
	entries, _ := ledgerview.Apply(*ledger, filter, time.Now())

	stamp := time.Now().Format("20060102_150405")
	switch c.Query("format", "csv") {
	case "csv":
		buf, err := writeCSV(entries)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s_productos_%s.csv"`, ledger.Location, stamp))
		return c.Send(buf.Bytes())
	case "xlsx":
		buf, err := writeXLSX(entries)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s_productos_%s.xlsx"`, ledger.Location, stamp))
		return c.Send(buf.Bytes())
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato no soportado: use csv o xlsx"})
	}
}

func writeCSV(entries []entity.LedgerEntry) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, e := range entries {
		record := []string{e.ProductID, e.Name, e.ActiveIngredient, e.Lot, e.ExpirationDate, e.ComputedStock.String()}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &buf, nil
}

func writeXLSX(entries []entity.LedgerEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for i, e := range entries {
		values := []any{e.ProductID, e.Name, e.ActiveIngredient, e.Lot, e.ExpirationDate, e.ComputedStock.InexactFloat64()}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f.WriteToBuffer()
}
