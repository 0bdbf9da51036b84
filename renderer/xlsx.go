package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/rsutax"
	"github.com/xuri/excelize/v2"
)

const salesSheet = "Sales"

// salesColumns are the spreadsheet headers, with the form 2074 box when there is one.
var salesColumns = []string{
	"Sale date (513)",
	"Unit price (514)",
	"Shares (515)",
	"Proceeds (516)",
	"Unit acquisition price (520)",
	"Acquisition cost (521)",
	"Result",
	"Acquisition gain",
	"Acquisition gain after rebate",
	"Capital gain",
	"Rebate",
	"Tax",
	"Vesting date",
	"Lot",
}

// WriteXLSX writes the sale records as a spreadsheet with one row per record.
func WriteXLSX(w io.Writer, records []rsutax.SaleRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return fmt.Errorf("cannot name sheet: %w", err)
	}

	header := make([]any, len(salesColumns))
	for i, c := range salesColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(salesSheet, "A1", &header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}

	for i, r := range records {
		row := []any{
			r.Date.String(),
			r.SellingPrice.AsFloat(),
			r.Quantity.Decimal().InexactFloat64(),
			r.Proceeds.AsFloat(),
			r.AcquisitionPrice.AsFloat(),
			r.AcquisitionCost.AsFloat(),
			r.Result.AsFloat(),
			r.TaxableBase.AsFloat(),
			r.TaxableBaseAfterRebate.AsFloat(),
			r.Gain.AsFloat(),
			r.RebateRate.InexactFloat64(),
			r.Tax.AsFloat(),
			r.VestingDate.String(),
			r.LotID,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(salesSheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write record %d: %w", i, err)
		}
	}

	if err := f.SetPanes(salesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("cannot freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write spreadsheet: %w", err)
	}
	return nil
}
