package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/lead-ingest/internal/model"
)

// RecordsFromXLSX adapts a spreadsheet export into raw records: the first row
// of the first sheet supplies the field names, each following row becomes one
// record. Rows with no non-empty cells are skipped.
func RecordsFromXLSX(path string) ([]model.RawRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("ingest: xlsx file has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, eris.New("ingest: xlsx sheet needs a header row and at least one data row")
	}

	headers := make([]string, len(sheet.Rows[0].Cells))
	for j, cell := range sheet.Rows[0].Cells {
		headers[j] = strings.TrimSpace(cell.String())
	}

	var records []model.RawRecord
	for _, row := range sheet.Rows[1:] {
		rec := make(model.RawRecord, len(headers))
		empty := true
		for j, cell := range row.Cells {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			v := strings.TrimSpace(cell.String())
			if v == "" {
				continue
			}
			rec[headers[j]] = v
			empty = false
		}
		if !empty {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, eris.New("ingest: xlsx sheet has no data rows")
	}
	return records, nil
}
