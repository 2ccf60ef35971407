// =============================================================================
// i18ngen - XLSX Input Support
// =============================================================================
//
// Translators sometimes hand back the sheet as a workbook instead of CSV.
// This reads the first (or a named) sheet into the same raw row shape the
// CSV reader produces, so both inputs share one parse path.
//
// =============================================================================

package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one sheet of a workbook into raw rows. An empty sheetName
// selects the first sheet.
func ReadXLSX(filePath, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	return rows, nil
}
