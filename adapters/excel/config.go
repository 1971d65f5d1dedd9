package excel

// ExcelConfig holds configuration for a labeled population workbook
type ExcelConfig struct {
	FilePath      string `json:"file_path"`
	Sheet         string `json:"sheet"`          // xlsx only
	Column        string `json:"column"`         // empty selects the first column
	PositiveValue string `json:"positive_value"` // compared case-insensitively
}

// DefaultExcelConfig returns sensible defaults for label loading
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		Sheet:         "Sheet1",
		PositiveValue: "blue",
	}
}
