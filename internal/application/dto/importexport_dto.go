package dto

// ImportRowError one rejected CSV row with its reason.
type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult outcome of a CSV import: accepted rows, duplicates skipped,
// and per-row rejections.
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
