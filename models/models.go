package models

// NewsRecord is one parsed ticker item. Date is kept verbatim as emitted
// by the formatter (expected "YYYY-MM-DD" or "YYYY-MM-DD HH:MM"); it is
// never validated against a calendar.
type NewsRecord struct {
	Date     string `json:"date"`
	Source   string `json:"source"`
	Headline string `json:"headline"`
}
