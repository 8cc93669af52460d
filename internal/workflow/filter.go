package workflow

import (
	"strings"

	"coilworks/internal/domain"
)

const PageSize = 10

// Filter keeps the records matching query as a case-insensitive substring of
// any searchable field. An empty query keeps everything.
func Filter(records []domain.Record, query string) []domain.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r domain.Record, q string) bool {
	fields := []string{
		r.HumanID,
		r.User.Name,
		r.User.Email,
		r.User.CompanyName,
		r.User.GSTNumber,
		string(r.Status),
	}
	for _, item := range r.Items {
		fields = append(fields, item.Product.Name, item.Product.SKU, item.Product.Category)
	}
	for _, coil := range r.CustomItems {
		fields = append(fields, coil.CoilType, coil.TubeType, coil.FinType)
	}

	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Page is one page of already filtered records. Number is 1-based.
type Page struct {
	Records    []domain.Record `json:"records"`
	Number     int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Total      int             `json:"total"`
}

// Paginate slices records into pages of PageSize. Out of range page numbers
// are clamped to the nearest valid page.
func Paginate(records []domain.Record, page int) Page {
	total := len(records)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		return Page{Records: []domain.Record{}, Number: 1, TotalPages: 0, Total: 0}
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > total {
		end = total
	}
	return Page{
		Records:    records[start:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}
}
