// internal/catalog/book.go
//
// Core record types for the catalog: the Book itself, its loan Status,
// and the Field selector used by search.

package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Status is the loan state of a book. Exactly two values are valid.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked_out"
)

// Valid reports whether the status is one of the two allowed values.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusCheckedOut
}

// ParseStatus normalizes user input into a Status.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("status %q: %w", value, ErrInvalidStatus)
	}
	return s, nil
}

// Book is one catalog record. Ids are assigned sequentially by the
// catalog and are unique across the active set.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
	Status Status `json:"status"`
}

// Field names a searchable book attribute.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldYear   Field = "year"
)

// ParseField normalizes user input into a search Field.
func ParseField(value string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(value)))
	switch f {
	case FieldTitle, FieldAuthor, FieldYear:
		return f, nil
	}
	return "", fmt.Errorf("field %q: %w", value, ErrInvalidField)
}

// value returns the book attribute selected by f.
func (b Book) value(f Field) string {
	switch f {
	case FieldTitle:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldYear:
		return b.Year
	}
	return ""
}

// ValidateYear checks that year is all digits and between 1000 and the
// current year inclusive.
func ValidateYear(year string) error {
	year = strings.TrimSpace(year)
	if year == "" {
		return fmt.Errorf("year is empty: %w", ErrInvalidYear)
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return fmt.Errorf("year %q is not a number: %w", year, ErrInvalidYear)
		}
	}
	n := 0
	for _, r := range year {
		n = n*10 + int(r-'0')
		if n > 9999 {
			break
		}
	}
	if n < 1000 || n > time.Now().Year() {
		return fmt.Errorf("year %q out of range: %w", year, ErrInvalidYear)
	}
	return nil
}
