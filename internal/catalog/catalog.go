// internal/catalog/catalog.go
//
// Catalog operations over the in-memory book list. Every mutating
// operation persists the whole list through the store; every validation
// failure is recorded in the error log in addition to being returned.

package catalog

import (
	"fmt"
	"iter"
	"strings"

	"github.com/kingrea/libris/internal/errorlog"
)

// Catalog holds the ordered book list and its persistence collaborators.
type Catalog struct {
	books  []Book
	store  *Store
	errlog *errorlog.Log
}

// Open loads the catalog from the store. A missing file starts the
// catalog empty; an unparseable file does the same but records the parse
// failure in the error log.
func Open(store *Store, errlog *errorlog.Log) *Catalog {
	books, err := store.Load()
	if err != nil {
		errlog.Record("load catalog: %v", err)
	}
	return &Catalog{books: books, store: store, errlog: errlog}
}

// Books returns a copy of the catalog in insertion order.
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Add validates the fields, assigns the next free id, appends the book
// with status available and persists the list.
func (c *Catalog) Add(title, author, year string) (Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	year = strings.TrimSpace(year)
	if title == "" {
		return Book{}, c.fail(ErrEmptyTitle)
	}
	if author == "" {
		return Book{}, c.fail(ErrEmptyAuthor)
	}
	if err := ValidateYear(year); err != nil {
		return Book{}, c.fail(err)
	}
	book := Book{
		ID:     c.nextID(),
		Title:  title,
		Author: author,
		Year:   year,
		Status: StatusAvailable,
	}
	c.books = append(c.books, book)
	if err := c.persist(); err != nil {
		return Book{}, err
	}
	return book, nil
}

// Remove deletes the book with the given id and persists the list.
func (c *Catalog) Remove(id int) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return c.fail(fmt.Errorf("remove book %d: %w", id, ErrNotFound))
	}
	c.books = append(c.books[:idx], c.books[idx+1:]...)
	return c.persist()
}

// UpdateStatus changes the loan status of the book with the given id and
// persists the list.
func (c *Catalog) UpdateStatus(id int, status Status) error {
	if !status.Valid() {
		return c.fail(fmt.Errorf("status %q: %w", status, ErrInvalidStatus))
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return c.fail(fmt.Errorf("update book %d: %w", id, ErrNotFound))
	}
	c.books[idx].Status = status
	return c.persist()
}

// Search yields books whose selected field contains the query,
// case-insensitively. The sequence is single-use; call Search again to
// iterate anew.
func (c *Catalog) Search(field Field, query string) iter.Seq[Book] {
	needle := strings.ToLower(strings.TrimSpace(query))
	return func(yield func(Book) bool) {
		for _, b := range c.books {
			if strings.Contains(strings.ToLower(b.value(field)), needle) {
				if !yield(b) {
					return
				}
			}
		}
	}
}

// nextID returns max existing id + 1, or 1 for an empty catalog.
func (c *Catalog) nextID() int {
	next := 1
	for _, b := range c.books {
		if b.ID >= next {
			next = b.ID + 1
		}
	}
	return next
}

func (c *Catalog) indexOf(id int) int {
	for i, b := range c.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) persist() error {
	if err := c.store.Save(c.books); err != nil {
		c.errlog.Record("save catalog: %v", err)
		return err
	}
	return nil
}

// fail records a validation failure and hands the error back unchanged.
func (c *Catalog) fail(err error) error {
	c.errlog.Record("%v", err)
	return err
}
