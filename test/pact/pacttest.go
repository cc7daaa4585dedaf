//go:build pact

// Package pacttest holds the names, provider states and sample records shared by the
// consumer and provider sides of the recordkeeper contract.
package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "recordkeeper-api"
	ConsumerName = "front-desk"

	StateBooksBaseline   = "books baseline"
	StateBookExists      = "book with id 1 exists"
	StateBookMissing     = "no book with id 404"
	StateTicketMissing   = "no ticket with id 404"
	StateTicketCancelled = "cancelled ticket with id 1 exists"
)

const (
	// ExistingBookID and CancelledTicketID are the ids a fresh store hands to its first record.
	ExistingBookID    int64 = 1
	MissingBookID     int64 = 404
	CancelledTicketID int64 = 1
	MissingTicketID   int64 = 404

	ExistingBookISBN = "978-0743273565"
	NewBookISBN      = "978-0061120084"
)

// ExampleBook is the catalog entry seeded for "book exists" and used as the create payload base.
func ExampleBook() map[string]any {
	return map[string]any{
		"title":         "The Great Gatsby",
		"author":        "F. Scott Fitzgerald",
		"isbn":          ExistingBookISBN,
		"price":         "14.99",
		"rating":        4.5,
		"stockQuantity": 3,
	}
}

// NewBookPayload is a create request for a book the store does not hold yet.
func NewBookPayload() map[string]any {
	return map[string]any{
		"title":         "To Kill a Mockingbird",
		"author":        "Harper Lee",
		"isbn":          NewBookISBN,
		"price":         "12.99",
		"rating":        4.8,
		"stockQuantity": 5,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the pact file written by the front desk consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
