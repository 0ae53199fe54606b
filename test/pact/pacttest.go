//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "cafe-api"
	ConsumerName = "cafe-web"

	StateMenuSeeded    = "the menu is seeded"
	StateMemberNoOrder = "a signed-in member with no orders"
)

const (
	EspressoID       int64 = 1
	MissingProductID int64 = 999
	MissingOrderID   int64 = 404

	EspressoPrice = "3.00"
	GuestEmail    = "pact.guest@example.com"
	ExampleBearer = "Bearer pact-member-token"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the web consumer.
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

// ExampleGuestCheckout is the guest cart used by the checkout interaction.
func ExampleGuestCheckout() map[string]any {
	return map[string]any{
		"email":     GuestEmail,
		"firstName": "Pact",
		"lastName":  "Guest",
		"items": []map[string]any{
			{"productId": EspressoID, "quantity": 2},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
