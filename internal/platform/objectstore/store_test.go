package objectstore

import (
	"context"
	"strings"
	"testing"

	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

func TestCleanKey(t *testing.T) {
	got, err := cleanKey("  /u1/1700000000000_notes.txt ")
	if err != nil || got != "u1/1700000000000_notes.txt" {
		t.Fatalf("cleanKey = %q, %v", got, err)
	}
	if _, err := cleanKey(" / "); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestSupabasePublicURL(t *testing.T) {
	s, err := NewSupabaseStore(logger.Nop(), SupabaseConfig{
		URL:        "https://proj.supabase.co/",
		ServiceKey: "service-key",
	})
	if err != nil {
		t.Fatalf("NewSupabaseStore: %v", err)
	}
	got := s.PublicURL("u1/1_notes.txt")
	if !strings.Contains(got, "proj.supabase.co") ||
		!strings.Contains(got, "/object/public/study-materials/") ||
		!strings.HasSuffix(got, "u1/1_notes.txt") {
		t.Fatalf("PublicURL = %q", got)
	}
}

func TestNewSupabaseStoreRequiresCredentials(t *testing.T) {
	if _, err := NewSupabaseStore(logger.Nop(), SupabaseConfig{URL: "https://x.supabase.co"}); err == nil {
		t.Fatalf("expected error without service key")
	}
	if _, err := NewSupabaseStore(logger.Nop(), SupabaseConfig{ServiceKey: "k"}); err == nil {
		t.Fatalf("expected error without url")
	}
}

func TestGCSPublicURL(t *testing.T) {
	s := &gcsStore{bucket: "study-materials"}
	if got := s.PublicURL("/u1/a.pdf"); got != "https://storage.googleapis.com/study-materials/u1/a.pdf" {
		t.Fatalf("PublicURL = %q", got)
	}
	s.cdnDomain = "cdn.example.com"
	if got := s.PublicURL("u1/a.pdf"); got != "https://cdn.example.com/u1/a.pdf" {
		t.Fatalf("PublicURL with cdn = %q", got)
	}
}

func TestNewGCSStoreRequiresBucket(t *testing.T) {
	if _, err := NewGCSStore(context.Background(), logger.Nop(), GCSConfig{}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}

func TestClientOptions(t *testing.T) {
	if opts := clientOptions(""); opts != nil {
		t.Fatalf("expected no options for empty creds")
	}
	if opts := clientOptions(`{"type":"service_account"}`); len(opts) != 1 {
		t.Fatalf("expected one option for inline json")
	}
	if opts := clientOptions("/etc/creds.json"); len(opts) != 1 {
		t.Fatalf("expected one option for a path")
	}
}
