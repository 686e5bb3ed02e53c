package observability

import (
	"context"
	"testing"

	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders("api-key=abc, x-team = core ,broken,=v")
	if len(got) != 2 || got["api-key"] != "abc" || got["x-team"] != "core" {
		t.Fatalf("ParseHeaders = %v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestInitOTelDisabledReturnsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.Nop(), OtelConfig{Enabled: false})
	if shutdown == nil {
		t.Fatalf("shutdown func is nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestClampRatio(t *testing.T) {
	if clampRatio(-1) != 0 || clampRatio(2) != 1 || clampRatio(0.3) != 0.3 {
		t.Fatalf("clampRatio out of range")
	}
}
