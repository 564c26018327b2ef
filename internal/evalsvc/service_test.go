package evalsvc

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/foundation/vmel"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/internal/journal"
)

func newTestService(t *testing.T, store journal.Store) *Service {
	t.Helper()

	engine, err := vmel.NewEngine(vmel.Options{
		Logger:          mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelError, Output: io.Discard}),
		MaxSourceLength: 256,
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	svc, err := NewService(engine, store, Config{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestNewService_RequiresEngine(t *testing.T) {
	_, err := NewService(nil, nil, Config{})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("NewService(nil) error = %v, want INVALID_CONFIG", err)
	}
}

func TestService_Run(t *testing.T) {
	store := journal.NewMemoryStore()
	svc := newTestService(t, store)

	tests := []struct {
		name       string
		source     string
		wantText   string
		wantDiags  []diag.ID
		wantErrors int
	}{
		{
			name:     "arithmetic",
			source:   "$a = 2 * 3\nprintln $a",
			wantText: "6\n",
		},
		{
			name:       "undefined variable",
			source:     "println $nope\necho `done`",
			wantText:   "done\n",
			wantDiags:  []diag.ID{diag.RunUndefinedVariable},
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Run(context.Background(), journal.OriginCLI, tt.source)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if resp.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", resp.Text, tt.wantText)
			}
			if len(resp.Diagnostics) != len(tt.wantDiags) {
				t.Fatalf("Diagnostics = %+v, want %v", resp.Diagnostics, tt.wantDiags)
			}
			for i, id := range tt.wantDiags {
				if resp.Diagnostics[i].ID != id {
					t.Errorf("Diagnostics[%d] = %s, want %s", i, resp.Diagnostics[i].ID, id)
				}
				if resp.Diagnostics[i].Message == "" {
					t.Errorf("Diagnostics[%d] has no rendered message", i)
				}
			}

			entry, err := store.Get(context.Background(), resp.RunID)
			if err != nil {
				t.Fatalf("journal Get() error = %v", err)
			}
			if entry.Source != tt.source || entry.Output != tt.wantText || entry.ErrorCount != tt.wantErrors {
				t.Errorf("journal entry = %+v", entry)
			}
		})
	}
}

func TestService_RunCanceled(t *testing.T) {
	store := journal.NewMemoryStore()
	svc := newTestService(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := svc.Run(ctx, journal.OriginHTTP, "println 1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !resp.Canceled {
		t.Error("Canceled = false, want true")
	}
	if resp.Text != "" {
		t.Errorf("Text = %q, want empty", resp.Text)
	}

	entries, _ := store.List(context.Background(), journal.Filter{})
	if len(entries) != 1 {
		t.Errorf("journal has %d entries, want 1", len(entries))
	}
}

func TestService_RunTooLarge(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Run(context.Background(), journal.OriginCLI, strings.Repeat("#", 300))
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Run() error = %v, want INVALID_INPUT", err)
	}
}

func TestService_Tokenize(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Tokenize("$a = 1")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(resp.Tokens) != 4 || resp.Diagnostic != nil {
		t.Errorf("Tokenize() = %+v", resp)
	}

	resp, err = svc.Tokenize("println \"open")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if resp.Diagnostic == nil || resp.Diagnostic.ID != diag.LexUnterminatedString {
		t.Fatalf("Diagnostic = %+v, want %s", resp.Diagnostic, diag.LexUnterminatedString)
	}
	if resp.Diagnostic.Message == "" {
		t.Error("lexical diagnostic has no rendered message")
	}
}

func TestService_TokenCache(t *testing.T) {
	engine, err := vmel.NewEngine(vmel.Options{
		Logger: mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelError, Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	svc, err := NewService(engine, nil, Config{TokenCacheSize: 8, TokenCacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	first, err := svc.Tokenize("println 1")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	second, _ := svc.Tokenize("println 1")
	if first != second {
		t.Error("second Tokenize() should return the cached response")
	}
	_, _ = svc.Tokenize("println 2")

	stats := svc.TokenCacheStats()
	if stats.Hits != 1 || stats.Misses != 2 || stats.Size != 2 {
		t.Errorf("TokenCacheStats() = %+v", stats)
	}

	if got := newTestService(t, nil).TokenCacheStats(); got.Size != 0 {
		t.Errorf("stats without cache = %+v", got)
	}
}

func TestService_Ping(t *testing.T) {
	if err := newTestService(t, nil).Ping(context.Background()); err != nil {
		t.Errorf("Ping() without journal error = %v", err)
	}
	if err := newTestService(t, journal.NewMemoryStore()).Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
