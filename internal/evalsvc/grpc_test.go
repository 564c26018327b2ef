package evalsvc

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/executor"
	"github.com/msto63/vmel/internal/journal"
	coreGrpc "github.com/msto63/vmel/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newTestClient(t *testing.T, store journal.Store) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := coreGrpc.NewServer(coreGrpc.DefaultServerConfig())
	RegisterEvaluatorServer(srv.GRPCServer(), NewGRPCServer(newTestService(t, store)))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := coreGrpc.Dial(coreGrpc.DefaultClientConfig("passthrough:///bufnet"),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func TestGRPC_Run(t *testing.T) {
	store := journal.NewMemoryStore()
	client := newTestClient(t, store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Run(ctx, "$n = 40 + 2\nprint $n\nprintln ` is $n`\nprintln $missing")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Text != "42 is 42\n" {
		t.Errorf("Text = %q", resp.Text)
	}
	if len(resp.Output) != 2 || resp.Output[0].Value != executor.IntValue(42) {
		t.Errorf("Output = %+v", resp.Output)
	}
	if len(resp.Symbols) != 1 || resp.Symbols[0].Name != "n" || resp.Symbols[0].Value != "42" {
		t.Errorf("Symbols = %+v", resp.Symbols)
	}
	if len(resp.Diagnostics) != 1 || resp.Diagnostics[0].ID != diag.RunUndefinedVariable || resp.Diagnostics[0].Line != 4 {
		t.Errorf("Diagnostics = %+v", resp.Diagnostics)
	}

	entries, _ := store.List(context.Background(), journal.Filter{Origin: journal.OriginGRPC})
	if len(entries) != 1 || entries[0].ID != resp.RunID {
		t.Errorf("journal entries = %+v", entries)
	}
}

func TestGRPC_Tokenize(t *testing.T) {
	client := newTestClient(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Tokenize(ctx, "{g} \"ls\"")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(resp.Tokens) != 3 || resp.Tokens[0].Value != "g" || resp.Tokens[1].Line != 1 {
		t.Errorf("Tokens = %+v", resp.Tokens)
	}
}

func TestGRPC_InvalidInput(t *testing.T) {
	client := newTestClient(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Run(ctx, strings.Repeat("#", 300))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("Run() code = %v, want InvalidArgument", status.Code(err))
	}
}
