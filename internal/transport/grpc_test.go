package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"github.com/mattjoyce/remex/internal/protocol"
	"github.com/mattjoyce/remex/internal/transport/transporttest"
)

func dialFake(t *testing.T, srv *transporttest.Server, mutate func(*Config)) *GRPC {
	t.Helper()
	cfg := Config{
		Target:      srv.Target(),
		DialOptions: []grpc.DialOption{srv.DialOption()},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := Dial(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestGRPCWorkspaceLifecycle(t *testing.T) {
	srv := transporttest.Start(t, protocol.DefaultService)
	g := dialFake(t, srv, nil)
	ctx := context.Background()

	require.NoError(t, g.CreateWorkspace(ctx, "Test_R_1234"))
	assert.True(t, srv.HasWorkspace("Test_R_1234"))

	require.NoError(t, g.DeleteWorkspace(ctx, "Test_R_1234"))
	assert.False(t, srv.HasWorkspace("Test_R_1234"))

	calls := srv.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, transporttest.Call{Method: protocol.MethodCreateWorkspace, Arg: "Test_R_1234"}, calls[0])
	assert.Equal(t, transporttest.Call{Method: protocol.MethodDeleteWorkspace, Arg: "Test_R_1234"}, calls[1])
}

func TestGRPCUploadDownload(t *testing.T) {
	srv := transporttest.Start(t, protocol.DefaultService)
	g := dialFake(t, srv, nil)
	ctx := context.Background()

	require.NoError(t, g.UploadFile(ctx, "ws_1/./src/main.py", []byte("print(1)\n")))
	stored, ok := srv.File("ws_1/src/main.py")
	require.True(t, ok)
	assert.Equal(t, "print(1)\n", string(stored))

	got, err := g.DownloadFile(ctx, "ws_1/src/main.py")
	require.NoError(t, err)
	assert.Equal(t, "print(1)\n", string(got))
}

func TestGRPCLargePayload(t *testing.T) {
	srv := transporttest.Start(t, protocol.DefaultService)
	g := dialFake(t, srv, nil)
	ctx := context.Background()

	// Larger than grpc's 4 MiB default receive limit.
	payload := bytes.Repeat([]byte("0123456789abcdef"), 512*1024)
	require.NoError(t, g.UploadFile(ctx, "ws/big.bin", payload))

	got, err := g.DownloadFile(ctx, "ws/big.bin")
	require.NoError(t, err)
	assert.Equal(t, len(payload), len(got))
	assert.True(t, bytes.Equal(payload, got))
}

func TestGRPCGzipCompression(t *testing.T) {
	srv := transporttest.Start(t, protocol.DefaultService)
	g := dialFake(t, srv, func(c *Config) { c.Compression = "gzip" })

	require.NoError(t, g.UploadFile(context.Background(), "ws/a.txt", []byte("compressed")))
	stored, ok := srv.File("ws/a.txt")
	require.True(t, ok)
	assert.Equal(t, "compressed", string(stored))
}

func TestGRPCRunCmdDecodesOutput(t *testing.T) {
	srv := transporttest.Start(t, protocol.DefaultService)
	srv.OnRun(func(_ *transporttest.Server, req *protocol.RunCmdRequest) *protocol.RunCmdReply {
		return &protocol.RunCmdReply{
			ReturnCode: 3,
			Stdout:     []byte{0xc4, 0xe3, 0xba, 0xc3}, // "你好" in GBK
			Stderr:     []byte("warn: " + req.CurrentDir),
		}
	})
	g := dialFake(t, srv, nil)

	res, err := g.RunCmd(context.Background(), "copy a b", "Test_R_5555")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "你好", res.Stdout)
	assert.Equal(t, "warn: Test_R_5555", res.Stderr)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "copy a b", calls[0].Arg)
	assert.Equal(t, "Test_R_5555", calls[0].Dir)
}

func TestGRPCRejectedReplies(t *testing.T) {
	srv := transporttest.Start(t, protocol.DefaultService)
	srv.Reject(protocol.MethodCreateWorkspace)
	g := dialFake(t, srv, nil)
	ctx := context.Background()

	err := g.CreateWorkspace(ctx, "ws")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.False(t, IsUnavailable(err))

	_, err = g.DownloadFile(ctx, "ws/missing.txt")
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestGRPCStatusErrors(t *testing.T) {
	srv := transporttest.Start(t, protocol.DefaultService)
	srv.FailWith(protocol.MethodRunCmd, codes.Internal)
	srv.FailWith(protocol.MethodDeleteWorkspace, codes.Unavailable)
	g := dialFake(t, srv, nil)
	ctx := context.Background()

	_, err := g.RunCmd(ctx, "dir", "ws")
	require.Error(t, err)
	assert.Equal(t, codes.Internal, Code(err))
	assert.Contains(t, err.Error(), protocol.MethodRunCmd)

	err = g.DeleteWorkspace(ctx, "ws")
	assert.True(t, IsUnavailable(err))
}

func TestGRPCRPCTimeout(t *testing.T) {
	srv := transporttest.Start(t, protocol.DefaultService)
	srv.SetDelay(2 * time.Second)
	g := dialFake(t, srv, func(c *Config) { c.RPCTimeout = 50 * time.Millisecond })

	err := g.CreateWorkspace(context.Background(), "ws")
	require.Error(t, err)
	assert.Equal(t, codes.DeadlineExceeded, Code(err))
	assert.True(t, IsUnavailable(err))
}

func TestGRPCCustomServiceName(t *testing.T) {
	srv := transporttest.Start(t, "primitive.CmdExecutor")
	g := dialFake(t, srv, func(c *Config) { c.Service = "primitive.CmdExecutor" })
	require.NoError(t, g.CreateWorkspace(context.Background(), "ws"))

	wrong := dialFake(t, srv, nil)
	err := wrong.CreateWorkspace(context.Background(), "ws")
	assert.Equal(t, codes.Unimplemented, Code(err))
}

func TestGRPCUnreachable(t *testing.T) {
	g, err := Dial(Config{
		Target:     "passthrough:///nowhere",
		RPCTimeout: time.Second,
		DialOptions: []grpc.DialOption{
			grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
				return nil, errors.New("connection refused")
			}),
		},
	}, nil)
	require.NoError(t, err)
	defer g.Close()

	err = g.CreateWorkspace(context.Background(), "ws")
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}

func TestDialValidation(t *testing.T) {
	_, err := Dial(Config{}, nil)
	assert.Error(t, err)

	_, err = Dial(Config{Target: "localhost:50051", Compression: "zstd"}, nil)
	assert.Error(t, err)

	_, err = Dial(Config{Target: "localhost:50051", OutputEncoding: "bogus-enc"}, nil)
	assert.Error(t, err)
}

func TestCode(t *testing.T) {
	assert.Equal(t, codes.OK, Code(nil))
	assert.Equal(t, codes.Unknown, Code(errors.New("plain")))
	assert.False(t, IsUnavailable(nil))
}
