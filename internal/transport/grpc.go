package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/keepalive"

	"github.com/mattjoyce/remex/internal/protocol"
)

// DefaultMaxMessageBytes lets whole files travel in a single call.
const DefaultMaxMessageBytes = 100 * 1024 * 1024

// Config configures the gRPC binding of Transport.
type Config struct {
	// Target is a gRPC target, e.g. "localhost:50051".
	Target string
	// Service is the gRPC service name; defaults to protocol.DefaultService.
	Service string
	// MaxMessageBytes bounds both directions; defaults to DefaultMaxMessageBytes.
	MaxMessageBytes int
	// RPCTimeout is the deadline applied to each call. Zero means none.
	RPCTimeout time.Duration
	// Compression is "" (none) or "gzip".
	Compression string
	// OutputEncoding names the executor's text encoding for command output.
	OutputEncoding string
	// Keepalive is the client keepalive ping interval. Zero disables pings.
	Keepalive time.Duration
	// DialOptions are appended after the options derived from the fields above.
	DialOptions []grpc.DialOption
}

// GRPC implements Transport over a gRPC client connection.
type GRPC struct {
	conn    *grpc.ClientConn
	client  protocol.CmdExecutorClient
	timeout time.Duration
	decoder OutputDecoder
}

var _ Transport = (*GRPC)(nil)

// Dial builds the client connection. Connecting is lazy: an unreachable
// executor surfaces as an Unavailable error from the first call.
func Dial(cfg Config, logger *slog.Logger) (*GRPC, error) {
	if strings.TrimSpace(cfg.Target) == "" {
		return nil, fmt.Errorf("transport target is empty")
	}
	if cfg.Service == "" {
		cfg.Service = protocol.DefaultService
	}
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = DefaultMaxMessageBytes
	}
	if logger == nil {
		logger = slog.Default()
	}

	decoder, err := NewOutputDecoder(cfg.OutputEncoding)
	if err != nil {
		return nil, err
	}

	callOpts := []grpc.CallOption{
		grpc.MaxCallRecvMsgSize(cfg.MaxMessageBytes),
		grpc.MaxCallSendMsgSize(cfg.MaxMessageBytes),
	}
	switch strings.ToLower(cfg.Compression) {
	case "", "none":
	case gzip.Name:
		callOpts = append(callOpts, grpc.UseCompressor(gzip.Name))
	default:
		return nil, fmt.Errorf("unsupported compression %q", cfg.Compression)
	}

	interceptors := []grpc.UnaryClientInterceptor{logCalls(logger)}
	if cfg.Service != protocol.DefaultService {
		interceptors = append(interceptors, renameService(cfg.Service))
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(callOpts...),
		grpc.WithChainUnaryInterceptor(interceptors...),
	}
	if cfg.Keepalive > 0 {
		opts = append(opts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    cfg.Keepalive,
			Timeout: cfg.Keepalive / 2,
		}))
	}
	opts = append(opts, cfg.DialOptions...)

	conn, err := grpc.NewClient(cfg.Target, opts...)
	if err != nil {
		return nil, fmt.Errorf("create grpc client for %s: %w", cfg.Target, err)
	}

	return &GRPC{
		conn:    conn,
		client:  protocol.NewCmdExecutorClient(conn),
		timeout: cfg.RPCTimeout,
		decoder: decoder,
	}, nil
}

// Close releases the underlying connection.
func (g *GRPC) Close() error {
	return g.conn.Close()
}

// CreateWorkspace implements Transport.
func (g *GRPC) CreateWorkspace(ctx context.Context, name string) error {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	reply, err := g.client.CreateWorkspace(ctx, &protocol.WorkspaceParamRequest{Name: name})
	if err != nil {
		return fmt.Errorf("%s: %w", protocol.MethodCreateWorkspace, err)
	}
	if !reply.GetIsSuccessful() {
		return fmt.Errorf("create workspace %q: %w", name, ErrRejected)
	}
	return nil
}

// DeleteWorkspace implements Transport.
func (g *GRPC) DeleteWorkspace(ctx context.Context, name string) error {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	reply, err := g.client.DeleteWorkspace(ctx, &protocol.WorkspaceParamRequest{Name: name})
	if err != nil {
		return fmt.Errorf("%s: %w", protocol.MethodDeleteWorkspace, err)
	}
	if !reply.GetIsSuccessful() {
		return fmt.Errorf("delete workspace %q: %w", name, ErrRejected)
	}
	return nil
}

// UploadFile implements Transport.
func (g *GRPC) UploadFile(ctx context.Context, remotePath string, content []byte) error {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	reply, err := g.client.UploadFile(ctx, &protocol.FileUploadRequest{Path: remotePath, FileContent: content})
	if err != nil {
		return fmt.Errorf("%s: %w", protocol.MethodUploadFile, err)
	}
	if !reply.GetIsSuccessful() {
		return fmt.Errorf("upload %q: %w", remotePath, ErrRejected)
	}
	return nil
}

// DownloadFile implements Transport.
func (g *GRPC) DownloadFile(ctx context.Context, remotePath string) ([]byte, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	reply, err := g.client.DownloadFile(ctx, &protocol.FileDownloadRequest{Path: remotePath})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", protocol.MethodDownloadFile, err)
	}
	if !reply.GetIsSuccessful() {
		return nil, fmt.Errorf("download %q: %w", remotePath, ErrRejected)
	}
	return reply.GetFileContent(), nil
}

// RunCmd implements Transport.
func (g *GRPC) RunCmd(ctx context.Context, command, workDir string) (CmdResult, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	reply, err := g.client.RunCmd(ctx, &protocol.RunCmdRequest{CmdString: command, CurrentDir: workDir})
	if err != nil {
		return CmdResult{}, fmt.Errorf("%s: %w", protocol.MethodRunCmd, err)
	}
	return CmdResult{
		ExitCode: int(reply.GetReturnCode()),
		Stdout:   g.decoder.Decode(reply.GetStdout()),
		Stderr:   g.decoder.Decode(reply.GetStderr()),
	}, nil
}

func (g *GRPC) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout > 0 {
		return context.WithTimeout(ctx, g.timeout)
	}
	return ctx, func() {}
}

// logCalls logs every unary call at debug level.
func logCalls(logger *slog.Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		logger.Debug("rpc",
			"method", method,
			"target", cc.Target(),
			"code", Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

// renameService routes calls to an executor that registers the primitive
// protocol under a different service name.
func renameService(service string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if _, name, ok := protocol.SplitMethod(method); ok {
			method = protocol.FullMethod(service, name)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
