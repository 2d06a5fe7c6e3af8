// Package transporttest runs an in-process primitive executor over bufconn
// for tests that need the real gRPC binding.
package transporttest

import (
	"context"
	"net"
	"path"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	_ "google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/mattjoyce/remex/internal/protocol"
)

const (
	bufSize         = 1 << 20
	maxMessageBytes = 100 * 1024 * 1024
)

// Call records one request received by the server.
type Call struct {
	Method string
	// Arg is the workspace name, file path or command string.
	Arg string
	// Dir is the working directory of RunCmd calls.
	Dir string
}

// RunFunc scripts RunCmd. It may read and write files through the Server.
type RunFunc func(s *Server, req *protocol.RunCmdRequest) *protocol.RunCmdReply

// Server is a fake executor keeping workspaces and files in memory.
type Server struct {
	protocol.UnimplementedCmdExecutorServer

	mu         sync.Mutex
	workspaces map[string]bool
	files      map[string][]byte
	calls      []Call
	failures   map[string]error
	rejects    map[string]bool
	delay      time.Duration
	run        RunFunc

	lis *bufconn.Listener
	srv *grpc.Server
}

// Start launches a server registered under service and stops it when the
// test ends.
func Start(t testing.TB, service string) *Server {
	t.Helper()

	s := &Server{
		workspaces: make(map[string]bool),
		files:      make(map[string][]byte),
		failures:   make(map[string]error),
		rejects:    make(map[string]bool),
		lis:        bufconn.Listen(bufSize),
	}
	s.srv = grpc.NewServer(
		grpc.MaxRecvMsgSize(maxMessageBytes),
		grpc.MaxSendMsgSize(maxMessageBytes),
		grpc.UnaryInterceptor(s.intercept),
	)
	if service == protocol.DefaultService {
		protocol.RegisterCmdExecutorServer(s.srv, s)
	} else {
		desc := protocol.CmdExecutor_ServiceDesc
		desc.ServiceName = service
		s.srv.RegisterService(&desc, s)
	}

	go func() { _ = s.srv.Serve(s.lis) }()
	t.Cleanup(s.srv.Stop)
	return s
}

// Target is the dial target to use together with DialOption.
func (s *Server) Target() string { return "passthrough:///bufnet" }

// DialOption routes client connections to the in-memory listener.
func (s *Server) DialOption() grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return s.lis.DialContext(ctx)
	})
}

// FailWith makes every call of method return a gRPC status with code.
func (s *Server) FailWith(method string, code codes.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status.Error(code, method+" failed")
}

// Reject makes method answer with is_successful=false.
func (s *Server) Reject(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejects[method] = true
}

// SetDelay delays every reply by d, or until the call's deadline.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// OnRun scripts RunCmd.
func (s *Server) OnRun(fn RunFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run = fn
}

// Calls returns every request received so far, in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// HasWorkspace reports whether name currently exists.
func (s *Server) HasWorkspace(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workspaces[name]
}

// File returns the stored contents at p.
func (s *Server) File(p string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[path.Clean(p)]
	return b, ok
}

// PutFile stores contents at p. Safe to call from a RunFunc.
func (s *Server) PutFile(p string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path.Clean(p)] = content
}

// intercept records each call and applies scripted failures and delays.
func (s *Server) intercept(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	_, name, _ := protocol.SplitMethod(info.FullMethod)

	s.mu.Lock()
	s.calls = append(s.calls, describe(name, req))
	failure := s.failures[name]
	delay := s.delay
	s.mu.Unlock()

	if failure != nil {
		return nil, failure
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, status.FromContextError(ctx.Err()).Err()
		}
	}
	return handler(ctx, req)
}

func describe(method string, req any) Call {
	switch r := req.(type) {
	case *protocol.WorkspaceParamRequest:
		return Call{Method: method, Arg: r.GetName()}
	case *protocol.FileUploadRequest:
		return Call{Method: method, Arg: r.GetPath()}
	case *protocol.FileDownloadRequest:
		return Call{Method: method, Arg: r.GetPath()}
	case *protocol.RunCmdRequest:
		return Call{Method: method, Arg: r.GetCmdString(), Dir: r.GetCurrentDir()}
	}
	return Call{Method: method}
}

func (s *Server) rejected(method string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejects[method]
}

// CreateWorkspace implements protocol.CmdExecutorServer.
func (s *Server) CreateWorkspace(_ context.Context, req *protocol.WorkspaceParamRequest) (*protocol.StatusReply, error) {
	if s.rejected(protocol.MethodCreateWorkspace) {
		return &protocol.StatusReply{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[req.GetName()] = true
	return &protocol.StatusReply{IsSuccessful: true}, nil
}

// DeleteWorkspace implements protocol.CmdExecutorServer.
func (s *Server) DeleteWorkspace(_ context.Context, req *protocol.WorkspaceParamRequest) (*protocol.StatusReply, error) {
	if s.rejected(protocol.MethodDeleteWorkspace) {
		return &protocol.StatusReply{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, req.GetName())
	return &protocol.StatusReply{IsSuccessful: true}, nil
}

// UploadFile implements protocol.CmdExecutorServer.
func (s *Server) UploadFile(_ context.Context, req *protocol.FileUploadRequest) (*protocol.StatusReply, error) {
	if s.rejected(protocol.MethodUploadFile) {
		return &protocol.StatusReply{}, nil
	}
	s.PutFile(req.GetPath(), req.GetFileContent())
	return &protocol.StatusReply{IsSuccessful: true}, nil
}

// DownloadFile implements protocol.CmdExecutorServer.
func (s *Server) DownloadFile(_ context.Context, req *protocol.FileDownloadRequest) (*protocol.FileDownloadReply, error) {
	if s.rejected(protocol.MethodDownloadFile) {
		return &protocol.FileDownloadReply{}, nil
	}
	content, ok := s.File(req.GetPath())
	if !ok {
		return &protocol.FileDownloadReply{}, nil
	}
	return &protocol.FileDownloadReply{FileContent: content, IsSuccessful: true}, nil
}

// RunCmd implements protocol.CmdExecutorServer.
func (s *Server) RunCmd(_ context.Context, req *protocol.RunCmdRequest) (*protocol.RunCmdReply, error) {
	s.mu.Lock()
	run := s.run
	s.mu.Unlock()
	if run == nil {
		return &protocol.RunCmdReply{}, nil
	}
	return run(s, req), nil
}
