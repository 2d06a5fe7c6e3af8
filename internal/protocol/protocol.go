// Package protocol holds the primitive protocol spoken by remote executors.
// The message and service types are generated from PrimitiveProtocol.proto.
package protocol

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative PrimitiveProtocol.proto

import "strings"

// DefaultService is the gRPC service name of the primitive protocol.
const DefaultService = "CmdExecutor"

// RPC method names of the primitive protocol.
const (
	MethodCreateWorkspace = "CreateWorkspace"
	MethodDeleteWorkspace = "DeleteWorkspace"
	MethodUploadFile      = "UploadFile"
	MethodDownloadFile    = "DownloadFile"
	MethodRunCmd          = "RunCmd"
)

// FullMethod returns the gRPC method path for service and method.
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

// SplitMethod splits a gRPC method path into its service and method names.
func SplitMethod(fullMethod string) (service, method string, ok bool) {
	service, method, ok = strings.Cut(strings.TrimPrefix(fullMethod, "/"), "/")
	if !ok || service == "" || method == "" {
		return "", "", false
	}
	return service, method, true
}
