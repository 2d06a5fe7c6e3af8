package protocol

import (
	"bytes"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

func TestServiceDescriptor(t *testing.T) {
	svc := File_PrimitiveProtocol_proto.Services().ByName(DefaultService)
	if svc == nil {
		t.Fatalf("service %q not found in %s", DefaultService, File_PrimitiveProtocol_proto.Path())
	}
	if got := string(svc.FullName()); got != DefaultService {
		t.Fatalf("service full name = %q, want %q (no proto package)", got, DefaultService)
	}

	want := []string{MethodCreateWorkspace, MethodDeleteWorkspace, MethodUploadFile, MethodDownloadFile, MethodRunCmd}
	methods := svc.Methods()
	if methods.Len() != len(want) {
		t.Fatalf("service has %d methods, want %d", methods.Len(), len(want))
	}
	for i, name := range want {
		if got := string(methods.Get(i).Name()); got != name {
			t.Errorf("method %d = %q, want %q", i, got, name)
		}
	}

	if CmdExecutor_RunCmd_FullMethodName != FullMethod(DefaultService, MethodRunCmd) {
		t.Errorf("generated path %q does not match FullMethod", CmdExecutor_RunCmd_FullMethodName)
	}
}

func TestWorkspaceRequestWireBytes(t *testing.T) {
	got, err := proto.Marshal(&WorkspaceParamRequest{Name: "ab"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := []byte{0x0a, 0x02, 'a', 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("Marshal() = %x, want %x", got, want)
	}
}

func TestFieldNumbers(t *testing.T) {
	tests := []struct {
		msg  proto.Message
		want []byte
	}{
		{&StatusReply{IsSuccessful: true}, []byte{0x08, 0x01}},
		{&FileUploadRequest{Path: "p", FileContent: []byte{0xff}}, []byte{0x0a, 0x01, 'p', 0x12, 0x01, 0xff}},
		{&FileDownloadReply{FileContent: []byte("x"), IsSuccessful: true}, []byte{0x0a, 0x01, 'x', 0x10, 0x01}},
		{&RunCmdRequest{CmdString: "c", CurrentDir: "d"}, []byte{0x0a, 0x01, 'c', 0x12, 0x01, 'd'}},
		{&RunCmdReply{ReturnCode: 2, Stdout: []byte("o"), Stderr: []byte("e")}, []byte{0x08, 0x02, 0x12, 0x01, 'o', 0x1a, 0x01, 'e'}},
	}
	for _, tt := range tests {
		got, err := proto.MarshalOptions{Deterministic: true}.Marshal(tt.msg)
		if err != nil {
			t.Fatalf("Marshal(%T) error = %v", tt.msg, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Marshal(%T) = %x, want %x", tt.msg, got, tt.want)
		}
	}
}

func TestDefaultValuesAreOmitted(t *testing.T) {
	msgs := []proto.Message{
		&WorkspaceParamRequest{},
		&StatusReply{},
		&FileUploadRequest{},
		&FileDownloadReply{},
		&RunCmdReply{},
	}
	for _, m := range msgs {
		if n := proto.Size(m); n != 0 {
			t.Errorf("%T zero value encodes to %d bytes, want 0", m, n)
		}
	}
}

func TestUnknownFieldsAreKept(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "Test_R_1234")

	var req WorkspaceParamRequest
	if err := proto.Unmarshal(b, &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if req.GetName() != "Test_R_1234" {
		t.Fatalf("Name = %q, want %q", req.GetName(), "Test_R_1234")
	}
	if len(req.ProtoReflect().GetUnknown()) == 0 {
		t.Fatal("unknown field 9 was dropped")
	}
}

func TestSplitMethod(t *testing.T) {
	tests := []struct {
		in            string
		service, name string
		ok            bool
	}{
		{"/CmdExecutor/RunCmd", "CmdExecutor", "RunCmd", true},
		{"/primitive.CmdExecutor/UploadFile", "primitive.CmdExecutor", "UploadFile", true},
		{"/CmdExecutor", "", "", false},
		{"//RunCmd", "", "", false},
	}
	for _, tt := range tests {
		service, name, ok := SplitMethod(tt.in)
		if service != tt.service || name != tt.name || ok != tt.ok {
			t.Errorf("SplitMethod(%q) = %q, %q, %v; want %q, %q, %v", tt.in, service, name, ok, tt.service, tt.name, tt.ok)
		}
	}
}
