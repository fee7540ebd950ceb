package lsp

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"jsonrpc":"2.0","method":"initialized"}`)
	if err := writeFrame(&buf, payload); err != nil {
		t.Fatalf("writeFrame: %v", err)
	}

	got, err := readFrame(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}

func TestReadFrame(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain",
			raw:  "Content-Length: 2\r\n\r\n{}",
			want: "{}",
		},
		{
			name: "extra headers skipped",
			raw:  "Content-Type: application/vscode-jsonrpc\r\nContent-Length: 2\r\n\r\n{}",
			want: "{}",
		},
		{
			name: "lowercase header name",
			raw:  "content-length: 4\r\n\r\nnull",
			want: "null",
		},
		{
			name:    "missing content length",
			raw:     "Content-Type: application/vscode-jsonrpc\r\n\r\n{}",
			wantErr: true,
		},
		{
			name:    "malformed length",
			raw:     "Content-Length: two\r\n\r\n{}",
			wantErr: true,
		},
		{
			name:    "oversize frame rejected",
			raw:     fmt.Sprintf("Content-Length: %d\r\n\r\n", maxFrameSize+1),
			wantErr: true,
		},
		{
			name:    "truncated payload",
			raw:     "Content-Length: 10\r\n\r\n{}",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readFrame(bufio.NewReader(strings.NewReader(tt.raw)))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("got %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("readFrame: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("payload = %q, want %q", got, tt.want)
			}
		})
	}
}
