package source

import (
	"context"
	"errors"
	"testing"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	csvPath := writeFile(t, "data.csv", "a,b\n1,2\n")
	dbPath := newTestDB(t, 3)

	tests := []struct {
		spec       string
		wantName   string
		serverSide bool
	}{
		{"seq:42", "seq:42", false},
		{"seq:0", "seq:0", false},
		{"csv:" + csvPath, "data.csv", false},
		{csvPath, "data.csv", false},
		{"sqlite:" + dbPath + "#events", dbPath + "#events", true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			src, err := Open(ctx, tt.spec)
			if err != nil {
				t.Fatalf("Open(%q) error = %v", tt.spec, err)
			}
			defer src.Close()
			if src.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.wantName)
			}
			if src.ServerSide() != tt.serverSide {
				t.Errorf("ServerSide() = %v, want %v", src.ServerSide(), tt.serverSide)
			}
		})
	}
}

func TestOpenRejectsBadSpecs(t *testing.T) {
	for _, spec := range []string{"", "ftp:host", "seq:", "seq:-1", "seq:many", "sqlite:only-path", "sqlite:#t", "csv:"} {
		t.Run(spec, func(t *testing.T) {
			_, err := Open(context.Background(), spec)
			if !errors.Is(err, ErrUnknownSource) {
				t.Errorf("Open(%q) error = %v, want ErrUnknownSource", spec, err)
			}
		})
	}
}
