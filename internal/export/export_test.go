package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSinkSave(t *testing.T) {
	dir := t.TempDir()
	sink := FileSink{Dir: dir}

	dest, err := sink.Save(context.Background(), "audit.csv", []byte("id,action\n"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if dest != filepath.Join(dir, "audit.csv") {
		t.Errorf("dest = %q", dest)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "id,action\n" {
		t.Errorf("content = %q", data)
	}
}

func TestFileSinkCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	sink := FileSink{Dir: dir}
	if _, err := sink.Save(context.Background(), "a.json", []byte("{}")); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
}

func TestParseS3Dest(t *testing.T) {
	tests := []struct {
		in             string
		bucket, prefix string
		wantErr        bool
	}{
		{"s3://exports/audit", "exports", "audit", false},
		{"s3://exports", "exports", "", false},
		{"s3://exports/a/b/", "exports", "a/b/", false},
		{"s3://", "", "", true},
		{"/tmp/audit.csv", "", "", true},
	}
	for _, tt := range tests {
		bucket, prefix, err := ParseS3Dest(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseS3Dest(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if bucket != tt.bucket || prefix != tt.prefix {
			t.Errorf("ParseS3Dest(%q) = (%q, %q), want (%q, %q)", tt.in, bucket, prefix, tt.bucket, tt.prefix)
		}
	}
}

func TestIsS3(t *testing.T) {
	if !IsS3("s3://bucket/key") {
		t.Error("IsS3(s3://...) = false")
	}
	if IsS3("./out") {
		t.Error("IsS3(./out) = true")
	}
}
