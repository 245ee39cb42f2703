package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestNew(t *testing.T) {
	x := New()
	if x.Version != 1 {
		t.Errorf("Version = %d, want 1", x.Version)
	}
	if x.Artifacts == nil || len(x.Artifacts) != 0 {
		t.Errorf("Artifacts = %v, want empty initialized map", x.Artifacts)
	}
}

func TestKey(t *testing.T) {
	tests := map[string]string{
		"cpam/": "cpam/.index.json",
		"cpam":  "cpam/.index.json",
		"":      ".index.json",
	}
	for prefix, want := range tests {
		if got := Key(prefix); got != want {
			t.Errorf("Key(%q) = %q, want %q", prefix, got, want)
		}
	}
}

func TestIndexJSONFormat(t *testing.T) {
	x := New()
	x.Record("cpam/demo/Release/demo", ArtifactEntry{
		Project:   "demo",
		Mode:      "Release",
		Generator: "Ninja",
		Mtime:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Size:      100,
	})

	data, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	want := `{
  "version": 1,
  "artifacts": {
    "cpam/demo/Release/demo": {
      "project": "demo",
      "mode": "Release",
      "generator": "Ninja",
      "mtime": "2025-01-01T00:00:00Z",
      "size": 100
    }
  }
}`
	if string(data) != want {
		t.Errorf("JSON format mismatch:\ngot:\n%s\nwant:\n%s", data, want)
	}
}

func TestUnchanged(t *testing.T) {
	mtime := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	x := New()
	x.Record("k", ArtifactEntry{Project: "demo", Mtime: mtime.In(time.FixedZone("JST", 9*3600)), Size: 10})

	tests := []struct {
		name  string
		key   string
		mtime time.Time
		size  int64
		want  bool
	}{
		{"same", "k", mtime, 10, true},
		{"same instant other zone", "k", mtime.In(time.FixedZone("EST", -5*3600)), 10, true},
		{"newer", "k", mtime.Add(time.Second), 10, false},
		{"resized", "k", mtime, 11, false},
		{"unknown key", "other", mtime, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := x.Unchanged(tt.key, tt.mtime, tt.size); got != tt.want {
				t.Errorf("Unchanged() = %v, want %v", got, tt.want)
			}
		})
	}

	if loc := x.Artifacts["k"].Mtime.Location(); loc != time.UTC {
		t.Errorf("Record() kept location %v, want UTC", loc)
	}
}

type mockS3Client struct {
	getObjectResp *s3.GetObjectOutput
	getObjectErr  error
	putObjectErr  error
	putInput      *s3.PutObjectInput
	putBody       []byte
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.getObjectResp, m.getObjectErr
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.putInput = params
	if params.Body != nil {
		m.putBody, _ = io.ReadAll(params.Body)
	}
	return &s3.PutObjectOutput{}, m.putObjectErr
}

func body(s string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte(s)))}
}

func TestLoadMissingIndex(t *testing.T) {
	for _, err := range []error{&types.NoSuchKey{}, &types.NotFound{}, &smithy.GenericAPIError{Code: "NoSuchKey"}} {
		x, loadErr := NewStore(&mockS3Client{getObjectErr: err}, "bucket", "cpam/").Load(context.Background())
		if loadErr != nil {
			t.Fatalf("Load() with %T error = %v", err, loadErr)
		}
		if x.Version != 1 || len(x.Artifacts) != 0 {
			t.Errorf("Load() with %T = %+v, want empty index", err, x)
		}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		client  *mockS3Client
		wantErr bool
		wantLen int
	}{
		{
			name: "success",
			client: &mockS3Client{getObjectResp: body(`{
				"version": 1,
				"artifacts": {"cpam/demo/Debug/demo": {"project": "demo", "mode": "Debug", "mtime": "2025-01-01T12:00:00Z", "size": 12345}}
			}`)},
			wantLen: 1,
		},
		{
			name:    "null artifacts",
			client:  &mockS3Client{getObjectResp: body(`{"version": 1, "artifacts": null}`)},
			wantLen: 0,
		},
		{
			name:    "corrupt JSON",
			client:  &mockS3Client{getObjectResp: body("not valid json")},
			wantErr: true,
		},
		{
			name:    "unsupported version",
			client:  &mockS3Client{getObjectResp: body(`{"version": 999, "artifacts": {}}`)},
			wantErr: true,
		},
		{
			name:    "network error",
			client:  &mockS3Client{getObjectErr: errors.New("network timeout")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := NewStore(tt.client, "bucket", "cpam/").Load(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if x.Artifacts == nil {
				t.Fatal("Artifacts map is nil")
			}
			if len(x.Artifacts) != tt.wantLen {
				t.Errorf("len(Artifacts) = %d, want %d", len(x.Artifacts), tt.wantLen)
			}
		})
	}
}

func TestSave(t *testing.T) {
	x := New()
	x.Record("cpam/demo/Debug/demo", ArtifactEntry{Project: "demo", Mode: "Debug", Size: 1})
	client := &mockS3Client{}

	if err := NewStore(client, "bucket", "cpam").Save(context.Background(), x); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if aws.ToString(client.putInput.Key) != "cpam/.index.json" {
		t.Errorf("Key = %q", aws.ToString(client.putInput.Key))
	}
	if aws.ToString(client.putInput.ContentType) != "application/json" {
		t.Errorf("ContentType = %q", aws.ToString(client.putInput.ContentType))
	}

	var parsed Index
	if err := json.Unmarshal(client.putBody, &parsed); err != nil {
		t.Fatalf("uploaded body is not JSON: %v", err)
	}
	if parsed.Artifacts["cpam/demo/Debug/demo"].Project != "demo" {
		t.Errorf("uploaded index = %+v", parsed)
	}
}

func TestSaveNetworkError(t *testing.T) {
	err := NewStore(&mockS3Client{putObjectErr: errors.New("network timeout")}, "bucket", "").Save(context.Background(), New())
	if err == nil {
		t.Fatal("Save() error = nil, want error")
	}
}
