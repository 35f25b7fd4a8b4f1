package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cisan/caripiutang/pkg/models"
)

func writeWorkbook(t *testing.T, name string, size int) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0644))
	return p
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", 5*time.Second, nil)
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "http", baseURL: "http://localhost:8000"},
		{name: "https with path", baseURL: "https://example.com/piutang/"},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "no scheme", baseURL: "localhost:8000", wantErr: true},
		{name: "bad url", baseURL: "http://[::1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.baseURL, time.Second, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.Second, c.HTTP.Timeout)
		})
	}
}

func TestClient_Process(t *testing.T) {
	var got struct {
		targets, tolerance, maxInvoices, uploadID, fileName string
		fileSize                                             int
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/process", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		got.targets = r.FormValue("targets")
		got.tolerance = r.FormValue("tolerance")
		got.maxInvoices = r.FormValue("max_invoices")
		got.uploadID = r.FormValue("upload_id")
		if f, hdr, err := r.FormFile("file"); err == nil {
			data, _ := io.ReadAll(f)
			got.fileName = hdr.Filename
			got.fileSize = len(data)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"found":        true,
			"total_rows":   4,
			"download_url": "/api/download/hasil.xlsx",
			"file_name":    "hasil.xlsx",
		})
	}))

	wb := writeWorkbook(t, "piutang.xlsx", 128)
	res, err := c.Process(context.Background(), models.Submission{
		FilePath:  wb,
		Targets:   []string{"1000000", "2000000"},
		Tolerance: -3,
	})
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.Equal(t, 4, res.TotalRows)
	assert.Equal(t, "/api/download/hasil.xlsx", res.DownloadURL)
	assert.Equal(t, "1000000,2000000", got.targets)
	assert.Equal(t, "0", got.tolerance)
	assert.Equal(t, "5", got.maxInvoices)
	assert.Empty(t, got.uploadID)
	assert.Equal(t, "piutang.xlsx", got.fileName)
	assert.Equal(t, 128, got.fileSize)
}

func TestClient_ProcessWithUploadID(t *testing.T) {
	var uploadID, maxInvoices string
	var hasFile bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		uploadID = r.FormValue("upload_id")
		maxInvoices = r.FormValue("max_invoices")
		_, _, err := r.FormFile("file")
		hasFile = err == nil
		w.Write([]byte(`{"found": false, "total_rows": 0, "download_url": null}`))
	}))

	res, err := c.Process(context.Background(), models.Submission{
		UploadID:    "abc_piutang.xlsx",
		FilePath:    "/ignored.xlsx",
		Targets:     []string{"5"},
		MaxInvoices: 99,
	})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.DownloadURL)
	assert.Equal(t, "abc_piutang.xlsx", uploadID)
	assert.Equal(t, "20", maxInvoices)
	assert.False(t, hasFile)
}

func TestClient_ProcessValidation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	ctx := context.Background()

	_, err := c.Process(ctx, models.Submission{FilePath: "a.xlsx"})
	assert.ErrorIs(t, err, ErrNoTargets)

	_, err = c.Process(ctx, models.Submission{Targets: []string{"1"}})
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = c.Process(ctx, models.Submission{FilePath: writeWorkbook(t, "data.csv", 1), Targets: []string{"1"}})
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = c.Process(ctx, models.Submission{FilePath: writeWorkbook(t, "big.xlsx", MaxUploadBytes+1), Targets: []string{"1"}})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{name: "detail string", status: 400, body: `{"detail": "Only .xlsx files are supported"}`, wantDetail: "Only .xlsx files are supported"},
		{name: "structured detail", status: 422, body: `{"detail": [{"loc": ["body", "targets"]}]}`, wantDetail: `[{"loc": ["body", "targets"]}]`},
		{name: "plain body", status: 502, body: "bad gateway", wantDetail: "bad gateway"},
		{name: "empty body", status: 500, body: "", wantDetail: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := c.Process(context.Background(), models.Submission{UploadID: "x", Targets: []string{"1"}})
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestClient_Upload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		w.Write([]byte(`{"upload_id": "f00_` + hdr.Filename + `", "file_name": "` + hdr.Filename + `"}`))
	}))

	up, err := c.Upload(context.Background(), writeWorkbook(t, "piutang.xlsx", 10))
	require.NoError(t, err)
	assert.Equal(t, "f00_piutang.xlsx", up.ID)
	assert.Equal(t, "piutang.xlsx", up.FileName)
}

func TestClient_DeleteUpload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deleted := r.URL.Path == "/api/upload/known.xlsx"
		json.NewEncoder(w).Encode(map[string]bool{"deleted": deleted})
	}))
	ctx := context.Background()

	ok, err := c.DeleteUpload(ctx, "known.xlsx")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.DeleteUpload(ctx, "gone.xlsx")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.DeleteUpload(ctx, "")
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestClient_Download(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/download/hasil.xlsx":
			w.Header().Set("Content-Disposition", `attachment; filename="hasil.xlsx"`)
			w.Write([]byte("workbook"))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "File not found"}`))
		}
	}))
	dir := filepath.Join(t.TempDir(), "out")

	dest, err := c.Download(context.Background(), "/api/download/hasil.xlsx", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hasil.xlsx"), dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "workbook", string(data))

	_, err = c.Download(context.Background(), "/api/download/missing.xlsx", dir)
	assert.True(t, IsNotFound(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no partial files left behind")
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "a.xlsx", downloadName(`attachment; filename="a.xlsx"`, "/x/b.xlsx"))
	assert.Equal(t, "b.xlsx", downloadName("", "/x/b.xlsx"))
	assert.Equal(t, "evil.xlsx", downloadName(`attachment; filename="../../evil.xlsx"`, "/"))
	assert.Equal(t, "hasil.xlsx", downloadName("", "/"))
}
