package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"sales-dashboard/internal/ingest"
	"sales-dashboard/internal/services"
)

const uploadMaxBytes = 1 << 20

func newTestUploadHandlers(a *services.Analytics) *UploadHandlers {
	return NewUploadHandlers(a, ingest.NewLoader(testLogger()), testLogger(), uploadMaxBytes)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadHandlers_SalesOnly(t *testing.T) {
	a := services.NewAnalytics(testLogger())
	h := newTestUploadHandlers(a)

	body, contentType := multipartBody(t, map[string]string{
		"sales": "order date,sale representative,total values\n2024-03-05,Amy,100\n2024-03-06,Bob,200\n",
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/upload", body)
	r.Header.Set("Content-Type", contentType)
	h.HandleUpload(w, r)

	resp := decodeSuccess(t, w)
	data := resp["data"].(map[string]any)

	if n := data["sales_records"].(float64); n != 2 {
		t.Errorf("sales_records = %v, want 2", n)
	}
	if n := data["line_items"].(float64); n != 0 {
		t.Errorf("line_items = %v, want 0", n)
	}
	if !a.HasData() {
		t.Error("upload should replace the session dataset")
	}
}

func TestUploadHandlers_SalesAndSKU(t *testing.T) {
	a := services.NewAnalytics(testLogger())
	h := newTestUploadHandlers(a)

	body, contentType := multipartBody(t, map[string]string{
		"sales": "order date,total values\n2024-03-05,100\n",
		"sku":   "Matrix Order Id,order_lines/product/reference,order_lines/total\nSO-1,SKU-1,50\nSO-1,SKU-2,30\n",
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/upload", body)
	r.Header.Set("Content-Type", contentType)
	h.HandleUpload(w, r)

	data := decodeSuccess(t, w)["data"].(map[string]any)

	if n := data["line_items"].(float64); n != 2 {
		t.Errorf("line_items = %v, want 2", n)
	}
	if got := a.TopProducts(10); len(got) != 2 {
		t.Errorf("products after upload = %d, want 2", len(got))
	}
}

func TestUploadHandlers_MissingSalesFile(t *testing.T) {
	h := newTestUploadHandlers(services.NewAnalytics(testLogger()))

	body, contentType := multipartBody(t, map[string]string{
		"sku": "sku\nSKU-1\n",
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/upload", body)
	r.Header.Set("Content-Type", contentType)
	h.HandleUpload(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	errObj := resp["error"].(map[string]any)
	if errObj["code"] != "VALIDATION_ERROR" {
		t.Errorf("error code = %v, want VALIDATION_ERROR", errObj["code"])
	}
}

func TestUploadHandlers_UnreadableSalesFile(t *testing.T) {
	a := services.NewAnalytics(testLogger())
	h := newTestUploadHandlers(a)

	// An empty file parses to an empty dataset with a warning, not an error.
	body, contentType := multipartBody(t, map[string]string{"sales": ""})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/upload", body)
	r.Header.Set("Content-Type", contentType)
	h.HandleUpload(w, r)

	resp := decodeSuccess(t, w)

	warnings, ok := resp["warnings"].([]any)
	if !ok || len(warnings) == 0 {
		t.Fatalf("expected warnings in response, got %v", resp)
	}
	if a.HasData() {
		t.Error("unreadable upload should leave an empty dataset")
	}
}

func TestUploadHandlers_NotMultipart(t *testing.T) {
	h := newTestUploadHandlers(services.NewAnalytics(testLogger()))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/upload", bytes.NewBufferString("plain body"))
	r.Header.Set("Content-Type", "text/plain")
	h.HandleUpload(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
