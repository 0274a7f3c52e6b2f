package handlers

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/ingest"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

// UploadHandlers accepts the two tabular files (sales required, SKU optional)
// and replaces the session's datasets with the parse result.
type UploadHandlers struct {
	analytics *services.Analytics
	loader    *ingest.Loader
	logger    *slog.Logger
	maxBytes  int64
}

func NewUploadHandlers(analytics *services.Analytics, loader *ingest.Loader, logger *slog.Logger, maxBytes int64) *UploadHandlers {
	return &UploadHandlers{
		analytics: analytics,
		loader:    loader,
		logger:    logger,
		maxBytes:  maxBytes,
	}
}

type uploadResult struct {
	SalesRecords int `json:"sales_records"`
	LineItems    int `json:"line_items"`
}

func (h *UploadHandlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid multipart form"), requestID)
		return
	}

	salesContent, salesName, err := formFile(r, "sales")
	if err != nil {
		errors.WriteError(w, h.logger, errors.Validation("sales file is required"), requestID)
		return
	}

	ds := h.loader.LoadSales(salesContent, salesName)
	h.analytics.SetSales(ds)

	warnings := append([]string(nil), ds.Warnings...)
	result := uploadResult{SalesRecords: len(ds.Orders)}

	if skuContent, skuName, err := formFile(r, "sku"); err == nil {
		set := h.loader.LoadLineItems(skuContent, skuName)
		h.analytics.SetLineItems(set)
		warnings = append(warnings, set.Warnings...)
		result.LineItems = len(set.Items)
	} else {
		h.analytics.SetLineItems(&models.LineItemSet{Fields: models.NewFieldSet()})
	}

	if ds.Empty() && len(warnings) == 0 {
		warnings = append(warnings, "uploaded file contains no usable data")
	}

	h.logger.Info("upload processed",
		"sales_file", salesName,
		"sales_records", result.SalesRecords,
		"line_items", result.LineItems,
		"warnings", len(warnings),
		"request_id", requestID,
	)

	errors.WriteSuccessWarnings(w, result, warnings)
}

func formFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return content, header.Filename, nil
}
