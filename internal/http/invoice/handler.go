package invoice

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paytrace/internal/docstore"
	"github.com/MrJamesThe3rd/paytrace/internal/encoding"
	"github.com/MrJamesThe3rd/paytrace/internal/invoice"
)

type Handler struct {
	svc    *invoice.Service
	parser *invoice.Parser
	docs   docstore.Store
}

func NewHandler(svc *invoice.Service, parser *invoice.Parser, docs docstore.Store) *Handler {
	return &Handler{svc: svc, parser: parser, docs: docs}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/upload/invoice", h.upload)
	r.Get("/invoices", h.list)
}

type recordDTO struct {
	InvoiceNumber string           `json:"invoice_number"`
	VendorName    string           `json:"vendor_name,omitempty"`
	ClientName    string           `json:"client_name,omitempty"`
	InvoiceDate   *string          `json:"invoice_date"`
	DueDate       *string          `json:"due_date"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
}

type uploadResponse struct {
	Message       string    `json:"message"`
	Location      string    `json:"location"`
	ExtractedData recordDTO `json:"extracted_data"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// The raw upload is archived byte-for-byte; extraction runs on a
	// UTF-8 normalized copy.
	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "reading upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	location, err := h.docs.Put(r.Context(), header.Filename, bytes.NewReader(data))
	if err != nil {
		http.Error(w, "archiving document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	text, err := normalize(data)
	if err != nil {
		http.Error(w, "decoding document: "+err.Error(), http.StatusBadRequest)
		return
	}

	rec := h.parser.Parse(text)

	message := "Invoice uploaded and processed successfully."

	if err := h.svc.Save(r.Context(), rec); err != nil {
		if !errors.Is(err, invoice.ErrMissingNumber) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		slog.Warn("no invoice number found, skipping database save", "file", header.Filename)

		message = "Invoice uploaded, but no invoice number was found; nothing was saved."
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:       message,
		Location:      location,
		ExtractedData: toDTO(rec),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]recordDTO, 0, len(recs))
	for _, rec := range recs {
		dtos = append(dtos, toDTO(rec))
	}

	writeJSON(w, http.StatusOK, dtos)
}

func normalize(data []byte) (string, error) {
	utf8r, err := encoding.NewUTF8Reader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	text, err := io.ReadAll(utf8r)
	if err != nil {
		return "", err
	}

	return string(text), nil
}

func toDTO(rec *invoice.Record) recordDTO {
	return recordDTO{
		InvoiceNumber: rec.InvoiceNumber,
		VendorName:    rec.VendorName,
		ClientName:    rec.ClientName,
		InvoiceDate:   isoDate(rec.InvoiceDate),
		DueDate:       isoDate(rec.DueDate),
		TotalAmount:   rec.TotalAmount,
	}
}

func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format(time.DateOnly)

	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
