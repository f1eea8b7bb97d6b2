package statement

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paytrace/internal/docstore"
	"github.com/MrJamesThe3rd/paytrace/internal/encoding"
	"github.com/MrJamesThe3rd/paytrace/internal/statement"
)

type Handler struct {
	svc    *statement.Service
	parser *statement.Parser
	docs   docstore.Store
}

func NewHandler(svc *statement.Service, parser *statement.Parser, docs docstore.Store) *Handler {
	return &Handler{svc: svc, parser: parser, docs: docs}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/upload/bank-statement", h.upload)
	r.Get("/bank/transactions", h.list)
}

type transactionDTO struct {
	TransactionID string          `json:"transaction_id"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Description   string          `json:"description,omitempty"`
	Status        string          `json:"status"`
	Date          string          `json:"transaction_date"`
	DebitAmount   decimal.Decimal `json:"debit_amount"`
}

type uploadResponse struct {
	Message      string           `json:"message"`
	Location     string           `json:"location"`
	Saved        int              `json:"saved"`
	Transactions []transactionDTO `json:"extracted_transactions"`
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

	utf8r, err := encoding.NewUTF8Reader(bytes.NewReader(data))
	if err != nil {
		http.Error(w, "decoding document: "+err.Error(), http.StatusBadRequest)
		return
	}

	text, err := io.ReadAll(utf8r)
	if err != nil {
		http.Error(w, "decoding document: "+err.Error(), http.StatusBadRequest)
		return
	}

	txs := h.parser.Parse(string(text))

	saved, err := h.svc.Save(r.Context(), txs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(txs) == 0 {
		slog.Warn("no transactions found in statement", "file", header.Filename)
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:      "Bank statement uploaded and processed successfully.",
		Location:     location,
		Saved:        saved,
		Transactions: toDTOs(txs),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toDTOs(txs))
}

func toDTOs(txs []statement.Transaction) []transactionDTO {
	dtos := make([]transactionDTO, 0, len(txs))

	for _, tx := range txs {
		dtos = append(dtos, transactionDTO{
			TransactionID: tx.TransactionID,
			InvoiceNumber: tx.InvoiceNumber,
			Description:   tx.Description,
			Status:        tx.Status,
			Date:          tx.Date.Format(time.DateOnly),
			DebitAmount:   tx.DebitAmount,
		})
	}

	return dtos
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
