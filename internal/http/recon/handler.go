package recon

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/paytrace/internal/notify"
	"github.com/MrJamesThe3rd/paytrace/internal/recon"
	"github.com/MrJamesThe3rd/paytrace/internal/report"
)

type Handler struct {
	svc      *recon.Service
	notifier notify.Notifier
}

func NewHandler(svc *recon.Service, notifier notify.Notifier) *Handler {
	return &Handler{svc: svc, notifier: notifier}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/run", h.run)
	r.Get("/runs", h.runIDs)
	r.Get("/report/{runID}", h.reportByRun)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	runID, results, err := h.svc.Run(r.Context())
	if err != nil {
		if errors.Is(err, recon.ErrMissingTotal) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	rep := report.Assemble(runID, results)

	// Delivery is best-effort: the run is already persisted, a mail
	// outage must not turn it into a failure.
	if err := h.notifier.SendReport(r.Context(), rep); err != nil {
		slog.Warn("failed to send report mail", "run_id", runID, "error", err)
	}

	writeJSON(w, http.StatusOK, rep)
}

func (h *Handler) runIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.RunIDs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) reportByRun(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(chi.URLParam(r, "runID"))
	if err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}

	results, err := h.svc.Results(r.Context(), runID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(results) == 0 {
		http.Error(w, "no report found for run ID: "+runID.String(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, report.Assemble(runID, results))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
