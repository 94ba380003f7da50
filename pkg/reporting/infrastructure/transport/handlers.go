package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/auth"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/envelope"
	commontransport "github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/transport"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/reporting/domain/service"
)

func Router(reports service.ReportService, tokens *auth.TokenManager) http.Handler {
	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()
	s.Use(commontransport.LogMiddleware)
	s.Use(tokens.Middleware)

	h := &handler{reports: reports}
	s.HandleFunc("/reports/sales", h.sales).Methods(http.MethodGet)
	s.HandleFunc("/reports/bestseller", h.bestseller).Methods(http.MethodGet)
	s.HandleFunc("/reports/prices", h.prices).Methods(http.MethodGet)
	return r
}

type handler struct {
	reports service.ReportService
}

func (h *handler) sales(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.SalesReport(auth.TokenFromContext(r.Context()))
	if err != nil {
		writeReportError(w, err)
		return
	}
	envelope.WriteSuccess(w, "Sales Report", report)
}

func (h *handler) bestseller(w http.ResponseWriter, r *http.Request) {
	bestsellers, err := h.reports.Bestsellers(auth.TokenFromContext(r.Context()))
	if err != nil {
		writeReportError(w, err)
		return
	}
	envelope.WriteSuccess(w, "Bestseller Books", bestsellers)
}

func (h *handler) prices(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.PriceStats(auth.TokenFromContext(r.Context()))
	if err != nil {
		writeReportError(w, err)
		return
	}
	envelope.WriteSuccess(w, "Book Price Statistics", stats)
}

func writeReportError(w http.ResponseWriter, err error) {
	log.WithField("err", err).Error("report request failed")
	envelope.WriteFailure(w, http.StatusInternalServerError, "Internal error", nil)
}
