package handler

// report.go implements the GET /reports/* endpoints.
// Every report supports ?format=csv; the default is JSON. CSV money columns
// are rendered for display, e.g. "$1,050.00".

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pkordes/travel-agency/internal/domain"
)

// RevenueRow is one row of GET /reports/revenue.
type RevenueRow struct {
	PackageID    string  `json:"packageId"`
	PackageName  string  `json:"packageName"`
	Revenue      float64 `json:"revenue"`
	Bookings     int     `json:"bookings"`
	AverageValue float64 `json:"averageValue"`
}

// RatingRow is one row of GET /reports/top-rated.
type RatingRow struct {
	Rank          int     `json:"rank"`
	PackageID     string  `json:"packageId"`
	PackageName   string  `json:"packageName"`
	AverageRating float64 `json:"averageRating"`
	Reviews       int     `json:"reviews"`
	Price         float64 `json:"price"`
}

// PopularityRow is one row of GET /reports/popularity.
type PopularityRow struct {
	Rank        int     `json:"rank"`
	PackageID   string  `json:"packageId"`
	PackageName string  `json:"packageName"`
	Destination string  `json:"destination"`
	Bookings    int     `json:"bookings"`
	Price       float64 `json:"price"`
}

// SummaryRow is one booking in the status and customer-history reports.
type SummaryRow struct {
	BookingID    string               `json:"bookingId"`
	CustomerID   string               `json:"customerId"`
	CustomerName string               `json:"customerName"`
	ServiceID    string               `json:"serviceId"`
	ServiceName  string               `json:"serviceName"`
	Date         openapi_types.Date   `json:"date"`
	Status       domain.BookingStatus `json:"status"`
	NumTravelers int                  `json:"numTravelers"`
	Total        float64              `json:"total"`
}

var (
	revenueHeaders    = []string{"package_id", "package_name", "revenue", "bookings", "average_value"}
	ratingHeaders     = []string{"rank", "package_id", "package_name", "average_rating", "reviews", "price"}
	popularityHeaders = []string{"rank", "package_id", "package_name", "destination", "bookings", "price"}
	summaryHeaders    = []string{"booking_id", "customer_id", "customer_name", "service_id", "service_name", "date", "status", "travelers", "total"}
)

// GetRevenueReport handles GET /reports/revenue.
// Only CONFIRMED and COMPLETED bookings count as revenue.
func (s *Server) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	rows := s.reports.RevenueByPackage(r.Context())
	if wantCSV(r) {
		p := moneyPrinter()
		writeCSV(w, revenueHeaders, rows, func(row domain.PackageRevenue) []string {
			return []string{row.PackageID, row.PackageName, money(p, row.Revenue), strconv.Itoa(row.Bookings), money(p, row.AverageValue)}
		})
		return
	}
	writeJSON(w, http.StatusOK, mapAll(rows, func(row domain.PackageRevenue) RevenueRow {
		return RevenueRow(row)
	}))
}

// GetBookingsByStatusReport handles GET /reports/bookings-by-status?status=.
// The status defaults to PENDING.
func (s *Server) GetBookingsByStatusReport(w http.ResponseWriter, r *http.Request) {
	status := domain.BookingPending
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, err := domain.ParseBookingStatus(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		status = st
	}
	writeSummaries(w, r, s.reports.BookingsByStatus(r.Context(), status))
}

// GetTopRatedReport handles GET /reports/top-rated.
func (s *Server) GetTopRatedReport(w http.ResponseWriter, r *http.Request) {
	rows := s.reports.TopRatedPackages(r.Context())
	if wantCSV(r) {
		p := moneyPrinter()
		writeCSV(w, ratingHeaders, rows, func(row domain.PackageRating) []string {
			return []string{
				strconv.Itoa(row.Rank), row.PackageID, row.PackageName,
				strconv.FormatFloat(row.AverageRating, 'f', 1, 64), strconv.Itoa(row.Reviews), money(p, row.Price),
			}
		})
		return
	}
	writeJSON(w, http.StatusOK, mapAll(rows, func(row domain.PackageRating) RatingRow {
		return RatingRow(row)
	}))
}

// GetPopularityReport handles GET /reports/popularity.
func (s *Server) GetPopularityReport(w http.ResponseWriter, r *http.Request) {
	rows := s.reports.PackagePopularity(r.Context())
	if wantCSV(r) {
		p := moneyPrinter()
		writeCSV(w, popularityHeaders, rows, func(row domain.PackagePopularity) []string {
			return []string{
				strconv.Itoa(row.Rank), row.PackageID, row.PackageName, row.Destination,
				strconv.Itoa(row.Bookings), money(p, row.Price),
			}
		})
		return
	}
	writeJSON(w, http.StatusOK, mapAll(rows, func(row domain.PackagePopularity) PopularityRow {
		return PopularityRow(row)
	}))
}

// GetCustomerHistoryReport handles GET /reports/customers/{id}/history.
func (s *Server) GetCustomerHistoryReport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.CustomerHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSummaries(w, r, rows)
}

func writeSummaries(w http.ResponseWriter, r *http.Request, rows []domain.BookingSummary) {
	if wantCSV(r) {
		p := moneyPrinter()
		writeCSV(w, summaryHeaders, rows, func(row domain.BookingSummary) []string {
			return []string{
				row.BookingID, row.CustomerID, row.CustomerName, row.ServiceID, row.ServiceName,
				row.Date.Format(time.DateOnly), string(row.Status), strconv.Itoa(row.Travelers), money(p, row.Total),
			}
		})
		return
	}
	writeJSON(w, http.StatusOK, mapAll(rows, summaryToRow))
}

func summaryToRow(s domain.BookingSummary) SummaryRow {
	return SummaryRow{
		BookingID:    s.BookingID,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		ServiceID:    s.ServiceID,
		ServiceName:  s.ServiceName,
		Date:         openapi_types.Date{Time: s.Date},
		Status:       s.Status,
		NumTravelers: s.Travelers,
		Total:        s.Total,
	}
}

func wantCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV[T any](w http.ResponseWriter, headers []string, rows []T, record func(T) []string) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(headers)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(record(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func moneyPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// money renders v with thousands separators, e.g. 1050 → "$1,050.00".
func money(p *message.Printer, v float64) string {
	return p.Sprintf("$%.2f", v)
}
