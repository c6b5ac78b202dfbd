package calculator

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"secure-calculator/internal/auth"
	"secure-calculator/internal/models"
)

// CalculateRequest carries either an expression or an operation with two
// operands.
type CalculateRequest struct {
	Expression string `json:"expression"`
	Operation  string `json:"operation"`
	A          any    `json:"a"`
	B          any    `json:"b"`
}

type CalculateResponse struct {
	Result string `json:"result"`
}

const defaultHistoryLimit = 50

func CalculateHandler(calc *Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			result Number
			err    error
		)
		if req.Expression != "" {
			result, err = calc.RecordExpression(r.Context(), userID, req.Expression)
		} else {
			var op Operation
			if op, err = ParseOperation(req.Operation); err == nil {
				result, err = calc.Record(r.Context(), userID, op, req.A, req.B)
			}
		}
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrDivisionByZero):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "failed to save calculation", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(CalculateResponse{Result: result.String()}); err != nil {
			log.Error("failed to encode response", "error", err)
		}
	}
}

// HistoryHandler lists the caller's calculations, newest first. The optional
// "limit" query parameter caps the count.
func HistoryHandler(calc *Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		limit := defaultHistoryLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		calcs, err := calc.History().ListByUser(r.Context(), userID, limit)
		if err != nil {
			http.Error(w, "failed to load history", http.StatusInternalServerError)
			return
		}
		if calcs == nil {
			calcs = []models.Calculation{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(calcs); err != nil {
			log.Error("failed to encode response", "error", err)
		}
	}
}
