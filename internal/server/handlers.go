package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yourorg/calcctl/internal/calc"
	"github.com/yourorg/calcctl/internal/calcapi"
)

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

// handleEval decodes an expression, evaluates it, and returns the decimal
// result as a string. Oversized bodies are cut off at maxBodyBytes.
func handleEval(maxBodyBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if maxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}

		var req calcapi.EvalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}

		expression := strings.TrimSpace(req.Expression)
		if expression == "" {
			writeError(w, http.StatusBadRequest, "empty_expression", "expression cannot be empty")
			return
		}

		result, err := calc.Evaluate(expression)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid_expression", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, calcapi.EvalResponse{
			Expression: req.Expression,
			Result:     result.String(),
		})
	})
}

func handleConstants(w http.ResponseWriter, _ *http.Request) {
	constants := calc.Constants()
	out := make([]calcapi.ConstantInfo, 0, len(constants))
	for _, c := range constants {
		out = append(out, calcapi.ConstantInfo{
			Name:  c.String(),
			Value: c.Value().String(),
		})
	}
	writeJSON(w, http.StatusOK, calcapi.ConstantsResponse{Constants: out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]calcapi.Error{
		"error": {Message: message, Code: code, Status: status},
	})
}
