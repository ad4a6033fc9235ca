// Package server exposes the formula library over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/moolah/internal/calculate"
	"github.com/iwvelando/moolah/internal/config"
	"github.com/iwvelando/moolah/pkg/constants"
	"github.com/iwvelando/moolah/pkg/finance"
	"github.com/iwvelando/moolah/pkg/output"
	"github.com/iwvelando/moolah/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	calc           *finance.Calculator
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		calc:           finance.NewCalculator(nil),
	}

	mux := http.NewServeMux()

	// Evaluate a batch of calculations sent as JSON
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Evaluate the calculations of an uploaded YAML configuration
	mux.HandleFunc("/api/upload", h.handleUpload)

	// Convert a JSON batch into a YAML configuration file
	mux.HandleFunc("/api/export", h.handleExport)

	// Formula catalogue
	mux.HandleFunc("/api/formulas", h.handleFormulas)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type calculationRequest struct {
	Precision    *int                 `json:"precision,omitempty"`
	Calculations []requestCalculation `json:"calculations"`
}

type requestCalculation struct {
	Name    string                 `json:"name"`
	Formula string                 `json:"formula"`
	Inputs  map[string]interface{} `json:"inputs"`
}

type calculationResponse struct {
	Results   []output.Record `json:"results"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Precision int             `json:"precision"`
	Warnings  []string        `json:"warnings,omitempty"`
	Duration  string          `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	conf, status, err := h.decodeRequest(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	h.runCalculations(w, conf, start, op)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	if err := r.ParseMultipartForm(h.maxRequestSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxRequestSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	conf, err := config.LoadConfigurationFromReader(file)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.runCalculations(w, conf, start, op)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	conf, status, err := h.decodeRequest(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	data, err := yaml.Marshal(conf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(data),
	})
}

func (h *handler) handleFormulas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"formulas": finance.Formulas(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeRequest reads a JSON calculation batch into a Configuration. Numeric
// inputs keep their literal text so no precision is lost before decimal parsing.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*config.Configuration, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var req calculationRequest
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("request exceeds limit of %d bytes", h.maxRequestSize)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("failed to decode request: %v", err)
	}

	conf := &config.Configuration{
		Output: config.OutputConfig{
			Format:    constants.OutputFormatJSON,
			Precision: constants.DefaultPrecision,
		},
	}
	if req.Precision != nil {
		conf.Output.Precision = *req.Precision
	}
	if err := validation.ValidatePrecision(conf.Output.Precision); err != nil {
		return nil, http.StatusBadRequest, err
	}

	for i, c := range req.Calculations {
		inputs, err := coerceInputs(c.Inputs)
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("calculation %d: %v", i+1, err)
		}
		conf.Calculations = append(conf.Calculations, config.Calculation{
			Name:    c.Name,
			Formula: c.Formula,
			Inputs:  inputs,
		})
	}

	return conf, http.StatusOK, nil
}

func (h *handler) runCalculations(w http.ResponseWriter, conf *config.Configuration, start time.Time, op string) {
	if len(conf.Calculations) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "no calculations provided", op)
		return
	}
	if err := validation.ValidatePrecision(conf.Output.Precision); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	results, err := calculate.RunWith(h.logger, h.calc, conf.Calculations)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	succeeded, failed := calculate.Summary(results)
	h.writeJSON(w, http.StatusOK, calculationResponse{
		Results:   output.Records(results, conf.Output.Precision),
		Succeeded: succeeded,
		Failed:    failed,
		Precision: conf.Output.Precision,
		Warnings:  conf.ValidateConfiguration(),
		Duration:  time.Since(start).String(),
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceInputs(raw map[string]interface{}) (map[string]string, error) {
	inputs := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			inputs[name] = v
		case json.Number:
			inputs[name] = v.String()
		default:
			return nil, fmt.Errorf("input %q must be a number or a string", name)
		}
	}
	return inputs, nil
}
