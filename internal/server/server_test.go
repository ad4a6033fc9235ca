package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/moolah/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newTestHandler() http.Handler {
	return NewHandler(zap.NewNop(), constants.DefaultMaxRequestSizeBytes, "1.2.3")
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleCalculateSuccess(t *testing.T) {
	body := `{
		"precision": 2,
		"calculations": [
			{"name": "Savings", "formula": "cash_flow_present_value",
			 "inputs": {"future_value": 5000, "interest_rate": "8", "periods": 5}},
			{"name": "Endowment", "formula": "growing_perpetuity_present_value",
			 "inputs": {"payment": 25000, "discount_rate": 7, "growth_rate": 2}}
		]
	}`

	rr := postJSON(t, newTestHandler(), "/api/calculate", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp calculationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "7346.64", resp.Results[0].Value)
	assert.Equal(t, "500000.00", resp.Results[1].Value)
	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 0, resp.Failed)
	assert.Equal(t, 2, resp.Precision)
	assert.NotEmpty(t, resp.Duration)
}

func TestHandleCalculateArithmeticFailure(t *testing.T) {
	body := `{"calculations": [
		{"name": "Flat", "formula": "growing_perpetuity_present_value",
		 "inputs": {"payment": 100, "discount_rate": 5, "growth_rate": 5}}
	]}`

	rr := postJSON(t, newTestHandler(), "/api/calculate", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp calculationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 1)
	assert.Empty(t, resp.Results[0].Value)
	assert.Contains(t, resp.Results[0].Error, "division by zero")
	assert.Equal(t, 1, resp.Failed)
}

func TestHandleCalculateBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "malformed JSON",
			body:    `{"calculations": [`,
			wantErr: "failed to decode request",
		},
		{
			name:    "unknown field",
			body:    `{"scenarios": []}`,
			wantErr: "failed to decode request",
		},
		{
			name:    "empty batch",
			body:    `{"calculations": []}`,
			wantErr: "no calculations provided",
		},
		{
			name:    "unknown formula",
			body:    `{"calculations": [{"name": "x", "formula": "npv", "inputs": {}}]}`,
			wantErr: "unknown formula",
		},
		{
			name:    "boolean input",
			body:    `{"calculations": [{"name": "x", "formula": "perpetuity_present_value", "inputs": {"payment": true}}]}`,
			wantErr: "must be a number or a string",
		},
		{
			name:    "negative periods",
			body:    `{"calculations": [{"name": "x", "formula": "annuity_compound_factor", "inputs": {"interest_rate": 0.1, "periods": -1}}]}`,
			wantErr: "non-negative integer",
		},
		{
			name:    "precision out of range",
			body:    `{"precision": 42, "calculations": [{"name": "x", "formula": "perpetuity_present_value", "inputs": {"payment": 1, "discount_rate": 1}}]}`,
			wantErr: "precision",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, newTestHandler(), "/api/calculate", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.wantErr)
		})
	}
}

func TestHandleCalculateTooLarge(t *testing.T) {
	h := NewHandler(zap.NewNop(), 16, "")
	rr := postJSON(t, h, "/api/calculate", `{"calculations": [{"name": "a long name that will overflow"}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestHandleCalculateMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/calculate", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func uploadRequest(t *testing.T, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "config.yaml")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleUploadSuccess(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "config", "testdata", "config.yaml"))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, uploadRequest(t, data))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp calculationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 6)
	assert.Equal(t, 6, resp.Succeeded)
	assert.Empty(t, resp.Warnings)
}

func TestHandleUploadKeepsUnquotedDigits(t *testing.T) {
	data := []byte(`output:
  precision: 8
calculations:
  - name: Large amount
    formula: cash_flow_present_value
    inputs:
      future_value: 12345678901.12345678
      interest_rate: 7
      periods: 0
`)

	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, uploadRequest(t, data))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp calculationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "12345678901.12345678", resp.Results[0].Inputs["future_value"])
	assert.Equal(t, "12345678901.12345678", resp.Results[0].Value)
}

func TestHandleUploadInvalidYAML(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, uploadRequest(t, []byte("calculations: [unterminated")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleUploadMissingFile(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "missing configuration file")
}

func TestHandleExport(t *testing.T) {
	body := `{"precision": 4, "calculations": [
		{"name": "Card APR", "formula": "effective_interest_rate",
		 "inputs": {"annual_rate": "0.12", "periods_per_annum": 12, "periods": 12}}
	]}`

	rr := postJSON(t, newTestHandler(), "/api/export", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["configYaml"])

	var exported struct {
		Output struct {
			Format    string `yaml:"format"`
			Precision int    `yaml:"precision"`
		} `yaml:"output"`
		Calculations []struct {
			Name    string            `yaml:"name"`
			Formula string            `yaml:"formula"`
			Inputs  map[string]string `yaml:"inputs"`
		} `yaml:"calculations"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(resp["configYaml"]), &exported))

	assert.Equal(t, constants.OutputFormatJSON, exported.Output.Format)
	assert.Equal(t, 4, exported.Output.Precision)
	require.Len(t, exported.Calculations, 1)
	assert.Equal(t, "effective_interest_rate", exported.Calculations[0].Formula)
	assert.Equal(t, "0.12", exported.Calculations[0].Inputs["annual_rate"])
	assert.Equal(t, "12", exported.Calculations[0].Inputs["periods_per_annum"])
}

func TestHandleFormulas(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/formulas", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Formulas []struct {
			Name   string `json:"name"`
			Params []struct {
				Name string `json:"name"`
				Kind string `json:"kind"`
			} `json:"params"`
		} `json:"formulas"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Formulas, 11)

	names := make([]string, 0, len(resp.Formulas))
	for _, f := range resp.Formulas {
		names = append(names, f.Name)
		assert.NotEmpty(t, f.Params, f.Name)
	}
	assert.Contains(t, names, "annuity_present_value")
	assert.Contains(t, names, "perpetuity_present_value")
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "explicit", version: " 1.2.3 ", want: "1.2.3"},
		{name: "empty defaults to dev", version: "", want: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil, 0, tt.version)
			req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp["version"])
		})
	}
}
