package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/pv-viability/internal/calculator"
	"github.com/iwvelando/pv-viability/internal/config"
	"github.com/iwvelando/pv-viability/pkg/output"
)

type scenariosResponse struct {
	Scenarios []calculator.ScenarioResult `json:"scenarios"`
	CSV       string                      `json:"csv"`
	Warnings  []string                    `json:"warnings,omitempty"`
	Duration  string                      `json:"duration"`
	Config    map[string]interface{}      `json:"config,omitempty"`
}

// handleUpload calculates a scenario configuration sent as the multipart
// field "file".
func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"
	start := time.Now()

	data, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	configMap, err := decodeYAMLToMap(data)
	if err != nil {
		h.fail(w, op, badRequest("error reading config data, %v", err))
		return
	}

	h.respondScenarios(w, op, start, data, configMap)
}

// handleConfig calculates a scenario configuration posted as JSON, the shape
// an editor holds in memory.
func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfig"
	start := time.Now()

	payload := map[string]interface{}{}
	if err := h.decodeJSON(w, r, &payload, false, "configuration"); err != nil {
		h.fail(w, op, err)
		return
	}

	data, err := yaml.Marshal(payload)
	if err != nil {
		h.fail(w, op, badRequest("failed to encode configuration: %v", err))
		return
	}

	h.respondScenarios(w, op, start, data, payload)
}

func (h *handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, h.bodyError(err, "upload")
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, badRequest("missing configuration file")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return data, nil
}

func (h *handler) respondScenarios(w http.ResponseWriter, op string, start time.Time, data []byte, configMap map[string]interface{}) {
	response, err := h.calculateScenarios(data)
	if err != nil {
		h.fail(w, op, err)
		return
	}
	response.Config = configMap
	response.Duration = time.Since(start).String()

	h.logger.Info("scenarios calculated",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(response.Warnings)),
		zap.String("duration", response.Duration),
	)
	h.writeJSON(w, http.StatusOK, response)
}

// calculateScenarios loads a YAML configuration and runs every active
// scenario, rendering the yearly tables as CSV alongside.
func (h *handler) calculateScenarios(data []byte) (scenariosResponse, error) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(data))
	if err != nil {
		return scenariosResponse{}, badRequest("%v", err)
	}

	results, err := calculator.CalculateScenarios(h.logger, *cfg)
	if err != nil {
		return scenariosResponse{}, badRequest("%v", err)
	}
	if results == nil {
		results = []calculator.ScenarioResult{}
	}

	var csvBuf bytes.Buffer
	if err := output.CsvFormat(&csvBuf, results); err != nil {
		return scenariosResponse{}, fmt.Errorf("failed to render CSV: %w", err)
	}

	return scenariosResponse{
		Scenarios: results,
		CSV:       csvBuf.String(),
		Warnings:  cfg.ValidateConfiguration(),
	}, nil
}

// decodeYAMLToMap decodes a YAML document into a generic map. An empty
// document yields an empty map.
func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	result := map[string]interface{}{}
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&result); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if result == nil {
		result = map[string]interface{}{}
	}
	return result, nil
}
