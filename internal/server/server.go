package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/venture-forecast/internal/config"
	"github.com/iwvelando/venture-forecast/internal/optimizer"
	"github.com/iwvelando/venture-forecast/internal/projection"
	"github.com/iwvelando/venture-forecast/pkg/cache"
	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/optimization"
	"github.com/iwvelando/venture-forecast/pkg/output"
	"github.com/iwvelando/venture-forecast/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type requestIDKey struct{}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	cache         cache.Cache
	cacheTTL      time.Duration
}

// NewHandler constructs the HTTP handler that serves the projection API.
// A nil store disables caching.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, store cache.Cache, cacheTTL time.Duration) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if store == nil {
		store = cache.Nop{}
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		cache:         store,
		cacheTTL:      cacheTTL,
	}

	mux := http.NewServeMux()

	// Projection from a JSON editor payload
	mux.HandleFunc("/api/projection", instrument("projection", h.handleProjection))

	// Projection from an uploaded YAML file
	mux.HandleFunc("/api/projection/upload", instrument("upload", h.handleUpload))

	// Projection rendered as a workbook download
	mux.HandleFunc("/api/projection/xlsx", instrument("xlsx", h.handleXlsx))

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", instrument("export", h.handleConfigExport))

	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return withRequestID(mux)
}

type projectionResponse struct {
	Result     json.RawMessage        `json:"result"`
	CSV        string                 `json:"csv"`
	GoalSeek   []optimization.Summary `json:"goalSeek,omitempty"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Cached     bool                   `json:"cached"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

// cachedProjection is the part of a response that depends only on the
// submitted configuration.
type cachedProjection struct {
	Result   json.RawMessage        `json:"result"`
	CSV      string                 `json:"csv"`
	GoalSeek []optimization.Summary `json:"goalSeek,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
}

// computed is a finished projection with its goal-seek answers.
type computed struct {
	result   *projection.Result
	goalSeek []optimization.Summary
	warnings []string
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok && id != "" {
		return h.logger.With(zap.String("requestId", id))
	}
	return h.logger
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	configBytes, ok := h.decodeEditorPayload(w, r, op)
	if !ok {
		return
	}
	h.runProjection(w, r, configBytes, start, op)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.requestLogger(r).Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	h.runProjection(w, r, buf.Bytes(), start, op)
}

func (h *handler) handleXlsx(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleXlsx"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	configBytes, ok := h.decodeEditorPayload(w, r, op)
	if !ok {
		return
	}

	out, status, err := h.project(r.Context(), h.requestLogger(r), configBytes)
	if err != nil {
		h.respondError(w, r, status, err.Error(), op)
		return
	}

	data, err := output.XlsxBytes(out.result)
	if err != nil {
		ProjectionErrors.WithLabelValues("render").Inc()
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render workbook: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="projection.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.requestLogger(r).Error("failed to write workbook", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// decodeEditorPayload reads a JSON request body and returns the equivalent
// configuration YAML. On failure it has already written the error response.
func (h *handler) decodeEditorPayload(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ProjectionErrors.WithLabelValues("decode").Inc()
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return nil, false
	}

	configBytes, err := editorConfigYAML(payload)
	if err != nil {
		ProjectionErrors.WithLabelValues("decode").Inc()
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	return configBytes, true
}

// editorConfigYAML converts an editor payload into configuration YAML. The
// payload is either a configuration itself or an object holding one under
// "config" next to optional "durationUnit" and "incremental" selections. A
// configuration without a "project" key is taken to be the project alone.
func editorConfigYAML(payload map[string]interface{}) ([]byte, error) {
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	rawConfig, wrapped := payload["config"]
	if wrapped {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			return nil, errors.New("invalid config payload: expected object")
		}
		configPayload = cfgMap
	}

	full := make(map[string]interface{}, len(configPayload)+2)
	if _, ok := configPayload["project"]; ok {
		for key, value := range configPayload {
			full[key] = value
		}
	} else {
		full["project"] = configPayload
	}

	if wrapped {
		if rawIncremental, ok := payload["incremental"]; ok && rawIncremental != nil {
			if _, ok := rawIncremental.(map[string]interface{}); !ok {
				return nil, errors.New("invalid incremental payload: expected object")
			}
			full["incremental"] = rawIncremental
		}

		if rawGoalSeek, ok := payload["goalSeek"]; ok && rawGoalSeek != nil {
			if _, ok := rawGoalSeek.([]interface{}); !ok {
				return nil, errors.New("invalid goalSeek payload: expected array")
			}
			full["goalSeek"] = rawGoalSeek
		}

		if rawUnit, ok := payload["durationUnit"]; ok && rawUnit != nil {
			unit, ok := rawUnit.(string)
			if !ok {
				return nil, errors.New("invalid durationUnit: expected string")
			}
			outputSection := make(map[string]interface{})
			if existing, ok := full["output"].(map[string]interface{}); ok {
				for key, value := range existing {
					outputSection[key] = value
				}
			}
			outputSection["durationUnit"] = unit
			full["output"] = outputSection
		}
	}

	configBytes, err := yaml.Marshal(full)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return configBytes, nil
}

func (h *handler) runProjection(w http.ResponseWriter, r *http.Request, configBytes []byte, start time.Time, op string) {
	logger := h.requestLogger(r)
	ctx := r.Context()

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		ProjectionErrors.WithLabelValues("config").Inc()
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	key := cache.Key(configBytes)
	cached, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		ProjectionCache.WithLabelValues("error").Inc()
		logger.Warn("projection cache lookup failed", zap.String("op", op), zap.Error(err))
	}
	if ok {
		var entry cachedProjection
		if err := json.Unmarshal([]byte(cached), &entry); err == nil {
			ProjectionCache.WithLabelValues("hit").Inc()
			elapsed := time.Since(start)
			logger.Info("projection served from cache",
				zap.String("op", op),
				zap.Duration("duration", elapsed),
			)
			h.writeJSON(w, r, http.StatusOK, projectionResponse{
				Result:     entry.Result,
				CSV:        entry.CSV,
				GoalSeek:   entry.GoalSeek,
				Warnings:   entry.Warnings,
				Duration:   elapsed.String(),
				Cached:     true,
				Config:     configMap,
				ConfigYAML: string(configBytes),
			})
			return
		}
		logger.Warn("discarding unreadable cache entry", zap.String("op", op), zap.String("key", key))
	}
	ProjectionCache.WithLabelValues("miss").Inc()

	out, status, err := h.project(ctx, logger, configBytes)
	if err != nil {
		h.respondError(w, r, status, err.Error(), op)
		return
	}
	result := out.result

	resultJSON, err := json.Marshal(result)
	if err != nil {
		ProjectionErrors.WithLabelValues("render").Inc()
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode projection: %v", err), op)
		return
	}
	csvData, err := output.CsvString(result)
	if err != nil {
		ProjectionErrors.WithLabelValues("render").Inc()
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	entry := cachedProjection{Result: resultJSON, CSV: csvData, GoalSeek: out.goalSeek, Warnings: out.warnings}
	if encoded, err := json.Marshal(entry); err == nil {
		if err := h.cache.Set(ctx, key, string(encoded), h.cacheTTL); err != nil {
			logger.Warn("failed to cache projection", zap.String("op", op), zap.Error(err))
		}
	}

	elapsed := time.Since(start)
	logger.Info("projection computed",
		zap.String("op", op),
		zap.Int("months", result.TotalMonths),
		zap.Int("warnings", len(out.warnings)),
		zap.Int("goalSeek", len(out.goalSeek)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, r, http.StatusOK, projectionResponse{
		Result:     resultJSON,
		CSV:        csvData,
		GoalSeek:   out.goalSeek,
		Warnings:   out.warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	})
}

// project loads configBytes, computes its projection and answers any
// goal-seek directives. The returned status is the HTTP status to report when
// err is non-nil.
func (h *handler) project(ctx context.Context, logger *zap.Logger, configBytes []byte) (computed, int, error) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		ProjectionErrors.WithLabelValues("config").Inc()
		return computed{}, http.StatusBadRequest, err
	}

	if unit := string(cfg.Output.DurationUnit); unit != "" {
		if err := validation.ValidateDurationUnit(unit); err != nil {
			ProjectionErrors.WithLabelValues("config").Inc()
			return computed{}, http.StatusBadRequest, err
		}
	}
	unit := cfg.ResolveDurationUnit()
	warnings := cfg.Project.ValidateConfiguration(unit)

	_, span := tracer.Start(ctx, "projection.Compute", trace.WithAttributes(
		attribute.Int("project.duration", cfg.Project.ProjectDuration),
		attribute.String("project.duration_unit", string(unit)),
	))
	defer span.End()

	result, err := projection.Compute(logger, cfg.Project, unit, cfg.Incremental)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		ProjectionErrors.WithLabelValues("compute").Inc()
		return computed{}, http.StatusBadRequest, fmt.Errorf("failed to compute projection: %w", err)
	}
	span.SetAttributes(attribute.Int("projection.months", result.TotalMonths))

	out := computed{result: result, warnings: warnings}
	if len(cfg.GoalSeek) == 0 {
		return out, http.StatusOK, nil
	}

	runner, err := optimizer.NewRunner(logger, cfg.Project, unit)
	if err == nil {
		out.goalSeek, err = runner.Run(cfg.GoalSeek)
	}
	if err != nil {
		span.RecordError(err)
		ProjectionErrors.WithLabelValues("goal_seek").Inc()
		return computed{}, http.StatusBadRequest, fmt.Errorf("goal seek failed: %w", err)
	}
	span.SetAttributes(attribute.Int("projection.goal_seek", len(out.goalSeek)))

	return out, http.StatusOK, nil
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "incremental"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLogger(r).Error("projection request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, r, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.requestLogger(r).Error("failed to write JSON response", zap.Error(err))
	}
}
