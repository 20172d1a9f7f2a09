package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ewintr.nl/ytdigest/digest"
	"ewintr.nl/ytdigest/metrics"
	"ewintr.nl/ytdigest/model"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"google.golang.org/api/googleapi"
)

type DigestRunner interface {
	Run(ctx context.Context, interests []string, maxResults int) (model.Digest, error)
}

type DigestAPI struct {
	runner DigestRunner
	logger *slog.Logger
}

func NewDigestAPI(runner DigestRunner, logger *slog.Logger) *DigestAPI {
	return &DigestAPI{
		runner: runner,
		logger: logger,
	}
}

func (d *DigestAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subPath, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && subPath == "":
		d.Get(w, r)
	default:
		Error(w, http.StatusNotFound, "Not found", fmt.Errorf("method %s with subpath %q was not registered in the digest api", r.Method, subPath))
	}
}

func (d *DigestAPI) Get(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-ID", requestID)
	logger := d.logger.With(slog.String("request_id", requestID))

	raw := r.URL.Query().Get("interests")
	if raw == "" {
		d.returnErr(logger, w, http.StatusBadRequest, "Provide interests like ?interests=ai,gardening", nil)
		return
	}
	interests := digest.ParseInterests(raw)
	if len(interests) == 0 {
		d.returnErr(logger, w, http.StatusBadRequest, "Invalid interests", nil)
		return
	}
	maxResults := parseMaxResults(r.URL.Query().Get("maxResults"))

	logger.Info("digest requested", slog.Any("interests", interests), slog.Int("max_results", maxResults))
	result, err := d.runner.Run(r.Context(), interests, maxResults)
	if err != nil {
		switch digest.KindOf(err) {
		case digest.KindInput:
			d.returnErr(logger, w, http.StatusBadRequest, "Invalid interests", err)
		case digest.KindUpstream:
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) {
				logger = logger.With(slog.Int("upstream_code", apiErr.Code))
			}
			d.returnErr(logger, w, http.StatusBadGateway, "YouTube API error", errors.Unwrap(err))
		default:
			d.returnErr(logger, w, http.StatusInternalServerError, "Server error", err)
		}
		metrics.DigestRequestsTotal.WithLabelValues(string(digest.KindOf(err))).Inc()
		return
	}

	jsonBody, err := json.Marshal(result)
	if err != nil {
		d.returnErr(logger, w, http.StatusInternalServerError, "Server error", err)
		metrics.DigestRequestsTotal.WithLabelValues(string(digest.KindInternal)).Inc()
		return
	}

	metrics.DigestRequestsTotal.WithLabelValues("ok").Inc()
	metrics.DigestVideosReturned.Observe(float64(result.Returned))
	w.WriteHeader(http.StatusOK)
	w.Write(jsonBody)
}

// parseMaxResults falls back to the default on anything that is not an
// integer and clamps the rest.
func parseMaxResults(raw string) int {
	if raw == "" {
		return digest.DefaultMaxResults
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return digest.DefaultMaxResults
	}
	return digest.ClampMaxResults(n)
}

func (d *DigestAPI) returnErr(logger *slog.Logger, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		logger.Error(message, slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		logger.Info(message, slog.Int("status", status))
	}
	Error(w, status, message, err)
}
