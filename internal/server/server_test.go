package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v1 "github.com/dadbot-lab/dadbot/internal/api/v1"
	"github.com/dadbot-lab/dadbot/internal/core/epoch"
	httperr "github.com/dadbot-lab/dadbot/internal/core/errors"
	"github.com/dadbot-lab/dadbot/internal/counter"
	"github.com/dadbot-lab/dadbot/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubReporter struct {
	report counter.Report
	err    error
}

func (r stubReporter) Report(context.Context) (counter.Report, error) { return r.report, r.err }

func do(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		pinger   HealthChecker
		wantCode int
	}{
		{name: "healthy", pinger: stubPinger{}, wantCode: http.StatusOK},
		{name: "no checker", pinger: nil, wantCode: http.StatusOK},
		{name: "database down", pinger: stubPinger{err: errors.New("connection refused")}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(":0", "release", tc.pinger, nil, nil)
			resp := do(t, s, "/health")
			require.Equal(t, tc.wantCode, resp.Code)
		})
	}
}

func TestHealth_ErrorBody(t *testing.T) {
	s := New(":0", "release", stubPinger{err: errors.New("connection refused")}, nil, nil)
	resp := do(t, s, "/health")

	var body httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, httperr.HttpDatabaseUnreachable, body.ErrorType)
}

func TestCount(t *testing.T) {
	reporter := stubReporter{report: counter.Report{
		Counter:       epoch.Counter{ID: 2, EpochID: 5, Count: 3},
		HasRolledOver: true,
		Width:         24 * time.Hour,
	}}
	s := New(":0", "release", nil, reporter, nil)

	resp := do(t, s, "/v1/count")
	require.Equal(t, http.StatusOK, resp.Code)

	var body v1.CountResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, v1.CountResponse{
		EpochID:       5,
		CounterID:     2,
		Count:         3,
		HasRolledOver: true,
		WidthMinutes:  1440,
		Text:          "I've dadded 3 times in the past 1 day",
	}, body)
}

func TestCount_Errors(t *testing.T) {
	tests := []struct {
		name     string
		reporter Reporter
		wantCode int
		wantType string
	}{
		{name: "report fails", reporter: stubReporter{err: errors.New("database is locked")}, wantCode: http.StatusInternalServerError, wantType: httperr.HttpInternalError},
		{name: "no reporter", reporter: nil, wantCode: http.StatusServiceUnavailable, wantType: httperr.HttpCounterUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(":0", "release", nil, tc.reporter, nil)
			resp := do(t, s, "/v1/count")
			require.Equal(t, tc.wantCode, resp.Code)

			var body httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.Equal(t, tc.wantType, body.ErrorType)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	metrics.MessageSeen()

	s := New(":0", "release", nil, nil, reg)
	resp := do(t, s, "/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "dadbot_messages_seen_total 1")

	noMetrics := New(":0", "release", nil, nil, nil)
	require.Equal(t, http.StatusNotFound, do(t, noMetrics, "/metrics").Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s := New(addr, "release", stubPinger{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && strings.Contains(string(body), "healthy")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
