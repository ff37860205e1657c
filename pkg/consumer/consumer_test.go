package consumer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		checks         []HealthCheck
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "NoChecks",
			expectedStatus: http.StatusOK,
			expectedBody:   "OK",
		},
		{
			name: "Healthy",
			checks: []HealthCheck{
				func(context.Context) error { return nil },
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "OK",
		},
		{
			name: "Failing",
			checks: []HealthCheck{
				func(context.Context) error { return nil },
				func(context.Context) error { return errors.New("redis down") },
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "redis down",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			NewHealthHandler(test.checks...).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, test.expectedStatus, recorder.Code)
			assert.Equal(t, test.expectedBody, recorder.Body.String())
		})
	}
}
