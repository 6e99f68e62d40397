package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/stretchr/testify/require"
)

func GetOK(t *testing.T, router http.Handler, path string, receiver ...any) {
	t.Helper()

	if len(receiver) > 0 {
		EndpointReceiver(t, router, http.MethodGet, path, nil, http.StatusOK, receiver[0])
	} else {
		Endpoint(t, router, http.MethodGet, path, nil, http.StatusOK)
	}
}

func GetOKBytes(t *testing.T, router http.Handler, path string) []byte {
	t.Helper()

	return Endpoint(t, router, http.MethodGet, path, nil, http.StatusOK).Body.Bytes()
}

func GetNotFound(t *testing.T, router http.Handler, path string) {
	t.Helper()

	Endpoint(t, router, http.MethodGet, path, nil, http.StatusNotFound)
}

func PostOK(t *testing.T, router http.Handler, path string, body any, receiver ...any) {
	t.Helper()

	if len(receiver) > 0 {
		EndpointReceiver(t, router, http.MethodPost, path, body, http.StatusOK, receiver[0])
	} else {
		Endpoint(t, router, http.MethodPost, path, body, http.StatusOK)
	}
}

func PostBadRequest(t *testing.T, router http.Handler, path string, body any, receiver ...any) {
	t.Helper()

	if len(receiver) > 0 {
		EndpointReceiver(t, router, http.MethodPost, path, body, http.StatusBadRequest, receiver[0])
	} else {
		Endpoint(t, router, http.MethodPost, path, body, http.StatusBadRequest)
	}
}

func EndpointReceiver(t *testing.T, router http.Handler, method string,
	path string, body any, expectedStatus int, receiver any,
) {
	t.Helper()

	resp := Endpoint(t, router, method, path, body, expectedStatus)
	if receiver != nil {
		if err := json.NewDecoder(resp.Body).Decode(&receiver); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
}

// Endpoint performs a request against router. GET bodies are sent as query parameters, every
// other method sends body as JSON.
func Endpoint(t *testing.T, router http.Handler, method string, path string, body any, expectedStatus int) *httptest.ResponseRecorder {
	t.Helper()

	reqCtx, cancel := context.WithTimeout(t.Context(), time.Second*10)
	defer cancel()

	recorder := httptest.NewRecorder()

	var bodyReader io.Reader
	if body != nil && method != http.MethodGet {
		bodyJSON, errJSON := json.Marshal(body)
		if errJSON != nil {
			t.Fatalf("Failed to encode request: %v", errJSON)
		}

		bodyReader = bytes.NewReader(bodyJSON)
	}

	if body != nil && method == http.MethodGet {
		values, err := query.Values(body)
		if err != nil {
			t.Fatalf("failed to encode values: %v", err)
		}

		path += "?" + values.Encode()
	}

	request, errRequest := http.NewRequestWithContext(reqCtx, method, path, bodyReader)
	if errRequest != nil {
		t.Fatalf("Failed to make request: %v", errRequest)
	}

	if bodyReader != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	router.ServeHTTP(recorder, request)

	require.Equal(t, expectedStatus, recorder.Code, "Received invalid response code. method: %s path: %s", method, path)

	return recorder
}
