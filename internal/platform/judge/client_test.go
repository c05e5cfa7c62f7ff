package judge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codequest/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAccepted(t *testing.T) {
	var gotCreate createRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/submissions":
			assert.Equal(t, "true", r.URL.Query().Get("base64_encoded"))
			assert.Equal(t, "true", r.URL.Query().Get("wait"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreate))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
		case r.Method == http.MethodGet && r.URL.Path == "/submissions/tok-123":
			assert.Equal(t, "false", r.URL.Query().Get("base64_encoded"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": map[string]interface{}{"id": 3, "description": "Accepted"},
				"stdout": "42\n",
				"time":   "0.02",
				"memory": 3456,
			})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	verdict, err := client.Evaluate(context.Background(), `print(6*7)`, "6 7", "42\n", 71)
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, verdict.Status.ID)
	assert.Equal(t, "Accepted", verdict.Status.Description)
	assert.Equal(t, "42\n", verdict.Stdout)
	assert.Equal(t, "tok-123", verdict.Token)

	// Payload fields travel base64 encoded.
	src, err := base64.StdEncoding.DecodeString(gotCreate.SourceCode)
	require.NoError(t, err)
	assert.Equal(t, `print(6*7)`, string(src))
	stdin, err := base64.StdEncoding.DecodeString(gotCreate.Stdin)
	require.NoError(t, err)
	assert.Equal(t, "6 7", string(stdin))
	expected, err := base64.StdEncoding.DecodeString(gotCreate.ExpectedOutput)
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(expected))
	assert.Equal(t, 71, gotCreate.LanguageID)
}

func TestEvaluateRejectedVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-9"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": map[string]interface{}{"id": 4, "description": "Wrong Answer"},
			"stdout": "41\n",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	verdict, err := client.Evaluate(context.Background(), "code", "", "42\n", 71)
	require.NoError(t, err)

	assert.NotEqual(t, StatusAccepted, verdict.Status.ID)
	assert.Equal(t, "Wrong Answer", verdict.Status.Description)
	assert.Equal(t, "41\n", verdict.Stdout)
}

func TestEvaluateJudgeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Evaluate(context.Background(), "code", "", "", 71)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrJudgeUnavailable))
}

func TestEvaluateMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Evaluate(context.Background(), "code", "", "", 71)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrJudgeUnavailable))
}

func TestEvaluateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Evaluate(context.Background(), "code", "", "", 71)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrJudgeUnavailable))
}
