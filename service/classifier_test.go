package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lungcare/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScoreServer 模拟一个推理后端，固定返回给定得分向量
func newScoreServer(t *testing.T, scores []float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Image)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(predictResponse{Scores: scores})
	}))
}

func newTestBackend(name, url string) Classifier {
	return NewBackendClassifier(config.InferenceBackend{Name: name, URL: url}, 5*time.Second)
}

func TestBackendClassifier_Classify(t *testing.T) {
	// Adenocarcinoma, Large cell carcinoma, Normal, Squamous cell carcinoma
	srv := newScoreServer(t, []float64{0.03, 0.05, 0.87, 0.05})
	defer srv.Close()

	result, err := newTestBackend("ResNet50", srv.URL).Classify(context.Background(), []byte("fake-image"))
	require.NoError(t, err)
	assert.Equal(t, "normal", result.Label)
	assert.InDelta(t, 0.87, result.Confidence, 1e-9)
	assert.Equal(t, "ResNet50", result.Model)
}

func TestBackendClassifier_NormalizesLabel(t *testing.T) {
	srv := newScoreServer(t, []float64{0.1, 0.7, 0.1, 0.1})
	defer srv.Close()

	result, err := newTestBackend("DenseNet201", srv.URL).Classify(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "large_cell_carcinoma", result.Label)
}

func TestBackendClassifier_BackendDown(t *testing.T) {
	srv := newScoreServer(t, nil)
	srv.Close() // 直接关掉模拟后端不可用

	_, err := newTestBackend("ResNet50", srv.URL).Classify(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInference)
}

func TestBackendClassifier_BadScoreCount(t *testing.T) {
	srv := newScoreServer(t, []float64{0.5, 0.5})
	defer srv.Close()

	_, err := newTestBackend("ResNet50", srv.URL).Classify(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInference)
}

func TestBackendClassifier_ConfidenceOutOfRange(t *testing.T) {
	srv := newScoreServer(t, []float64{1.3, 0.1, 0.1, 0.1})
	defer srv.Close()

	_, err := newTestBackend("ResNet50", srv.URL).Classify(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInference)
}

func TestDualModelClassifier_PicksHigherConfidence(t *testing.T) {
	resnet := newScoreServer(t, []float64{0.87, 0.05, 0.05, 0.03}) // max 0.87
	defer resnet.Close()
	densenet := newScoreServer(t, []float64{0.10, 0.73, 0.10, 0.07}) // max 0.73
	defer densenet.Close()

	dual := NewDualModelClassifier(
		newTestBackend("ResNet50", resnet.URL),
		newTestBackend("DenseNet201", densenet.URL),
	)

	result, err := dual.Classify(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "ResNet50", result.Model)
	assert.Equal(t, "adenocarcinoma", result.Label)
	assert.InDelta(t, 0.87, result.Confidence, 1e-9)
}

func TestDualModelClassifier_SecondModelWins(t *testing.T) {
	resnet := newScoreServer(t, []float64{0.40, 0.20, 0.20, 0.20})
	defer resnet.Close()
	densenet := newScoreServer(t, []float64{0.05, 0.05, 0.85, 0.05})
	defer densenet.Close()

	dual := NewDualModelClassifier(
		newTestBackend("ResNet50", resnet.URL),
		newTestBackend("DenseNet201", densenet.URL),
	)

	result, err := dual.Classify(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "DenseNet201", result.Model)
	assert.Equal(t, "normal", result.Label)
}

func TestDualModelClassifier_TieFavorsFirst(t *testing.T) {
	// 两个后端置信度完全相同，必须取第一个模型的结果
	first := newScoreServer(t, []float64{0.90, 0.04, 0.03, 0.03})
	defer first.Close()
	second := newScoreServer(t, []float64{0.04, 0.90, 0.03, 0.03})
	defer second.Close()

	dual := NewDualModelClassifier(
		newTestBackend("ResNet50", first.URL),
		newTestBackend("DenseNet201", second.URL),
	)

	result, err := dual.Classify(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "ResNet50", result.Model)
	assert.Equal(t, "adenocarcinoma", result.Label)
}

func TestDualModelClassifier_AnyBackendFailureFails(t *testing.T) {
	ok := newScoreServer(t, []float64{0.9, 0.04, 0.03, 0.03})
	defer ok.Close()
	down := newScoreServer(t, nil)
	down.Close()

	dual := NewDualModelClassifier(
		newTestBackend("ResNet50", ok.URL),
		newTestBackend("DenseNet201", down.URL),
	)

	_, err := dual.Classify(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInference)
}

func TestDualModelClassifier_NoBackends(t *testing.T) {
	_, err := NewDualModelClassifier().Classify(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInference)
}
