package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"adhd_task/constant"
	"adhd_task/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 桩服务直接注入包级变量，绕开服务工厂（工厂需要配置文件）
type stubDecompose struct {
	res   *model.DecomposeResponse
	err   error
	calls int
}

func (s *stubDecompose) Decompose(_ context.Context, userTask string, mode constant.Mode) (*model.DecomposeResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

type stubAssess struct {
	res *model.ClassifyResponse
	err error
}

func (s *stubAssess) Classify(_ context.Context, answers map[string]string) (*model.ClassifyResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/v1/decompose", Decompose)
	engine.POST("/api/v1/classify", Classify)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestDecomposeEndpointSuccess(t *testing.T) {
	stub := &stubDecompose{res: &model.DecomposeResponse{
		SubTasks:     []string{"第一步", "第二步"},
		Explanation:  "先易后难",
		OriginalTask: "收拾房间",
		Subtype:      "inattentive",
	}}
	decomposeService = stub
	engine := newTestRouter()

	w := postJSON(t, engine, "/api/v1/decompose", model.DecomposeRequest{
		UserTask: "收拾房间",
		AdhdType: "inattentive",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res model.DecomposeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"第一步", "第二步"}, res.SubTasks)
	assert.Equal(t, "inattentive", res.Subtype)
}

func TestDecomposeEndpointEmptyTask(t *testing.T) {
	stub := &stubDecompose{err: model.NewError(model.ErrorEmptyTask, nil)}
	decomposeService = stub
	engine := newTestRouter()

	w := postJSON(t, engine, "/api/v1/decompose", model.DecomposeRequest{UserTask: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "userTask is required")
}

func TestDecomposeEndpointNoCredential(t *testing.T) {
	stub := &stubDecompose{err: model.NewError(model.ErrorNoCredential, nil)}
	decomposeService = stub
	engine := newTestRouter()

	w := postJSON(t, engine, "/api/v1/decompose", model.DecomposeRequest{UserTask: "x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDecomposeEndpointInvalidResponse(t *testing.T) {
	stub := &stubDecompose{err: model.NewError(model.ErrorInvalidResponse, nil)}
	decomposeService = stub
	engine := newTestRouter()

	w := postJSON(t, engine, "/api/v1/decompose", model.DecomposeRequest{UserTask: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid response format")
}

func TestDecomposeEndpointNoSubtasks(t *testing.T) {
	stub := &stubDecompose{err: model.NewError(model.ErrorNoSubtasks, nil)}
	decomposeService = stub
	engine := newTestRouter()

	w := postJSON(t, engine, "/api/v1/decompose", model.DecomposeRequest{UserTask: "x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "No subtasks were generated")
}

func TestDecomposeEndpointBusy(t *testing.T) {
	stub := &stubDecompose{err: model.NewError(model.ErrorRequestInFlight, nil)}
	decomposeService = stub
	engine := newTestRouter()

	w := postJSON(t, engine, "/api/v1/decompose", model.DecomposeRequest{UserTask: "x"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDecomposeEndpointMalformedBody(t *testing.T) {
	stub := &stubDecompose{}
	decomposeService = stub
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/decompose", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestClassifyEndpointSuccess(t *testing.T) {
	assessService = &stubAssess{res: &model.ClassifyResponse{
		AdhdType:    "combined",
		Confidence:  "medium",
		Explanation: "Both patterns are present.",
	}}
	engine := newTestRouter()

	w := postJSON(t, engine, "/api/v1/classify", map[string]string{"q1": "often"})
	require.Equal(t, http.StatusOK, w.Code)

	var res model.ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "combined", res.AdhdType)
	assert.Equal(t, "medium", res.Confidence)
}

func TestClassifyEndpointEmptyAnswers(t *testing.T) {
	assessService = &stubAssess{err: model.NewError(model.ErrorEmptyAssessment, nil)}
	engine := newTestRouter()

	w := postJSON(t, engine, "/api/v1/classify", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
