package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/service"
	"campus_voice_backend/internal/testutil"
	"campus_voice_backend/pkg/mail/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	t   *testing.T
	app *App
}

func newHarness(t *testing.T) (*harness, *model.Category) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)
	cfg := config.Default()
	cfg.JWT.Secret = "router-test-secret-0123456789abcdef"
	cfg.Storage.LocalPath = t.TempDir()

	mailer := mocks.NewMockMailer(gomock.NewController(t))
	mailer.EXPECT().Enabled().Return(false).AnyTimes()

	testutil.CreateUser(t, db, "admin@campus.edu", model.Admin)
	category := testutil.CreateCategory(t, db, "Infrastructure", true)

	app := Build(cfg, db, nil, &service.LocalStorageProvider{Dir: cfg.Storage.LocalPath}, mailer)
	t.Cleanup(app.Close)
	return &harness{t: t, app: app}, category
}

func (h *harness) do(req *http.Request, token string) (int, envelope) {
	h.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.app.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (h *harness) json(method, path, token string, body interface{}) (int, envelope) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return h.do(req, token)
}

type upload struct {
	name, contentType string
	body              []byte
}

func (h *harness) submit(token string, fields map[string]string, files ...upload) (int, envelope) {
	h.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(h.t, mw.WriteField(k, v))
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="attachments"; filename="%s"`, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(h.t, err)
		_, err = part.Write(f.body)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/feedback", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return h.do(req, token)
}

func (h *harness) token(env envelope) string {
	h.t.Helper()
	var res service.AuthResult
	require.NoError(h.t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(h.t, res.Token)
	return res.Token
}

func TestFeedbackLifecycleOverHTTP(t *testing.T) {
	h, category := newHarness(t)

	code, env := h.json(http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "Sam",
		"lastName":  "Student",
		"email":     "sam@campus.edu",
		"password":  "secret123",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	student := h.token(env)

	code, env = h.json(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@campus.edu",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	admin := h.token(env)

	code, env = h.json(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, code)
	var categories []model.Category
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	require.Len(t, categories, 1)

	code, env = h.submit(student, map[string]string{
		"title":       "Wi-Fi down",
		"description": "No connectivity in Block B",
		"categoryId":  fmt.Sprint(category.ID),
		"priority":    "HIGH",
		"status":      "RESOLVED",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created model.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Nil(t, created.ResolvedAt)
	assert.Equal(t, model.PriorityHigh, created.Priority)
	assert.Contains(t, []string{"", "null"}, string(created.Attachments))
	require.NotNil(t, created.Owner)
	require.NotNil(t, created.Category)

	code, env = h.submit(student, map[string]string{
		"title":       "Broken window",
		"description": "Room 12",
		"categoryId":  fmt.Sprint(category.ID),
		"status":      "IN_PROGRESS",
	}, upload{"window.png", "image/png", []byte("png")})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var withFile model.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &withFile))
	assert.Equal(t, model.StatusPending, withFile.Status)
	assert.Nil(t, withFile.ResolvedAt)
	assert.Len(t, withFile.AttachmentNames(), 1)

	code, env = h.submit(student, map[string]string{
		"title":       "Bad file",
		"description": "d",
		"categoryId":  fmt.Sprint(category.ID),
	}, upload{"run.sh", "application/x-sh", []byte("#!/bin/sh")})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "Invalid file type")

	code, env = h.json(http.MethodGet, "/api/feedback?limit=1", student, nil)
	require.Equal(t, http.StatusOK, code)
	var listing struct {
		Feedback   []model.Feedback `json:"feedback"`
		Pagination struct {
			Page, Limit, Pages int
			Total              int64
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Len(t, listing.Feedback, 1)
	assert.Equal(t, int64(2), listing.Pagination.Total)
	assert.Equal(t, 2, listing.Pagination.Pages)

	code, env = h.json(http.MethodGet, "/api/feedback?categoryId=abc", student, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid categoryId", env.Message)
	code, env = h.json(http.MethodGet, "/api/admin/feedback?userId=me", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid userId", env.Message)

	path := fmt.Sprintf("/api/admin/feedback/%d/status", created.ID)
	code, _ = h.json(http.MethodPut, path, student, map[string]string{"status": "RESOLVED"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = h.json(http.MethodGet, "/api/admin/feedback", student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = h.json(http.MethodPut, path, admin, map[string]string{"status": "RESOLVED", "adminResponse": "Fixed"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var resolved model.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &resolved))
	assert.Equal(t, model.StatusResolved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.AdminResponse)
	assert.Equal(t, "Fixed", *resolved.AdminResponse)

	code, _ = h.json(http.MethodPut, "/api/admin/feedback/9999/status", admin, map[string]string{"status": "RESOLVED"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = h.json(http.MethodGet, "/api/notifications", student, nil)
	require.Equal(t, http.StatusOK, code)
	var inbox struct {
		Notifications []model.Notification `json:"notifications"`
		UnreadCount   int64                `json:"unreadCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &inbox))
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, int64(1), inbox.UnreadCount)

	code, env = h.json(http.MethodGet, "/api/dashboard/stats", student, nil)
	require.Equal(t, http.StatusOK, code)
	var stats service.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, service.Stats{Total: 2, Pending: 1, Resolved: 1, UnreadNotifications: 1}, stats)

	code, _ = h.json(http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", inbox.Notifications[0].ID), student, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = h.json(http.MethodPut, "/api/notifications/read-all", student, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = h.json(http.MethodGet, fmt.Sprintf("/api/feedback/%d", created.ID), student, nil)
	require.Equal(t, http.StatusOK, code)
	var detail model.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, 1, detail.Views)
}

func TestPublicAndUnauthenticatedRoutes(t *testing.T) {
	h, _ := newHarness(t)

	code, _ := h.json(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env := h.json(http.MethodGet, "/api/feedback", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Access token required", env.Message)

	code, _ = h.json(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@campus.edu", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = h.json(http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "A", "lastName": "B", "email": "admin@campus.edu", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, code)

	w := httptest.NewRecorder()
	h.app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
