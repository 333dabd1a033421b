package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmulenga/internhub-be/internal/auth"
	"github.com/cmulenga/internhub-be/internal/config"
	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/storage/storetest"
)

const testSecret = "integration-test-secret"

func testConfig() config.Config {
	return config.Config{
		Port:           "0",
		JWTSecret:      testSecret,
		JWTIssuer:      "internhub-test",
		JWTTTL:         24 * time.Hour,
		BcryptCost:     bcrypt.MinCost,
		CORSOrigins:    []string{"*"},
		StudentDomains: []string{"unza.zm", "cs.unza.zm"},
		AdminDomains:   []string{"admin.university.edu"},
		AdminKeys:      []string{"UNI_ADMIN_2024"},
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *storetest.Store) {
	t.Helper()
	store := storetest.New()
	srv := New(testConfig(), store)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func registerStudent(t *testing.T, ts *httptest.Server) {
	t.Helper()
	status, _ := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "alice@unza.zm",
		"password": "pw123456",
		"name":     "Alice",
		"major":    "CS",
	})
	require.Equal(t, http.StatusCreated, status)
}

func registerEmployer(t *testing.T, ts *httptest.Server) {
	t.Helper()
	status, _ := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":        "acme@corp.io",
		"password":     "pw123456",
		"company_name": "Acme",
		"industry":     "Tech",
	})
	require.Equal(t, http.StatusCreated, status)
}

func login(t *testing.T, ts *httptest.Server, email, password string) (string, models.UserType) {
	t.Helper()
	status, env := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, "login failed: %s", env.Message)

	var data struct {
		Token    string          `json:"token"`
		UserType models.UserType `json:"userType"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token, data.UserType
}

func TestRegisterAndLogin_StudentScenario(t *testing.T) {
	ts, _ := newTestServer(t)

	status, env := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "alice@unza.zm",
		"password": "pw123456",
		"name":     "Alice",
		"major":    "CS",
	})
	require.Equal(t, http.StatusCreated, status)
	var reg struct {
		ID       int64           `json:"id"`
		UserType models.UserType `json:"userType"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.Equal(t, models.UserTypeStudent, reg.UserType)
	assert.NotZero(t, reg.ID)

	token, userType := login(t, ts, "alice@unza.zm", "pw123456")
	assert.Equal(t, models.UserTypeStudent, userType)

	claims, err := auth.NewTokenManager(testSecret, "internhub-test", 24*time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeStudent, claims.UserType)
}

func TestRegister_DuplicateEmployerScenario(t *testing.T) {
	ts, _ := newTestServer(t)
	registerEmployer(t, ts)

	status, env := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":        "acme@corp.io",
		"password":     "pw123456",
		"company_name": "Acme",
		"industry":     "Tech",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "already exists")
	assert.Contains(t, env.Message, "employer")
}

func TestLogin_WrongPasswordDoesNotRevealAccount(t *testing.T) {
	ts, _ := newTestServer(t)
	registerStudent(t, ts)

	status, env := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@unza.zm", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	statusUnknown, envUnknown := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@unza.zm", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, statusUnknown)
	assert.Equal(t, env.Message, envUnknown.Message,
		"response must not reveal whether the account exists")
}

func TestProfileEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)
	registerStudent(t, ts)
	token, _ := login(t, ts, "alice@unza.zm", "pw123456")

	status, _ := doJSON(t, ts, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status, "missing token")

	status, _ = doJSON(t, ts, http.MethodGet, "/api/auth/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusForbidden, status, "invalid token")

	status, env := doJSON(t, ts, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	var profile models.SafeAccount
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "alice@unza.zm", profile.Email)
	assert.Equal(t, "Alice", profile.Name)

	status, env = doJSON(t, ts, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"password": "sneaky",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "change password endpoint")

	status, env = doJSON(t, ts, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"major": "Software Engineering",
	})
	require.Equal(t, http.StatusOK, status)
	var updated struct {
		UpdatedFields []string `json:"updatedFields"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, []string{"major"}, updated.UpdatedFields)
}

func TestChangePasswordFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	registerStudent(t, ts)
	oldToken, _ := login(t, ts, "alice@unza.zm", "pw123456")

	status, _ := doJSON(t, ts, http.MethodPut, "/api/auth/change-password", oldToken, map[string]string{
		"currentPassword": "wrong", "newPassword": "newpw12345",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, ts, http.MethodPut, "/api/auth/change-password", oldToken, map[string]string{
		"currentPassword": "pw123456", "newPassword": "newpw12345",
	})
	require.Equal(t, http.StatusOK, status)

	// The pre-change token no longer opens account operations.
	status, _ = doJSON(t, ts, http.MethodGet, "/api/auth/profile", oldToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	newToken, _ := login(t, ts, "alice@unza.zm", "newpw12345")
	status, _ = doJSON(t, ts, http.MethodGet, "/api/auth/profile", newToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestVerifyEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	registerStudent(t, ts)
	token, _ := login(t, ts, "alice@unza.zm", "pw123456")

	status, env := doJSON(t, ts, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, status)
	var data struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Valid)

	status, _ = doJSON(t, ts, http.MethodGet, "/api/auth/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func createInternship(t *testing.T, ts *httptest.Server, token string) int64 {
	t.Helper()
	status, env := doJSON(t, ts, http.MethodPost, "/api/internships", token, map[string]any{
		"title":       "Backend Intern",
		"description": "Go services",
		"deadline":    "2026-10-01",
	})
	require.Equal(t, http.StatusCreated, status, "create internship: %s", env.Message)
	var created models.Internship
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created.ID
}

func TestInternshipEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)
	registerStudent(t, ts)
	registerEmployer(t, ts)
	studentToken, _ := login(t, ts, "alice@unza.zm", "pw123456")
	employerToken, _ := login(t, ts, "acme@corp.io", "pw123456")

	status, _ := doJSON(t, ts, http.MethodPost, "/api/internships", studentToken, map[string]any{
		"title": "x", "description": "y", "deadline": "2026-10-01",
	})
	assert.Equal(t, http.StatusForbidden, status, "students cannot post internships")

	status, _ = doJSON(t, ts, http.MethodPost, "/api/internships", employerToken, map[string]any{
		"title": "x", "description": "y", "deadline": "not-a-date",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	id := createInternship(t, ts, employerToken)

	status, env := doJSON(t, ts, http.MethodGet, "/api/internships", "", nil)
	require.Equal(t, http.StatusOK, status)
	var list []models.Internship
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].CompanyName)

	status, _ = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/internships/%d", id), "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, ts, http.MethodGet, "/api/internships/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestApplicationEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)
	registerStudent(t, ts)
	registerEmployer(t, ts)
	studentToken, _ := login(t, ts, "alice@unza.zm", "pw123456")
	employerToken, _ := login(t, ts, "acme@corp.io", "pw123456")
	internshipID := createInternship(t, ts, employerToken)

	status, env := doJSON(t, ts, http.MethodPost, "/api/applications", studentToken, map[string]any{
		"internship_id": internshipID,
		"cover_letter":  "Please consider me",
	})
	require.Equal(t, http.StatusCreated, status)
	var app models.Application
	require.NoError(t, json.Unmarshal(env.Data, &app))
	assert.Equal(t, models.ApplicationStatusPending, app.Status)

	status, env = doJSON(t, ts, http.MethodPost, "/api/applications", studentToken, map[string]any{
		"internship_id": internshipID,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "already applied")

	status, _ = doJSON(t, ts, http.MethodPost, "/api/applications", employerToken, map[string]any{
		"internship_id": internshipID,
	})
	assert.Equal(t, http.StatusForbidden, status, "only students apply")

	status, _ = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", app.ID), employerToken, map[string]string{
		"status": "Approved",
	})
	assert.Equal(t, http.StatusBadRequest, status, "unknown status value")

	status, _ = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", app.ID), employerToken, map[string]string{
		"status": models.ApplicationStatusAccepted,
	})
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, ts, http.MethodGet, "/api/applications", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status, "listing all applications is admin-only")

	status, env = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/students/%d/applications", app.StudentID), studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	var apps []models.Application
	require.NoError(t, json.Unmarshal(env.Data, &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, models.ApplicationStatusAccepted, apps[0].Status)
	assert.Equal(t, "Backend Intern", apps[0].InternshipTitle)
}

func TestEmployerDashboards(t *testing.T) {
	ts, _ := newTestServer(t)
	registerStudent(t, ts)
	registerEmployer(t, ts)
	studentToken, _ := login(t, ts, "alice@unza.zm", "pw123456")
	employerToken, _ := login(t, ts, "acme@corp.io", "pw123456")
	internshipID := createInternship(t, ts, employerToken)

	status, _ := doJSON(t, ts, http.MethodPost, "/api/applications", studentToken, map[string]any{
		"internship_id": internshipID,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, ts, http.MethodGet, "/api/employers/internships", employerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var internships []models.Internship
	require.NoError(t, json.Unmarshal(env.Data, &internships))
	assert.Len(t, internships, 1)

	status, env = doJSON(t, ts, http.MethodGet, "/api/employers/applications", employerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var apps []models.Application
	require.NoError(t, json.Unmarshal(env.Data, &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "alice@unza.zm", apps[0].StudentEmail)

	status, _ = doJSON(t, ts, http.MethodGet, "/api/employers/internships", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestHealthEndpoint(t *testing.T) {
	ts, store := newTestServer(t)

	status, env := doJSON(t, ts, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", env.Message)

	store.PingErr = fmt.Errorf("connection refused")
	status, env = doJSON(t, ts, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "service degraded", env.Message)
}
