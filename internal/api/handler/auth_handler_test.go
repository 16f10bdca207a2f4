package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jobtrack/jobtrack-be/internal/api/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing username",
			body:       `{"password":"secret1"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Username and password required",
		},
		{
			name:       "missing password",
			body:       `{"username":"alice"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Username and password required",
		},
		{
			name:       "username too short",
			body:       `{"username":"al","password":"secret1"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Username must be at least 3 characters",
		},
		{
			name:       "password too short",
			body:       `{"username":"alice","password":"short"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Password must be at least 6 characters",
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "success",
			body:       `{"username":"alice","password":"secret1"}`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserStore()
			r := newTestRouter(&Dependencies{Users: users, Jobs: newFakeJobStore()})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
				return
			}

			assert.Equal(t, "User registered successfully", resp["message"])
			assert.Equal(t, float64(1), resp["userId"])
			assert.Equal(t, "alice", resp["username"])
			assert.NotContains(t, resp, "password")

			// Stored credential is a hash, never the plaintext.
			stored := users.users["alice"]
			require.NotNil(t, stored)
			assert.NotEqual(t, "secret1", stored.PasswordHash)
			assert.True(t, auth.CheckPassword(stored.PasswordHash, "secret1"))
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := newFakeUserStore()
	r := newTestRouter(&Dependencies{Users: users, Jobs: newFakeJobStore()})

	register := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/register",
			strings.NewReader(`{"username":"alice","password":"secret1"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	first := register()
	assert.Equal(t, http.StatusOK, first.Code)

	second := register()
	assert.Equal(t, http.StatusBadRequest, second.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "Username already exists", resp["error"])
}

func TestRegister_StoreFault(t *testing.T) {
	users := newFakeUserStore()
	users.err = errors.New("connection refused")
	r := newTestRouter(&Dependencies{Users: users, Jobs: newFakeJobStore()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"alice","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Store detail is logged, not surfaced.
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to create user", resp["error"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	_, err = users.CreateUser(t.Context(), "alice", hash)
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing fields",
			body:       `{"username":"alice"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Username and password required",
		},
		{
			name:       "unknown user",
			body:       `{"username":"bob","password":"secret1"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid username or password",
		},
		{
			name:       "wrong password",
			body:       `{"username":"alice","password":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid username or password",
		},
		{
			name:       "success",
			body:       `{"username":"alice","password":"secret1"}`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&Dependencies{Users: users, Jobs: newFakeJobStore()})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
				return
			}

			assert.Equal(t, "Login successful", resp["message"])
			user := resp["user"].(map[string]interface{})
			assert.Equal(t, float64(1), user["id"])
			assert.Equal(t, "alice", user["username"])

			// The password never travels back, hashed or not.
			assert.NotContains(t, w.Body.String(), "password")
			assert.NotContains(t, w.Body.String(), "secret1")
		})
	}
}
