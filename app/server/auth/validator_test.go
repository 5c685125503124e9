package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-directory/app/server/errs"
)

func requireKind(t *testing.T, err error, kind errs.Kind) {
	t.Helper()
	require.Error(t, err)
	got, ok := errs.KindOf(err)
	require.True(t, ok, "error has no kind: %v", err)
	require.Equal(t, kind, got, "unexpected kind for: %v", err)
}

func TestValidate_NoAPIURL(t *testing.T) {
	t.Parallel()

	v := NewValidator("")

	_, err := v.Validate(context.Background(), "Bearer sometoken")
	requireKind(t, err, errs.ConfigError)
}

func TestValidate_MissingOrMalformedHeader(t *testing.T) {
	t.Parallel()

	// 这里配置的地址不应该被访问到
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("authentication service should not be called")
	}))
	defer server.Close()

	v := NewValidator(server.URL)

	for _, header := range []string{
		"",
		"Bearer",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		"Bearer a b",
	} {
		_, err := v.Validate(context.Background(), header)
		requireKind(t, err, errs.MissingCredential)
	}
}

func TestValidate_UpstreamRejects(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer server.Close()

	v := NewValidator(server.URL)

	_, err := v.Validate(context.Background(), "Bearer sometoken")
	requireKind(t, err, errs.TokenInvalid)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "token expired")
}

func TestValidate_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 立刻关掉，模拟网络故障

	v := NewValidator(server.URL)

	_, err := v.Validate(context.Background(), "Bearer sometoken")
	requireKind(t, err, errs.TokenInvalid)
}

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		// 校验转发的 token
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "sometoken", body["jwt"])

		_ = json.NewEncoder(w).Encode(map[string]any{"id": 42, "isAdmin": true})
	}))
	defer server.Close()

	v := NewValidator(server.URL)

	identity, err := v.Validate(context.Background(), "Bearer sometoken")
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.ID)
	assert.True(t, identity.IsAdmin)
}

func TestValidate_SuccessNestedPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": 3, "isAdmin": false},
		})
	}))
	defer server.Close()

	v := NewValidator(server.URL)

	identity, err := v.Validate(context.Background(), "bearer sometoken")
	require.NoError(t, err)
	assert.Equal(t, uint(3), identity.ID)
	assert.False(t, identity.IsAdmin)
}

func TestValidate_BadPayload(t *testing.T) {
	t.Parallel()

	t.Run("not json", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		_, err := NewValidator(server.URL).Validate(context.Background(), "Bearer sometoken")
		requireKind(t, err, errs.TokenInvalid)
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"isAdmin": true})
		}))
		defer server.Close()

		_, err := NewValidator(server.URL).Validate(context.Background(), "Bearer sometoken")
		requireKind(t, err, errs.TokenInvalid)
	})
}
