package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/neuralthreads/internal/domain"
	"github.com/xiaot623/neuralthreads/internal/style"
)

func stylistServer(t *testing.T, status int, got *[]domain.StylistRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.StylistRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*got = append(*got, req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(domain.StylistResponse{Response: "Go with navy."})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runChat(t *testing.T, server, input string, images ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	args := []string{"chat", "--server", server}
	for _, img := range images {
		args = append(args, "--image", img)
	}
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestChatSendsQuestion(t *testing.T) {
	var got []domain.StylistRequest
	srv := stylistServer(t, http.StatusOK, &got)

	out := runChat(t, srv.URL, "what to wear\n/quit\n")

	require.Len(t, got, 1)
	assert.Equal(t, "what to wear", got[0].Message)
	assert.Contains(t, out, "Go with navy.")
	assert.Contains(t, out, "Bye!")
}

func TestChatFallsBackOnServerError(t *testing.T) {
	var got []domain.StylistRequest
	srv := stylistServer(t, http.StatusInternalServerError, &got)

	out := runChat(t, srv.URL, "business meeting\n/quit\n")

	assert.Contains(t, out, style.FormalAdvice)
}

func TestChatAttachesImagesAndSkipsOthers(t *testing.T) {
	dir := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "look.png"), png, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	var got []domain.StylistRequest
	srv := stylistServer(t, http.StatusOK, &got)

	out := runChat(t, srv.URL, "\n/quit\n", filepath.Join(dir, "look.png"), filepath.Join(dir, "notes.txt"))

	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "1 photo(s) staged")
	require.Len(t, got, 1)
	require.Len(t, got[0].Images, 1)
	assert.True(t, strings.HasPrefix(got[0].Images[0], "data:image/png;base64,"))
}

func TestBookRejectsMissingFieldsBeforeCalling(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	for _, args := range [][]string{
		{"book", "--server", srv.URL, "--customer", "c1", "--designer", "d1", "--service", "fitting"},
		{"book", "--server", srv.URL, "--customer", "c1", "--designer", "d1", "--service", " ", "--date", "2030-05-01"},
	} {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		err := cmd.Execute()
		require.Error(t, err)
	}
	assert.Zero(t, calls)
}

func TestBookCreatesPendingBooking(t *testing.T) {
	var got domain.BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create-booking", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"b1","designer_id":"d1","service_type":"fitting","booking_date":"2030-05-01T10:00:00Z","status":"pending","created_at":"2026-10-18T09:00:00Z"}}`))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"book", "--server", srv.URL, "--customer", "c1", "--designer", "d1", "--service", "fitting", "--date", "2030-05-01T10:00:00Z"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "c1", got.CustomerID)
	assert.Equal(t, "2030-05-01T10:00:00Z", got.BookingDate)
	assert.Contains(t, out.String(), "b1")
	assert.Contains(t, out.String(), "pending")
}
