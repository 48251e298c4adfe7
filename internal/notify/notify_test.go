package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/sunset-scout/internal/scout"
)

func testReport(score int) scout.Report {
	return scout.Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 10, 17, 15, 0, 0, 0, time.FixedZone("CST", 8*60*60)),
		Assessment: scout.Assessment{
			Score:          score,
			Rating:         scout.RatingSpectacular,
			Recommendation: scout.RecommendGo,
		},
		Text: "line one\nline two\n",
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(&buf)

	require.NoError(t, s.Deliver(context.Background(), testReport(70)))
	assert.Equal(t, "line one\nline two\n", buf.String())
	assert.Equal(t, "stdout", s.Name())
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	s := NewFileSink(dir)
	r := testReport(70)

	require.NoError(t, s.Deliver(context.Background(), r))

	path := filepath.Join(dir, "report_20261017_1500.txt")
	assert.Equal(t, path, s.Path(r))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r.Text, string(data))
}

func TestAlertSink_BelowThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alert.txt")
	s := NewAlertSink(path, 80)

	require.NoError(t, s.Deliver(context.Background(), testReport(79)))
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAlertSink_AtThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alert.txt")
	s := NewAlertSink(path, 80)

	require.NoError(t, s.Deliver(context.Background(), testReport(80)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	body := string(data)
	assert.True(t, strings.HasPrefix(body, "2026-10-17T15:00:00"))
	assert.Contains(t, body, "Score: 80\n")
	assert.Contains(t, body, "Rating: SPECTACULAR\n")
	assert.Contains(t, body, "Recommendation: GO\n")
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "🌅 Sunset Scout: 85/100", Subject(testReport(85)))
}

func TestSMTPSink(t *testing.T) {
	s := NewSMTPSink(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "scout@example.com",
		Password: "secret",
		To:       []string{"a@example.com", "b@example.com"},
	})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, s.Deliver(context.Background(), testReport(85)))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "scout@example.com", gotFrom)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=\"utf-8\"\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nline one\r\nline two\r\n"))
}

func TestSMTPSink_Errors(t *testing.T) {
	s := NewSMTPSink(SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.ErrorIs(t, s.Deliver(context.Background(), testReport(50)), errNoRecipients)

	s.cfg.To = []string{"a@example.com"}
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	err := s.Deliver(context.Background(), testReport(50))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSendGridSink(t *testing.T) {
	var calls int
	var payloads []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		var p map[string]any
		_ = json.Unmarshal(body, &p)
		payloads = append(payloads, p)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGridSink(SendGridConfig{
		APIKey: "sg-key",
		Host:   srv.URL,
		From:   "scout@example.com",
		To:     []string{"a@example.com", "b@example.com"},
	})

	require.NoError(t, s.Deliver(context.Background(), testReport(85)))
	assert.Equal(t, 2, calls)
	require.Len(t, payloads, 2)
	assert.Equal(t, "🌅 Sunset Scout: 85/100", payloads[0]["subject"])
}

func TestSendGridSink_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	s := NewSendGridSink(SendGridConfig{APIKey: "bad", Host: srv.URL, From: "scout@example.com", To: []string{"a@example.com"}})
	err := s.Deliver(context.Background(), testReport(85))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
