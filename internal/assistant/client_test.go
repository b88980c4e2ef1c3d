package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kina/internal/model"
)

func testRecords() []model.BudgetRecord {
	return []model.BudgetRecord{
		{ID: "health", Name: "Health", Category: model.CategorySector, Allocation2025: 2_800_000_000, Allocation2026: 3_200_000_000},
		{ID: "pit", Name: "Personal Income Tax", Category: model.CategoryRevenue, Allocation2026: 8_800_000_000},
	}
}

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		})
	}
}

func TestNewClientRejectsEmptyKey(t *testing.T) {
	assert.Nil(t, NewClient("", testRecords()))
	assert.Nil(t, NewClient("   ", testRecords()))
}

func TestSendReturnsReplyText(t *testing.T) {
	srv := httptest.NewServer(replyWith("The deficit target is 1.1% of GDP."))
	defer srv.Close()

	c := NewClient("test-key", testRecords(), WithBaseURL(srv.URL))
	require.NotNil(t, c)

	got, err := c.Send(context.Background(), nil, "How healthy is the budget?")
	require.NoError(t, err)
	assert.Equal(t, "The deficit target is 1.1% of GDP.", got)
}

func TestSendReplaysTranscript(t *testing.T) {
	var captured generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		replyWith("ok")(w, r)
	}))
	defer srv.Close()

	c := NewClient("test-key", testRecords(), WithBaseURL(srv.URL))
	transcript := []model.ChatMessage{
		{Role: model.RoleUser, Text: "hello"},
		{Role: model.RoleAssistant, Text: "hi there"},
	}
	_, err := c.Send(context.Background(), transcript, "next question")
	require.NoError(t, err)

	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
	assert.Equal(t, "next question", captured.Contents[2].Parts[0].Text)
	require.NotNil(t, captured.SystemInstruction)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "Budget Bot")
}

func TestSendMapsServerErrorToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":503,"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient("test-key", testRecords(), WithBaseURL(srv.URL))
	_, err := c.Send(context.Background(), nil, "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "overloaded")
}

func TestSendEmptyCandidatesIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", testRecords(), WithBaseURL(srv.URL))
	_, err := c.Send(context.Background(), nil, "q")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestSendHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient("test-key", testRecords(), WithBaseURL(srv.URL))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Send(ctx, nil, "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSystemInstructionGroundedInRecords(t *testing.T) {
	prompt := SystemInstruction(testRecords())
	assert.Contains(t, prompt, "Budget Bot")
	assert.Contains(t, prompt, "Health")
	assert.Contains(t, prompt, "Personal Income Tax")
	assert.Contains(t, prompt, "K8.8 Billion")
	assert.Contains(t, prompt, "treasury.gov.pg")
	// Growth figure computed from the dataset, not hard-coded.
	assert.True(t, strings.Contains(prompt, "+14.3%"), "expected Health growth line, got:\n%s", prompt)
}
