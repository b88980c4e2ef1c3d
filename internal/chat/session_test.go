package chat

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kina/internal/model"
)

type fakeSender struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   [][]model.ChatMessage
	block   chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, transcript []model.ChatMessage, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, transcript)
	n := len(f.calls) - 1
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	var err error
	if n < len(f.errs) {
		err = f.errs[n]
	}
	reply := ""
	if n < len(f.replies) {
		reply = f.replies[n]
	}
	return reply, err
}

func TestSendAppendsUserThenAssistant(t *testing.T) {
	s := NewSession(&fakeSender{replies: []string{"K3.2B for Health in 2026."}})

	reply, err := s.Send(context.Background(), "How much for health?")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, reply.Role)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "How much for health?", msgs[0].Text)
	assert.Equal(t, "K3.2B for Health in 2026.", msgs[1].Text)
	assert.NotEmpty(t, msgs[0].ID)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
}

func TestSendFailureKeepsUserMessageAndAppendsOneFallback(t *testing.T) {
	s := NewSession(&fakeSender{errs: []error{errors.New("upstream down")}})

	reply, err := s.Send(context.Background(), "hello?")
	require.Error(t, err)
	assert.Equal(t, FallbackReply, reply.Text)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello?", msgs[0].Text)
	assert.Equal(t, FallbackReply, msgs[1].Text)
}

func TestSendReplaysPriorHistoryNotCurrentTurn(t *testing.T) {
	f := &fakeSender{replies: []string{"first", "second"}}
	s := NewSession(f)

	_, err := s.Send(context.Background(), "q1")
	require.NoError(t, err)
	_, err = s.Send(context.Background(), "q2")
	require.NoError(t, err)

	require.Len(t, f.calls, 2)
	assert.Empty(t, f.calls[0])
	// Second call sees the completed first turn but not its own text.
	require.Len(t, f.calls[1], 2)
	assert.Equal(t, "q1", f.calls[1][0].Text)
	assert.Equal(t, "first", f.calls[1][1].Text)
}

func TestConcurrentSendRefusedWithoutTranscriptChange(t *testing.T) {
	f := &fakeSender{replies: []string{"done"}, block: make(chan struct{})}
	s := NewSession(f)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Send(context.Background(), "slow question")
	}()

	// Wait until the first send is in flight.
	for !s.InFlight() {
		runtime.Gosched()
	}
	_, err := s.Send(context.Background(), "impatient second question")
	assert.ErrorIs(t, err, ErrBusy)

	close(f.block)
	<-done

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "slow question", msgs[0].Text)
	assert.False(t, s.InFlight())
}

func TestMessagesReturnsSnapshot(t *testing.T) {
	s := NewSession(&fakeSender{replies: []string{"r"}})
	_, err := s.Send(context.Background(), "q")
	require.NoError(t, err)

	msgs := s.Messages()
	msgs[0].Text = "mutated"
	assert.Equal(t, "q", s.Messages()[0].Text)
}
