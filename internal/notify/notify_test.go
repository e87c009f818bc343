package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubSender struct {
	mu      sync.Mutex
	calls   int
	failFor map[string]bool
}

func (s *stubSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failFor[msg.Recipient] {
		return errors.New("delivery failed")
	}
	return nil
}

func messagesFor(recipients ...string) []Message {
	msgs := make([]Message, 0, len(recipients))
	for _, r := range recipients {
		msgs = append(msgs, Message{Recipient: r, Subject: "s", Body: "b"})
	}
	return msgs
}

func TestFanoutAllSucceed(t *testing.T) {
	sender := &stubSender{}
	result := Fanout(context.Background(), sender, messagesFor("a@x.com", "b@x.com", "c@x.com"))

	assert.Equal(t, 3, result.SuccessCount)
	assert.Empty(t, result.Failures)
	assert.Equal(t, "SUCCESS", result.Status())
	assert.Equal(t, 3, sender.calls)
}

func TestFanoutNeverAbortsOnFailure(t *testing.T) {
	sender := &stubSender{failFor: map[string]bool{"b@x.com": true}}
	result := Fanout(context.Background(), sender, messagesFor("a@x.com", "b@x.com", "c@x.com"))

	assert.Equal(t, 2, result.SuccessCount)
	assert.Len(t, result.Failures, 1)
	assert.Equal(t, "b@x.com", result.Failures[0].Recipient)
	assert.Equal(t, "PARTIAL", result.Status())
	assert.Equal(t, 3, sender.calls, "every message is attempted")
}

func TestFanoutAllFail(t *testing.T) {
	sender := &stubSender{failFor: map[string]bool{"a@x.com": true, "b@x.com": true}}
	result := Fanout(context.Background(), sender, messagesFor("a@x.com", "b@x.com"))

	assert.Equal(t, 0, result.SuccessCount)
	assert.Len(t, result.Failures, 2)
	assert.Equal(t, "FAILED", result.Status())
}

func TestFanoutEmptyBatch(t *testing.T) {
	result := Fanout(context.Background(), &stubSender{}, nil)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, "SUCCESS", result.Status())
}
