// Package notify fans out notifications to many recipients without aborting
// the batch on individual failures. Actual delivery is a collaborator hidden
// behind Sender; the core only depends on the result-aggregation contract.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Message is one notification to one recipient.
type Message struct {
	Recipient string
	Name      string
	Subject   string
	Body      string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Failure records one recipient that could not be reached.
type Failure struct {
	Recipient string `json:"recipient"`
	Error     string `json:"error"`
}

// Result aggregates a fan-out: how many sends succeeded and who failed.
// A batch never aborts on a single failure.
type Result struct {
	SuccessCount int       `json:"success_count"`
	Failures     []Failure `json:"failures"`
}

// Status summarizes the batch outcome.
func (r *Result) Status() string {
	switch {
	case len(r.Failures) == 0:
		return "SUCCESS"
	case r.SuccessCount == 0:
		return "FAILED"
	default:
		return "PARTIAL"
	}
}

// Fanout dispatches every message concurrently through the sender and
// collects per-recipient outcomes.
func Fanout(ctx context.Context, sender Sender, messages []Message) *Result {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result Result
	)

	for _, msg := range messages {
		wg.Add(1)
		go func(msg Message) {
			defer wg.Done()
			err := sender.Send(ctx, msg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, Failure{
					Recipient: msg.Recipient,
					Error:     err.Error(),
				})
				return
			}
			result.SuccessCount++
		}(msg)
	}

	wg.Wait()
	return &result
}

// LogSender is the default Sender: it logs instead of delivering, for
// environments without an outbound mail collaborator configured.
type LogSender struct {
	Log *zap.Logger
}

// Send logs the message and reports success.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.Log.Info("notification dispatched",
		zap.String("recipient", msg.Recipient),
		zap.String("subject", msg.Subject),
	)
	return nil
}
