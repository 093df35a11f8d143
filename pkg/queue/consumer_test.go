package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	failures int
	calls    int
	sent     []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.calls++
	if m.calls <= m.failures {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []*sarama.ConsumerMessage
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func newTestWorker(t *testing.T, mailer Mailer) *Worker {
	w := NewWorker("payment_notifications", mailer, zaptest.NewLogger(t))
	w.backoff = func(int) time.Duration { return 0 }
	return w
}

func taskMessage(t *testing.T, task PaymentConfirmationTask) *sarama.ConsumerMessage {
	payload, err := json.Marshal(task)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: "payment_notifications", Value: payload}
}

func TestWorker_HandleTaskWithRetry(t *testing.T) {
	bookingID := uuid.New()
	task := PaymentConfirmationTask{
		UserEmail:     "guest@example.com",
		BookingID:     bookingID,
		TransactionID: "booking-" + bookingID.String(),
		Amount:        decimal.RequireFromString("300"),
	}

	tests := []struct {
		name      string
		failures  int
		wantErr   bool
		wantCalls int
	}{
		{name: "first attempt", failures: 0, wantCalls: 1},
		{name: "recovers on third attempt", failures: 2, wantCalls: 3},
		{name: "gives up after three attempts", failures: 3, wantErr: true, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{failures: tt.failures}
			w := newTestWorker(t, mailer)

			err := w.handleTaskWithRetry(context.Background(), taskMessage(t, task))

			assert.Equal(t, tt.wantCalls, mailer.calls)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, mailer.sent)
				return
			}
			require.NoError(t, err)
			require.Len(t, mailer.sent, 1)
			assert.Equal(t, "guest@example.com", mailer.sent[0].to)
			assert.Equal(t, "Payment Confirmation", mailer.sent[0].subject)
			assert.Contains(t, mailer.sent[0].body, "300.00")
			assert.Contains(t, mailer.sent[0].body, task.TransactionID)
		})
	}
}

func TestWorker_MalformedTaskIsNotRetried(t *testing.T) {
	mailer := &fakeMailer{}
	w := newTestWorker(t, mailer)

	err := w.handleTaskWithRetry(context.Background(), &sarama.ConsumerMessage{Value: []byte("{")})

	assert.ErrorIs(t, err, errMalformedTask)
	assert.Zero(t, mailer.calls)
}

func TestWorker_ConsumeClaimMarksEveryMessage(t *testing.T) {
	mailer := &fakeMailer{failures: 3}
	w := newTestWorker(t, mailer)

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 2)}
	claim.messages <- taskMessage(t, PaymentConfirmationTask{UserEmail: "a@example.com", BookingID: uuid.New()})
	claim.messages <- taskMessage(t, PaymentConfirmationTask{UserEmail: "b@example.com", BookingID: uuid.New()})
	close(claim.messages)

	session := &fakeSession{ctx: context.Background()}

	require.NoError(t, w.ConsumeClaim(session, claim))
	assert.Len(t, session.marked, 2)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "b@example.com", mailer.sent[0].to)
}
