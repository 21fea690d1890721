package leads

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartfulmiles/trip-leads/internal/notify"
	"github.com/heartfulmiles/trip-leads/internal/sheets"
	"github.com/heartfulmiles/trip-leads/pkg/logging"
)

type fakeBroker struct {
	token string
	err   error
	calls int
}

func (f *fakeBroker) Exchange(context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type fakeRecorder struct {
	err    error
	tokens []string
	rows   []sheets.Row
}

func (f *fakeRecorder) Append(_ context.Context, token string, row sheets.Row) error {
	f.tokens = append(f.tokens, token)
	f.rows = append(f.rows, row)
	return f.err
}

type fakeSender struct {
	err    error
	tokens []string
	msgs   []notify.Message
}

func (f *fakeSender) Send(_ context.Context, token string, msg notify.Message) error {
	f.tokens = append(f.tokens, token)
	f.msgs = append(f.msgs, msg)
	return f.err
}

func newTestService(broker *fakeBroker, recorder *fakeRecorder, sender *fakeSender) *Service {
	return NewService(broker, recorder, sender, nil, logging.New("error"))
}

func TestSubmit_FullSuccess(t *testing.T) {
	broker := &fakeBroker{token: "tok-1"}
	recorder := &fakeRecorder{}
	sender := &fakeSender{}
	svc := newTestService(broker, recorder, sender)

	req := validRequest()
	outcome, err := svc.Submit(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, outcome.Status)
	assert.Equal(t, MsgSubmitted, outcome.Message)

	require.Len(t, recorder.rows, 1)
	assert.Equal(t, req.Row(), recorder.rows[0])
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "jo@x.com", sender.msgs[0].To)

	// The recorder and the notifier ride the same per-submission token.
	assert.Equal(t, []string{"tok-1"}, recorder.tokens)
	assert.Equal(t, []string{"tok-1"}, sender.tokens)
}

func TestSubmit_NotifierFailureIsPartialSuccess(t *testing.T) {
	broker := &fakeBroker{token: "tok-1"}
	recorder := &fakeRecorder{}
	sender := &fakeSender{err: errors.New("gmail down")}
	svc := newTestService(broker, recorder, sender)

	req := validRequest()
	outcome, err := svc.Submit(context.Background(), &req)
	require.NoError(t, err, "notifier failure must not fail the submission")
	assert.Equal(t, StatusPartial, outcome.Status)
	assert.Contains(t, outcome.Message, "couldn't send a confirmation email")

	// The append is never rolled back.
	assert.Len(t, recorder.rows, 1)
}

func TestSubmit_BrokerFailureShortCircuits(t *testing.T) {
	broker := &fakeBroker{err: errors.New("invalid_grant")}
	recorder := &fakeRecorder{}
	sender := &fakeSender{}
	svc := newTestService(broker, recorder, sender)

	req := validRequest()
	_, err := svc.Submit(context.Background(), &req)
	require.Error(t, err)
	assert.Empty(t, recorder.rows, "recorder must not run after broker failure")
	assert.Empty(t, sender.msgs, "notifier must not run after broker failure")
}

func TestSubmit_RecorderFailureSkipsNotifier(t *testing.T) {
	broker := &fakeBroker{token: "tok-1"}
	recorder := &fakeRecorder{err: &sheets.AppendError{StatusCode: 403, Body: `{"error":"denied"}`}}
	sender := &fakeSender{}
	svc := newTestService(broker, recorder, sender)

	req := validRequest()
	_, err := svc.Submit(context.Background(), &req)
	require.Error(t, err)

	var apErr *sheets.AppendError
	require.ErrorAs(t, err, &apErr)
	assert.Equal(t, `{"error":"denied"}`, apErr.Body)
	assert.Empty(t, sender.msgs, "notifier must not run after recorder failure")
}

func TestSubmit_NoDeduplication(t *testing.T) {
	broker := &fakeBroker{token: "tok"}
	recorder := &fakeRecorder{}
	sender := &fakeSender{}
	svc := newTestService(broker, recorder, sender)

	req := validRequest()
	_, err := svc.Submit(context.Background(), &req)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), &req)
	require.NoError(t, err)

	assert.Len(t, recorder.rows, 2, "identical submissions append duplicate rows")
	assert.Len(t, sender.msgs, 2, "identical submissions send duplicate emails")
	assert.Equal(t, 2, broker.calls, "every submission performs a fresh exchange")
}

func TestBuildConfirmation(t *testing.T) {
	req := validRequest()
	req.SpecialRequirements = "window seat"
	msg := BuildConfirmation(&req)

	assert.Equal(t, "jo@x.com", msg.To)
	assert.Equal(t, "Travel Request Confirmation", msg.Subject)
	for _, v := range []string{"Jo", "+911234567890", "jo@x.com", "Chennai", "Goa", "50k", "2", "2026-09-04", "2026-09-09", "window seat"} {
		assert.Contains(t, msg.HTML, v)
		assert.Contains(t, msg.Body, v)
	}
	assert.Contains(t, msg.HTML, "24-48 hours")
	assert.Contains(t, msg.HTML, "Heartful Miles")
}

func TestBuildConfirmation_StripsMarkup(t *testing.T) {
	req := validRequest()
	req.Name = `Jo<script>alert(1)</script>`
	req.SpecialRequirements = `<img src=x onerror=alert(1)>`
	msg := BuildConfirmation(&req)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.NotContains(t, msg.HTML, "<img")
	assert.Contains(t, msg.HTML, "Dear Jo")
}
