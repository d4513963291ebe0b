package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photobook/user-image-service/pkg/mailer"
)

type sentMail struct{ to, subject, text, html string }

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func newWorker(s mailer.Sender) *Worker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Worker{Sender: s, Logger: logger}
}

func TestWorker_SendsWelcome(t *testing.T) {
	sender := &fakeSender{}
	body, err := json.Marshal(mailer.WelcomeJob("Photobook", "", "a@x.com", "alice", "user"))
	require.NoError(t, err)

	assert.Equal(t, Ack, newWorker(sender).Handle(context.Background(), body))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@x.com", sender.sent[0].to)
	assert.Equal(t, "Welcome to Photobook, alice", sender.sent[0].subject)
	assert.NotEmpty(t, sender.sent[0].html)
}

func TestWorker_Outcomes(t *testing.T) {
	plain, _ := json.Marshal(mailer.EmailJob{To: "a@x.com", Subject: "s", Text: "t"})
	noRecipient, _ := json.Marshal(mailer.EmailJob{Subject: "s"})
	badTemplate, _ := json.Marshal(mailer.EmailJob{To: "a@x.com", Template: "nope"})

	assert.Equal(t, Drop, newWorker(&fakeSender{}).Handle(context.Background(), []byte("{")))
	assert.Equal(t, Drop, newWorker(&fakeSender{}).Handle(context.Background(), noRecipient))
	assert.Equal(t, Drop, newWorker(&fakeSender{}).Handle(context.Background(), badTemplate))
	assert.Equal(t, Requeue, newWorker(&fakeSender{err: errors.New("mailgun 502")}).Handle(context.Background(), plain))
	assert.Equal(t, Ack, newWorker(&fakeSender{}).Handle(context.Background(), plain))
}
