package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/photobook/user-image-service/pkg/mailer"
)

// Outcome tells the consumer loop how to settle a delivery
type Outcome int

const (
	Ack Outcome = iota
	Requeue
	Drop
)

// Worker turns queued EmailJobs into sent emails
type Worker struct {
	Sender mailer.Sender
	Logger *logrus.Logger
}

func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad message")
		return Drop
	}
	if job.To == "" {
		w.Logger.Warn("email job without recipient")
		return Drop
	}

	subject, text, html, err := job.Resolve()
	if err != nil {
		w.Logger.WithError(err).WithField("template", job.Template).Warn("render failed")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Error("send failed")
		return Requeue
	}
	return Ack
}
