// Package mail simulates the notification mailer. Messages are
// composed as real RFC 5322 files and dropped into a local outbox
// directory; nothing is ever handed to an SMTP server.
package mail

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/logging"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// Outbox writes composed messages into a directory, one .eml file per
// send. The directory stands in for the delivery service.
type Outbox struct {
	dir    string
	from   string
	logger *logrus.Logger
	now    func() time.Time
}

// Options tunes an Outbox beyond its defaults.
type Options struct {
	Logger *logrus.Logger
	Now    func() time.Time
}

// NewOutbox creates the outbox directory if needed and returns an
// Outbox writing into it.
func NewOutbox(cfg model.MailConfig, opts Options) (*Outbox, error) {
	if err := os.MkdirAll(cfg.OutboxDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating outbox directory %s: %w", cfg.OutboxDir, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Outbox{
		dir:    cfg.OutboxDir,
		from:   cfg.From,
		logger: logger,
		now:    now,
	}, nil
}

// Send composes a plain-text message to the given user and records it
// in the outbox. The returned path names the written .eml file.
func (o *Outbox) Send(to model.User, subject, body string) (string, error) {
	id := uuid.New().String()

	var h mail.Header
	h.SetDate(o.now())
	h.SetAddressList("From", []*mail.Address{{Name: "Công Việc", Address: o.from}})
	h.SetAddressList("To", []*mail.Address{{Name: to.Name, Address: to.Email}})
	h.SetSubject(subject)
	h.SetMsgIDList("Message-Id", []string{id + "@congviec.local"})
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return "", fmt.Errorf("composing message: %w", err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return "", fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing message: %w", err)
	}

	name := fmt.Sprintf("%s-%s.eml", o.now().Format("20060102T150405"), id[:8])
	path := filepath.Join(o.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing outbox file: %w", err)
	}

	o.logger.WithFields(logrus.Fields{
		"to":   to.Email,
		"file": name,
	}).Info("notification email recorded")

	return path, nil
}
