package mail

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

func TestSendWritesParsableMessage(t *testing.T) {
	dir := t.TempDir()
	sent := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

	outbox, err := NewOutbox(model.MailConfig{
		OutboxDir: dir,
		From:      "reminders@congviec.local",
	}, Options{Now: func() time.Time { return sent }})
	if err != nil {
		t.Fatalf("NewOutbox: %v", err)
	}

	user := model.User{Name: "alice", Email: "alice@congviec.local"}
	path, err := outbox.Send(user, "Task due soon", "Your task is due in two hours.")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written message: %v", err)
	}
	defer f.Close()

	mr, err := mail.CreateReader(f)
	if err != nil {
		t.Fatalf("parsing written message: %v", err)
	}
	defer mr.Close()

	subject, err := mr.Header.Subject()
	if err != nil || subject != "Task due soon" {
		t.Errorf("Subject = %q (%v), want %q", subject, err, "Task due soon")
	}

	to, err := mr.Header.AddressList("To")
	if err != nil || len(to) != 1 {
		t.Fatalf("To = %v (%v), want one address", to, err)
	}
	if to[0].Address != "alice@congviec.local" {
		t.Errorf("To = %q, want %q", to[0].Address, "alice@congviec.local")
	}

	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("reading body part: %v", err)
	}
	body, err := io.ReadAll(part.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if !strings.Contains(string(body), "due in two hours") {
		t.Errorf("body %q missing expected text", string(body))
	}
}

func TestSendFilesAreDistinct(t *testing.T) {
	outbox, err := NewOutbox(model.MailConfig{
		OutboxDir: t.TempDir(),
		From:      "reminders@congviec.local",
	}, Options{})
	if err != nil {
		t.Fatalf("NewOutbox: %v", err)
	}

	user := model.User{Name: "alice", Email: "alice@congviec.local"}
	first, err := outbox.Send(user, "one", "body")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	second, err := outbox.Send(user, "two", "body")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if first == second {
		t.Errorf("two sends reused the same file %s", first)
	}
}
