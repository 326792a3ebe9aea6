// Package contracts/reminder defines the deadline evaluation contract:
// when notifications are raised and what keeps them from repeating.
//
// Library: google/uuid for notification IDs, emersion/go-message for
// the simulated email files.
package contracts

import "time"

// ReminderKind classifies a task's relation to its deadline.
type ReminderKind string

const (
	ReminderUpcoming ReminderKind = "upcoming"
	ReminderOverdue  ReminderKind = "overdue"
)

// ReminderWindow is how far ahead a deadline may sit and still count
// as upcoming.
const ReminderWindow = 24 * time.Hour

// Sweep contract:
//
// Input: the signed-in user, their current task list, and their
// current notification list. Output: the notifications created.
//
// Classification (done tasks are exempt):
//   deadline < now                 -> overdue
//   deadline <= now + window       -> upcoming
//   otherwise                      -> nothing
//
// Uniqueness:
//   At most one notification per (user, task, kind) over the task's
//   life. The sweep skips pairs present in its input list, and the
//   store's AddNotification re-checks at write time, so concurrent or
//   stale-input sweeps stay idempotent. A task crossing from upcoming
//   into overdue earns a second notification; re-running a sweep
//   never does.
//
// Scheduling:
//   A sweep runs after every task load (sign-in, mutation reload) and
//   on a periodic tick while the program idles, so a deadline crossing
//   a threshold on its own is still noticed.
//
// Email simulation:
//   Each created notification also composes an RFC 5322 message and
//   writes it as a .eml file to the configured outbox directory.
//   Nothing is transmitted; the file is the delivery record. A failed
//   write is logged and the notification stands.
