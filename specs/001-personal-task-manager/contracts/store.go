// Package contracts/store defines the storage and auth façade contract.
// All durable state flows through one service sitting on a Backend.
//
// Library: sqlx + modernc.org/sqlite, go-redis v9 (behind Backend)
// Hashing: golang.org/x/crypto/bcrypt
package contracts

// Collections and keys:
//
//   congviec:tasks          []Task          (all users, flat)
//   congviec:notifications  []Notification  (all users, flat)
//   congviec:users          []Credential    (password accounts only)
//
// Each collection is stored as a single JSON array blob under its key.
// Every mutation is a whole-collection read-modify-write; a per-
// collection mutex serializes the cycle against concurrent callers.
// The keys are fixed: changing one orphans existing data.
//
// Read policy:
//   Missing key, unreadable backend, or malformed payload all decode
//   as the empty collection. Corruption is logged and recovered,
//   never surfaced to callers.
//
// Write policy:
//   Failures are logged at the façade before being returned, so
//   callers may drop the error without losing the trace. The UI
//   reloads after every mutation and reconciles to whatever the
//   store actually kept.
//
// Simulated latency:
//   Every operation sleeps a random duration within a configured
//   [min, max] window before touching the backend, emulating a remote
//   store. Zero max disables the delay. Context cancellation cuts the
//   sleep short; the operation still proceeds.
//
// Task operations (all scoped to one user):
//   Tasks(ctx, userID)        -> tasks owned by userID, input order
//   SaveTask(ctx, task)       -> insert (assigns uuid, stamps
//                                CreatedAt) or replace by ID
//   DeleteTask(ctx, id)       -> remove one; absent ID is a no-op
//   DeleteAllTasks(ctx, userID) -> remove that user's tasks only;
//                                other users' rows survive
//
// Notification operations:
//   Notifications(ctx, userID)     -> newest first
//   AddNotification(ctx, n)        -> append unless the same
//                                     (UserID, TaskID, Kind) already
//                                     exists; duplicate adds succeed
//                                     silently without writing
//   MarkNotificationRead(ctx, id)
//   MarkAllNotificationsRead(ctx, userID)
//
// Auth operations:
//   Register(ctx, username, password)
//     Rejects a taken username with ErrUsernameTaken. Stores the
//     bcrypt hash, never the password. Returns the public User.
//   Login(ctx, provider, username, password)
//     provider=password: bcrypt compare; wrong username and wrong
//     password both return ErrInvalidCredentials.
//     provider=google|github: returns that provider's fixed identity
//     without touching the users collection (sign-in simulation).
//     Anything else: ErrUnknownProvider.
//   The façade never returns a Credential; only the embedded public
//   User leaves the package.
