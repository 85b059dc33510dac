package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/store"
)

// Auth failure taxonomy. Handlers map these to status codes; nothing else
// about the failure leaks to the client.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrUserMissing     = errors.New("session user missing")
)

// Lifecycle owns user creation, session validation, deletion scheduling and
// the retention sweep.
type Lifecycle struct {
	store         *store.Store
	retentionDays int
	log           *zap.Logger
	now           func() time.Time
}

// NewLifecycle builds the lifecycle manager. retentionDays is how long data
// survives after logout before the sweep may remove it.
func NewLifecycle(st *store.Store, retentionDays int, log *zap.Logger) *Lifecycle {
	return &Lifecycle{
		store:         st,
		retentionDays: retentionDays,
		log:           log,
		now:           models.NowUTC,
	}
}

// SetClock overrides the time source.
func (l *Lifecycle) SetClock(now func() time.Time) { l.now = now }

// RetentionDays exposes the configured window for user-facing messages.
func (l *Lifecycle) RetentionDays() int { return l.retentionDays }

func (l *Lifecycle) retention() time.Duration {
	return time.Duration(l.retentionDays) * 24 * time.Hour
}

// CreateSession mints a session for the user and cancels any pending
// deletion. Guests get the short TTL. Cancellation failures are swallowed:
// on first login the user row may not be written yet.
func (l *Lifecycle) CreateSession(ctx context.Context, user *models.User) (*models.Session, error) {
	ttl := models.SessionTTL
	if user.IsGuest() {
		ttl = models.GuestSessionTTL
	}
	now := l.now()
	sess := &models.Session{
		Token:     NewSessionToken(),
		UserID:    user.UserID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := l.store.Sessions.Insert(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := l.CancelScheduledDeletion(ctx, user.UserID); err != nil {
		l.log.Debug("deletion cancel on login skipped", zap.String("user_id", user.UserID), zap.Error(err))
	}
	return sess, nil
}

// ResolveSession validates a token and loads its user. On success it stamps
// last_active and auto-cancels any scheduled deletion, so every
// authenticated call doubles as a deletion-cancellation heartbeat.
func (l *Lifecycle) ResolveSession(ctx context.Context, token string) (*models.User, *models.Session, error) {
	if token == "" {
		return nil, nil, ErrSessionNotFound
	}
	sess, err := l.store.Sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("load session: %w", err)
	}
	now := l.now()
	if sess.Expired(now) {
		if err := l.store.Sessions.Delete(ctx, token); err != nil {
			l.log.Warn("expired session cleanup failed", zap.Error(err))
		}
		return nil, nil, ErrSessionExpired
	}
	user, err := l.store.Users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Corrupt pointer, not a crash. Drop the dead session.
			if derr := l.store.Sessions.Delete(ctx, token); derr != nil {
				l.log.Warn("orphan session cleanup failed", zap.Error(derr))
			}
			return nil, nil, ErrUserMissing
		}
		return nil, nil, fmt.Errorf("load session user: %w", err)
	}

	fields := map[string]any{"last_active": now}
	if err := l.store.Users.Update(ctx, user.UserID, fields); err != nil {
		l.log.Warn("last_active stamp failed", zap.String("user_id", user.UserID), zap.Error(err))
	}
	user.LastActive = now
	if user.ScheduledDeletionAt != "" {
		if err := l.CancelScheduledDeletion(ctx, user.UserID); err == nil {
			l.log.Info("deletion auto-cancelled on activity", zap.String("user_id", user.UserID))
			user.ScheduledDeletionAt = ""
			user.LogoutAt = ""
		}
	}
	return user, sess, nil
}

// RetentionNotice is what logout tells the user about their data.
type RetentionNotice struct {
	Message       string    `json:"message"`
	MessageEN     string    `json:"message_en"`
	ScheduledFor  time.Time `json:"scheduled_deletion_at"`
	RetentionDays int       `json:"data_retention_days"`
	IsPremium     bool      `json:"is_premium"`
}

// Logout deletes the session and schedules deletion at now + retention.
// Scheduling is unconditional; premium status only changes the wording of
// the notice, while the sweep is what actually exempts premium users.
func (l *Lifecycle) Logout(ctx context.Context, token string, user *models.User) (*RetentionNotice, error) {
	if err := l.store.Sessions.Delete(ctx, token); err != nil {
		l.log.Warn("session delete on logout failed", zap.Error(err))
	}
	now := l.now()
	deadline := now.Add(l.retention())
	fields := map[string]any{
		"scheduled_deletion_at": deadline.Format(time.RFC3339),
		"logout_at":             now.Format(time.RFC3339),
	}
	if err := l.store.Users.Update(ctx, user.UserID, fields); err != nil {
		return nil, fmt.Errorf("schedule deletion: %w", err)
	}
	l.log.Info("user marked for deletion",
		zap.String("user_id", user.UserID),
		zap.Time("scheduled_deletion_at", deadline))

	premium := user.PremiumActive(now)
	notice := &RetentionNotice{
		ScheduledFor:  deadline,
		RetentionDays: l.retentionDays,
		IsPremium:     premium,
	}
	if premium {
		notice.Message = fmt.Sprintf("Çıkış yapıldı. Premium üyeliğiniz devam ettiği sürece verileriniz korunacaktır. Üyelik iptalinden %d gün sonra verileriniz silinecektir.", l.retentionDays)
		notice.MessageEN = fmt.Sprintf("Logged out. Your data will be preserved while your premium subscription is active. Data will be deleted %d days after subscription ends.", l.retentionDays)
	} else {
		notice.Message = fmt.Sprintf("Çıkış yapıldı. %d gün içinde tekrar giriş yapmazsanız verileriniz kalıcı olarak silinecektir.", l.retentionDays)
		notice.MessageEN = fmt.Sprintf("Logged out. If you don't log in again within %d days, your data will be permanently deleted.", l.retentionDays)
	}
	return notice, nil
}

// CancelScheduledDeletion unsets the deletion timestamps.
func (l *Lifecycle) CancelScheduledDeletion(ctx context.Context, userID string) error {
	return l.store.Users.Unset(ctx, userID, "scheduled_deletion_at", "logout_at")
}

// DeleteAccount removes the user and every dependent record immediately.
func (l *Lifecycle) DeleteAccount(ctx context.Context, userID string) error {
	if err := l.store.PurgeUserData(ctx, userID); err != nil {
		return fmt.Errorf("purge user data: %w", err)
	}
	if err := l.store.Users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	l.log.Info("account deleted", zap.String("user_id", userID))
	return nil
}

// SweepReport summarizes one retention sweep.
type SweepReport struct {
	Scanned            int
	Deleted            int
	NotDue             int
	CancelledMalformed int
	CancelledActivity  int
	CancelledSession   int
	SkippedPremium     int
}

// SweepExpired scans every user with a scheduled deletion and deletes the
// ones that are past due and pass all safety overrides. Per-user failures
// are logged and skipped so one bad record never aborts the batch.
func (l *Lifecycle) SweepExpired(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	users, err := l.store.Users.ListScheduled(ctx)
	if err != nil {
		return report, fmt.Errorf("list scheduled users: %w", err)
	}
	now := l.now()
	for _, user := range users {
		report.Scanned++

		deadline, ok := models.ParseTimestamp(user.ScheduledDeletionAt)
		if !ok {
			// Unreadable deadline never deletes anyone. Clear it so the
			// record stops resurfacing every sweep.
			report.CancelledMalformed++
			l.log.Warn("unparsable deletion timestamp, cancelling",
				zap.String("user_id", user.UserID),
				zap.String("scheduled_deletion_at", user.ScheduledDeletionAt))
			l.cancelOrWarn(ctx, user.UserID, "malformed timestamp")
			continue
		}
		if deadline.After(now) {
			report.NotDue++
			continue
		}

		// Safety override A: the user has been active inside the retention
		// window, so a stale schedule survived a re-login.
		if !user.LastActive.IsZero() && now.Sub(user.LastActive) < l.retention() {
			report.CancelledActivity++
			l.log.Info("sweep cancelled: recent activity", zap.String("user_id", user.UserID))
			l.cancelOrWarn(ctx, user.UserID, "recent activity")
			continue
		}

		// Safety override B: a live session means the account is in use.
		live, err := l.store.Sessions.HasLive(ctx, user.UserID, now)
		if err != nil {
			l.log.Warn("sweep session check failed, skipping user",
				zap.String("user_id", user.UserID), zap.Error(err))
			continue
		}
		if live {
			report.CancelledSession++
			l.log.Info("sweep cancelled: live session", zap.String("user_id", user.UserID))
			l.cancelOrWarn(ctx, user.UserID, "live session")
			continue
		}

		// Safety override C: active premium defers deletion but does not
		// clear the schedule.
		if user.PremiumActive(now) {
			report.SkippedPremium++
			l.log.Info("sweep deferred: active premium", zap.String("user_id", user.UserID))
			continue
		}

		if err := l.DeleteAccount(ctx, user.UserID); err != nil {
			l.log.Error("sweep delete failed", zap.String("user_id", user.UserID), zap.Error(err))
			continue
		}
		report.Deleted++
	}
	if report.Deleted > 0 {
		l.log.Info("retention sweep deleted expired accounts", zap.Int("count", report.Deleted))
	}
	return report, nil
}

func (l *Lifecycle) cancelOrWarn(ctx context.Context, userID, reason string) {
	if err := l.CancelScheduledDeletion(ctx, userID); err != nil {
		l.log.Warn("sweep cancel failed",
			zap.String("user_id", userID),
			zap.String("reason", reason),
			zap.Error(err))
	}
}
