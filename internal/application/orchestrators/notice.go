package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "societydesk/internal/domain/audit"
	"societydesk/internal/domain/notice"
)

// NoticeStoreForOrchestrator defines the store interface needed by the notice orchestrators.
type NoticeStoreForOrchestrator interface {
	Save(ctx context.Context, n notice.Notice) error
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Delete(ctx context.Context, id string) error
}

// CreateNoticeInput carries input for the create-notice orchestrator.
type CreateNoticeInput struct {
	Title string
	Body  string
}

// NoticeDeps holds dependencies for the notice orchestrators.
type NoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	// AuditStore is optional; when set, the action is recorded.
	AuditStore AuditStoreForStatus
	// GenerateID and Now are variables for testability.
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateNotice validates and persists a society announcement.
// POST: Notice is stored and the action is audited
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps NoticeDeps) (notice.Notice, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = func() string { return uuid.New().String() }
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	n := notice.Notice{
		ID:        generateID(),
		Title:     input.Title,
		Body:      input.Body,
		CreatedAt: now().UTC(),
	}
	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}
	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_created", "notice_id", n.ID, "title", n.Title)
	recordNoticeAudit(ctx, deps, auditDomain.ActionNoticeCreate, n.ID, n.Title, now())
	return n, nil
}

// ExecuteDeleteNotice removes a society announcement.
// POST: Notice with the given ID is removed and the action is audited
func ExecuteDeleteNotice(ctx context.Context, id string, deps NoticeDeps) error {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	n, err := deps.NoticeStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := deps.NoticeStore.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("notice_event", "event", "notice_deleted", "notice_id", id)
	recordNoticeAudit(ctx, deps, auditDomain.ActionNoticeDelete, id, n.Title, now())
	return nil
}

func recordNoticeAudit(ctx context.Context, deps NoticeDeps, action auditDomain.Action, id, detail string, at time.Time) {
	if deps.AuditStore == nil {
		return
	}
	event := auditDomain.NewEvent("admin", action, id, detail, at)
	if err := deps.AuditStore.Save(ctx, event); err != nil {
		slog.Warn("audit_write_failed", "notice_id", id, "error", err)
	}
}
