package repository

import (
	"testing"
	"time"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"
)

func TestNotificationMarkReadIsOwnerScoped(t *testing.T) {
	db := setupRepositoryTest(t)
	user := createTestUser(t, db, "buyer@example.com", "customer")
	other := createTestUser(t, db, "other@example.com", "customer")
	repo := NewNotificationRepository(db)

	batch := []models.Notification{
		{UserID: user.ID, Kind: constants.NotificationKindOrderStatus, Title: "Order placed", Body: "ORD-1 is pending"},
		{UserID: user.ID, Kind: constants.NotificationKindOrderStatus, Title: "Order shipped", Body: "ORD-1 is shipped"},
	}
	if err := repo.CreateBatch(batch); err != nil {
		t.Fatalf("create batch failed: %v", err)
	}
	if unread, _ := repo.CountUnread(user.ID); unread != 2 {
		t.Fatalf("want 2 unread got %d", unread)
	}

	list, total, err := repo.List(NotificationListFilter{UserID: user.ID, Page: 1, PageSize: 10})
	if err != nil || total != 2 {
		t.Fatalf("list want 2 got %d err=%v", total, err)
	}
	target := list[0].ID

	if affected, _ := repo.MarkRead(target, other.ID, time.Now()); affected != 0 {
		t.Fatalf("another user must not mark it read")
	}
	if affected, _ := repo.MarkRead(target, user.ID, time.Now()); affected != 1 {
		t.Fatalf("owner mark read want 1 row got %d", affected)
	}
	if affected, _ := repo.MarkRead(target, user.ID, time.Now()); affected != 0 {
		t.Fatalf("already-read notification should not be touched again")
	}
	_, total, _ = repo.List(NotificationListFilter{UserID: user.ID, UnreadOnly: true})
	if total != 1 {
		t.Fatalf("unread filter want 1 got %d", total)
	}
}
