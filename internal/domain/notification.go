package domain

import (
	"fmt"
	"time"
)

// NotificationKey derives a stable identity for one pending completion:
// the same timer instance yields the same key across renders, and starting
// a new timer on the same slot yields a different one.
func NotificationKey(accountID AccountID, category Category, slot int, end time.Time) string {
	return fmt.Sprintf("%s-%s-%d-%s", accountID, category, slot, end.Format(time.RFC3339))
}
