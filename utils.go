package imageservice

import (
	"fmt"
	"path"

	"github.com/google/uuid"
)

// StorageKey builds a globally unique object key scoped by the uploading
// user, keeping the original file extension: "{userId}/{uuid}{ext}".
func StorageKey(userID int64, originalFilename string) string {
	return fmt.Sprintf("%d/%s%s", userID, uuid.New().String(), path.Ext(originalFilename))
}

// distinctIDs deduplicates user ids while keeping first-seen order.
func distinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	distinct := make([]int64, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	return distinct
}
