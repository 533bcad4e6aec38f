package photo

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultExtension = "jpg"

// GenerateStoragePath builds users/{userID}/rooms/{roomID}/{photoType}/{unixMillis}-{uuid}.{ext}.
// The extension is whatever follows the last dot; a name without a dot is used whole.
func GenerateStoragePath(userID, roomID string, photoType PhotoType, fileName string) string {
	return generateStoragePath(userID, roomID, photoType, fileName, time.Now())
}

func generateStoragePath(userID, roomID string, photoType PhotoType, fileName string, now time.Time) string {
	return fmt.Sprintf("users/%s/rooms/%s/%s/%d-%s.%s",
		userID, roomID, photoType, now.UnixMilli(), uuid.NewString(), extension(fileName))
}

func extension(fileName string) string {
	if fileName == "" {
		return defaultExtension
	}
	idx := strings.LastIndex(fileName, ".")
	ext := fileName[idx+1:]
	if ext == "" {
		return defaultExtension
	}
	return ext
}
