package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// PhotoStore uploads a booking photo and returns its public URL.
type PhotoStore interface {
	Upload(ctx context.Context, objectPath, contentType string, data io.Reader) (string, error)
}

// PhotoObjectPath builds "{userID}/{bookingID}/{unixMillis}-{fileName}".
func PhotoObjectPath(userID, bookingID string, at time.Time, fileName string) string {
	return fmt.Sprintf("%s/%s/%d-%s", userID, bookingID, at.UnixMilli(), sanitizeFileName(fileName))
}

// sanitizeFileName drops any directory part so a client cannot escape the booking folder.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" {
		return "photo"
	}
	return name
}
