package domain

import (
	"context"
	"strings"
)

// ShazamPackage is the Android package name of the recognition app
const ShazamPackage = "com.shazam.android"

// ActiveNotification is one entry of the device notification list
type ActiveNotification struct {
	ID          int    `json:"id"`
	PackageName string `json:"packageName"`
	Title       string `json:"title"`
	Content     string `json:"content"`
}

// Detection is a song identified by the recognition app
type Detection struct {
	Song   string
	Artist string
}

// Label returns the "Song - Artist" form used for dedup and search
func (d Detection) Label() string {
	return d.Song + " - " + d.Artist
}

// DetectionFromNotification extracts a detection from a notification of the
// given package. It returns false when the package differs or either the
// title or the content is blank.
func DetectionFromNotification(n ActiveNotification, packageName string) (Detection, bool) {
	if n.PackageName != packageName {
		return Detection{}, false
	}
	song := strings.TrimSpace(n.Title)
	artist := strings.TrimSpace(n.Content)
	if song == "" || artist == "" {
		return Detection{}, false
	}
	return Detection{Song: song, Artist: artist}, true
}

// DetectionSource lists the notifications currently shown on the device
type DetectionSource interface {
	Active(ctx context.Context) ([]ActiveNotification, error)
}
