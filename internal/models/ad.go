package models

import "time"

// AdStatus is the moderation status of an ad.
type AdStatus string

const (
	// AdStatusPending marks a freshly submitted ad awaiting moderation.
	AdStatusPending AdStatus = "pending"
	// AdStatusApproved marks an ad cleared for delivery.
	AdStatusApproved AdStatus = "approved"
	// AdStatusRejected marks an ad declined by moderation.
	AdStatusRejected AdStatus = "rejected"
)

// Valid reports whether the status is one of the closed set.
func (s AdStatus) Valid() bool {
	switch s {
	case AdStatusPending, AdStatusApproved, AdStatusRejected:
		return true
	}
	return false
}

// MediaKind tags the type of an attached media file.
type MediaKind string

const (
	// MediaPhoto marks a photo attachment.
	MediaPhoto MediaKind = "photo"
	// MediaVideo marks a video attachment.
	MediaVideo MediaKind = "video"
)

// Valid reports whether the kind is photo or video.
func (k MediaKind) Valid() bool {
	return k == MediaPhoto || k == MediaVideo
}

// MediaRef points at an uploaded Telegram file together with its kind.
type MediaRef struct {
	Ref  string
	Kind MediaKind
}

// Button is an optional call-to-action attached to an ad.
type Button struct {
	Label string
	URL   string
}

// Draft accumulates ad fields during a creation conversation. Media and
// Button stay nil when the user skipped the respective step.
type Draft struct {
	Text   string
	Media  *MediaRef
	Button *Button
}

// Ad is a persisted advertisement row. Nullable columns are pointers so the
// stored shape keeps media ref/kind and button label/url as distinct fields
// instead of stringified blobs.
type Ad struct {
	ID          int64      `db:"id"`
	OwnerID     int64      `db:"owner_id"`
	Body        string     `db:"body"`
	MediaRef    *string    `db:"media_ref"`
	MediaKind   *MediaKind `db:"media_kind"`
	ButtonLabel *string    `db:"button_label"`
	ButtonURL   *string    `db:"button_url"`
	Status      AdStatus   `db:"status"`
	Views       int        `db:"views"`
	Clicks      int        `db:"clicks"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Media reassembles the structured media reference, or nil when none was attached.
func (a Ad) Media() *MediaRef {
	if a.MediaRef == nil || a.MediaKind == nil {
		return nil
	}
	return &MediaRef{Ref: *a.MediaRef, Kind: *a.MediaKind}
}

// Button reassembles the call-to-action button, or nil when none was attached.
func (a Ad) Button() *Button {
	if a.ButtonLabel == nil || a.ButtonURL == nil {
		return nil
	}
	return &Button{Label: *a.ButtonLabel, URL: *a.ButtonURL}
}
