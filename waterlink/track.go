package waterlink

import (
	"fmt"
	"strings"
)

// TrackInfo is the metadata block the node attaches to a resolved track.
type TrackInfo struct {
	Identifier string `json:"identifier"`
	IsSeekable bool   `json:"isSeekable"`
	Author     string `json:"author"`
	Length     int64  `json:"length"` // milliseconds
	IsStream   bool   `json:"isStream"`
	Position   int64  `json:"position"`
	Title      string `json:"title"`
	URI        string `json:"uri"`
}

// Track is one playable item resolved from a node query. The ID field is
// the opaque playback token the node requires to start playback; everything
// else is display metadata. Tracks are value objects and never mutated.
type Track struct {
	ID   string    `json:"track"`
	Info TrackInfo `json:"info"`
}

// Thumbnail returns the canonical video thumbnail URL for YouTube-sourced
// tracks and "" for every other source.
func (t Track) Thumbnail() string {
	if !strings.Contains(t.Info.URI, "youtube") {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/default.jpg", t.Info.Identifier)
}

func (t Track) String() string {
	if t.Info.Title != "" && t.Info.Length > 0 {
		return fmt.Sprintf("<Track title=%q length=%dms>", t.Info.Title, t.Info.Length)
	}
	return fmt.Sprintf("<Track id=%s>", t.ID)
}
