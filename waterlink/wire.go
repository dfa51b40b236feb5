package waterlink

import "encoding/json"

// Outbound control-socket commands. Guild and channel ids cross the wire as
// decimal strings even though they are held as integers locally.

type playCommand struct {
	Op        string `json:"op"`
	GuildID   string `json:"guildId"`
	Track     string `json:"track"`
	StartTime int64  `json:"startTime"`
	// EndTime is omitted entirely when the caller did not bound playback;
	// the node treats an explicit null as zero.
	EndTime *int64 `json:"endTime,omitempty"`
}

type pauseCommand struct {
	Op      string `json:"op"`
	GuildID string `json:"guildId"`
	Pause   bool   `json:"pause"`
}

type stopCommand struct {
	Op      string `json:"op"`
	GuildID string `json:"guildId"`
}

type volumeCommand struct {
	Op      string `json:"op"`
	GuildID string `json:"guildId"`
	Volume  int    `json:"volume"`
}

type seekCommand struct {
	Op       string `json:"op"`
	GuildID  string `json:"guildId"`
	Position int64  `json:"position"` // milliseconds
}

type equalizerCommand struct {
	Op      string     `json:"op"`
	GuildID string     `json:"guildId"`
	Bands   []BandGain `json:"bands"`
}

type voiceUpdateCommand struct {
	Op        string          `json:"op"`
	GuildID   string          `json:"guildId"`
	SessionID string          `json:"sessionId"`
	Event     json.RawMessage `json:"event"`
}

// message is the envelope for every inbound control-socket frame. Fields
// beyond Op are populated per operation; unknown operations are dropped.
type message struct {
	Op      string       `json:"op"`
	GuildID string       `json:"guildId"`
	Type    string       `json:"type"`
	Reason  string       `json:"reason"`
	State   *playerState `json:"state"`
}

type playerState struct {
	Time     float64  `json:"time"`     // server timestamp, unix ms
	Position *float64 `json:"position"` // track position, ms; absent when idle
}
