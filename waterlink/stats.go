package waterlink

// Stats is the node's periodic statistics report. The connection keeps only
// the most recent report; there is no history.
type Stats struct {
	Players        int   `json:"players"`
	PlayingPlayers int   `json:"playingPlayers"`
	Uptime         int64 `json:"uptime"` // milliseconds

	Memory MemoryStats `json:"memory"`
	CPU    CPUStats    `json:"cpu"`

	FrameStats *FrameStats `json:"frameStats,omitempty"`
}

// MemoryStats mirrors the node JVM memory block, in bytes.
type MemoryStats struct {
	Free       int64 `json:"free"`
	Used       int64 `json:"used"`
	Allocated  int64 `json:"allocated"`
	Reservable int64 `json:"reservable"`
}

// CPUStats mirrors the node host CPU block.
type CPUStats struct {
	Cores        int     `json:"cores"`
	SystemLoad   float64 `json:"systemLoad"`
	LavalinkLoad float64 `json:"lavalinkLoad"`
}

// FrameStats is only present while at least one player is playing.
type FrameStats struct {
	Sent    int64 `json:"sent"`
	Nulled  int64 `json:"nulled"`
	Deficit int64 `json:"deficit"`
}
