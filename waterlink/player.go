package waterlink

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Volume bounds accepted by the node.
const (
	MinVolume = 0
	MaxVolume = 150

	defaultVolume = 100
)

// TrackEndHandler is called when the node reports that a player's track
// finished. reason is the node's end reason ("FINISHED", "REPLACED",
// "STOPPED", ...). The handler runs on the event dispatch goroutine for
// that frame, after the player's state has already been reset.
type TrackEndHandler func(p *Player, reason string)

// Player is the per-guild playback state machine. Players are created
// lazily by Connection.Player and live for the lifetime of the Connection;
// all methods are safe for concurrent use.
//
// A player moves through Idle -> Connecting -> Connected. The
// Connecting -> Connected edge is driven externally: it completes when the
// host forwards the guild's voice-server-update notification into
// Connection.HandleVoiceServerUpdate.
type Player struct {
	conn    *Connection
	guildID int64

	mu          sync.Mutex
	channelID   int64
	connecting  bool
	paused      bool
	playing     bool
	position    float64 // seconds
	hasPosition bool
	volume      int
	track       *Track
	gains       [NumBands]float64
	onTrackEnd  TrackEndHandler
}

func newPlayer(conn *Connection, guildID int64) *Player {
	return &Player{
		conn:    conn,
		guildID: guildID,
		volume:  defaultVolume,
	}
}

// GuildID returns the guild this player belongs to.
func (p *Player) GuildID() int64 { return p.guildID }

// ChannelID returns the voice channel the player is connected to, or 0.
func (p *Player) ChannelID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channelID
}

// Connected reports whether the player is attached to a voice channel.
func (p *Player) Connected() bool {
	return p.ChannelID() != 0
}

// Paused reports the player's paused state.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Playing reports whether the player is audibly playing. A paused player
// reports false even though a track is loaded.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing && !p.paused
}

// Stopped reports whether the player is neither playing nor paused.
func (p *Player) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.playing && !p.paused
}

// Position returns the current track position in seconds, estimated from
// the node's last report plus the local clock drift since that report. ok
// is false before the first report and after a track ends.
func (p *Player) Position() (pos float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position, p.hasPosition
}

// Volume returns the player's volume, always within [MinVolume, MaxVolume].
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Track returns the currently loaded track, or nil.
func (p *Player) Track() *Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// Gains returns a copy of the player's equalizer table.
func (p *Player) Gains() [NumBands]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gains
}

// OnTrackEnd registers the handler invoked on track completion. Passing nil
// removes the handler.
func (p *Player) OnTrackEnd(h TrackEndHandler) {
	p.mu.Lock()
	p.onTrackEnd = h
	p.mu.Unlock()
}

// Connect asks Discord to move the bot into the given voice channel and
// optimistically records the channel. Playback only becomes possible once
// the guild's voice-server-update arrives and the voiceUpdate bridge fires.
func (p *Player) Connect(channelID int64) error {
	p.mu.Lock()
	p.connecting = true
	p.mu.Unlock()

	gid := strconv.FormatInt(p.guildID, 10)
	if err := p.conn.gateway().UpdateVoiceState(gid, strconv.FormatInt(channelID, 10)); err != nil {
		p.mu.Lock()
		p.connecting = false
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.channelID = channelID
	p.mu.Unlock()
	return nil
}

// Disconnect clears the bot's voice state in this guild. It does not stop
// node-side playback; call Stop for that.
func (p *Player) Disconnect() error {
	gid := strconv.FormatInt(p.guildID, 10)
	if err := p.conn.gateway().UpdateVoiceState(gid, ""); err != nil {
		return err
	}
	p.mu.Lock()
	p.channelID = 0
	p.mu.Unlock()
	return nil
}

// Play starts the given track from the beginning, replacing whatever is
// currently playing.
func (p *Player) Play(track Track) error {
	return p.PlayFrom(track, 0, 0)
}

// PlayFrom plays a slice of a track. start and end are in seconds; an end
// of zero or less plays to the track's natural end.
func (p *Player) PlayFrom(track Track, start, end float64) error {
	cmd := playCommand{
		Op:        "play",
		GuildID:   strconv.FormatInt(p.guildID, 10),
		Track:     track.ID,
		StartTime: int64(start * 1000),
	}
	if end > 0 {
		ms := int64(end * 1000)
		cmd.EndTime = &ms
	}
	if err := p.conn.send(cmd); err != nil {
		return err
	}

	p.mu.Lock()
	p.playing = true
	p.track = &track
	p.mu.Unlock()
	return nil
}

// SetPause sets the pause state. Requesting the state the player is already
// in is a no-op and sends nothing.
func (p *Player) SetPause(paused bool) error {
	p.mu.Lock()
	if p.paused == paused {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	cmd := pauseCommand{Op: "pause", GuildID: strconv.FormatInt(p.guildID, 10), Pause: paused}
	if err := p.conn.send(cmd); err != nil {
		return err
	}

	p.mu.Lock()
	p.paused = paused
	p.mu.Unlock()
	return nil
}

// SetVolume sets the player volume. Out-of-range values are clamped to
// [MinVolume, MaxVolume], and the clamped value is both sent and stored.
func (p *Player) SetVolume(volume int) error {
	if volume < MinVolume {
		volume = MinVolume
	}
	if volume > MaxVolume {
		volume = MaxVolume
	}

	cmd := volumeCommand{Op: "volume", GuildID: strconv.FormatInt(p.guildID, 10), Volume: volume}
	if err := p.conn.send(cmd); err != nil {
		return err
	}

	p.mu.Lock()
	p.volume = volume
	p.mu.Unlock()
	return nil
}

// Stop stops node-side playback. The loaded track and position are left in
// place; the node's TrackEndEvent clears them.
func (p *Player) Stop() error {
	cmd := stopCommand{Op: "stop", GuildID: strconv.FormatInt(p.guildID, 10)}
	if err := p.conn.send(cmd); err != nil {
		return err
	}

	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
	return nil
}

// Seek jumps to the given position in seconds. The local position estimate
// is not touched; the node's next playerUpdate refreshes it.
func (p *Player) Seek(position float64) error {
	cmd := seekCommand{
		Op:       "seek",
		GuildID:  strconv.FormatInt(p.guildID, 10),
		Position: int64(position * 1000),
	}
	return p.conn.send(cmd)
}

// SetGain adjusts a single equalizer band. Equivalent to SetGains with one
// entry.
func (p *Player) SetGain(band int, gain float64) error {
	return p.SetGains(BandGain{Band: band, Gain: gain})
}

// SetGains applies a batch of equalizer adjustments in one command. Entries
// with a band outside [0, NumBands) are silently skipped; gains are clamped
// to [MinGain, MaxGain]. The local gain table is updated per accepted entry
// before the batch is sent.
func (p *Player) SetGains(gains ...BandGain) error {
	accepted := make([]BandGain, 0, len(gains))

	p.mu.Lock()
	for _, g := range gains {
		if g.Band < 0 || g.Band >= NumBands {
			continue
		}
		g.Gain = clampGain(g.Gain)
		p.gains[g.Band] = g.Gain
		accepted = append(accepted, g)
	}
	p.mu.Unlock()

	cmd := equalizerCommand{
		Op:      "equalizer",
		GuildID: strconv.FormatInt(p.guildID, 10),
		Bands:   accepted,
	}
	return p.conn.send(cmd)
}

// ResetEqualizer returns every band to a gain of zero.
func (p *Player) ResetEqualizer() error {
	gains := make([]BandGain, NumBands)
	for i := range gains {
		gains[i] = BandGain{Band: i}
	}
	return p.SetGains(gains...)
}

// Query resolves a search query through the connection's REST resolver.
func (p *Player) Query(ctx context.Context, identifier string, opts ...QueryOption) ([]Track, error) {
	return p.conn.Query(ctx, identifier, opts...)
}

// clearConnecting consumes the pending-connect flag. It reports whether the
// player was actually waiting for a voice-server-update, so stale or
// unsolicited notifications are ignored.
func (p *Player) clearConnecting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connecting {
		return false
	}
	p.connecting = false
	return true
}

// updatePosition folds a node position report into the local estimate,
// compensating for transport lag with the local clock.
func (p *Player) updatePosition(positionMS float64, serverTimeMS float64) {
	now := float64(time.Now().UnixMilli()) / 1000

	p.mu.Lock()
	p.position = positionMS/1000 + (now - serverTimeMS/1000)
	p.hasPosition = true
	p.mu.Unlock()
}

// handleEvent processes one node event frame addressed to this guild. Only
// TrackEndEvent mutates state; everything else is ignored.
func (p *Player) handleEvent(msg message) {
	if msg.Op != "event" || msg.Type != "TrackEndEvent" {
		return
	}

	p.mu.Lock()
	p.playing = false
	p.hasPosition = false
	p.position = 0
	p.track = nil
	handler := p.onTrackEnd
	p.mu.Unlock()

	if handler != nil {
		handler(p, msg.Reason)
	}
}
