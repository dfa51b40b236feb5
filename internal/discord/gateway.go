package discord

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"waterlink/waterlink"

	"github.com/bwmarrin/discordgo"
)

// heartbeatGrace is how long a shard may go without a heartbeat ack before
// the adapter reports it as down.
const heartbeatGrace = 90 * time.Second

// GatewayAdapter exposes a set of sharded discordgo sessions through the
// waterlink.Gateway interface. Session i carries shard i.
type GatewayAdapter struct {
	sessions []*discordgo.Session
}

var _ waterlink.Gateway = (*GatewayAdapter)(nil)

func NewGatewayAdapter(sessions []*discordgo.Session) *GatewayAdapter {
	return &GatewayAdapter{sessions: sessions}
}

// Ready reports whether every shard has completed its initial handshake.
func (g *GatewayAdapter) Ready() bool {
	for _, s := range g.sessions {
		if s == nil || !s.DataReady {
			return false
		}
	}
	return len(g.sessions) > 0
}

func (g *GatewayAdapter) UserID() string {
	s := g.sessions[0]
	if s.State == nil || s.State.User == nil {
		return ""
	}
	return s.State.User.ID
}

func (g *GatewayAdapter) ShardCount() int { return len(g.sessions) }

// ShardOpen reports whether the shard's websocket looks alive: handshake
// done and a heartbeat ack seen recently enough.
func (g *GatewayAdapter) ShardOpen(shardID int) bool {
	if shardID < 0 || shardID >= len(g.sessions) {
		return false
	}
	s := g.sessions[shardID]
	if !s.DataReady {
		return false
	}
	return time.Since(s.LastHeartbeatAck) < heartbeatGrace
}

// VoiceSessionID returns the bot's voice session id in the guild, or ""
// when the state cache has no voice state for it yet.
func (g *GatewayAdapter) VoiceSessionID(guildID string) string {
	s, err := g.sessionFor(guildID)
	if err != nil {
		return ""
	}
	vs, err := s.State.VoiceState(guildID, g.UserID())
	if err != nil || vs == nil {
		return ""
	}
	return vs.SessionID
}

// UpdateVoiceState asks the guild's shard to join the given voice channel.
// An empty channel id disconnects.
func (g *GatewayAdapter) UpdateVoiceState(guildID, channelID string) error {
	s, err := g.sessionFor(guildID)
	if err != nil {
		return err
	}
	return s.ChannelVoiceJoinManual(guildID, channelID, false, true)
}

// Bind forwards every voice-server-update a shard receives into the node
// connection's voice bridge.
func (g *GatewayAdapter) Bind(conn *waterlink.Connection) {
	for _, s := range g.sessions {
		s.AddHandler(func(_ *discordgo.Session, evt *discordgo.VoiceServerUpdate) {
			raw, err := json.Marshal(evt)
			if err != nil {
				log.Printf("[Gateway] marshal voice-server-update: %v", err)
				return
			}
			if err := conn.HandleVoiceServerUpdate(evt.GuildID, raw); err != nil {
				log.Printf("[Gateway] voice bridge for guild %s: %v", evt.GuildID, err)
			}
		})
	}
}

func (g *GatewayAdapter) sessionFor(guildID string) (*discordgo.Session, error) {
	id, err := waterlink.ParseSnowflake(guildID)
	if err != nil {
		return nil, err
	}
	shard := int((id >> 22) % int64(len(g.sessions)))
	return g.sessions[shard], nil
}

func (g *GatewayAdapter) String() string {
	return fmt.Sprintf("<GatewayAdapter shards=%d ready=%t>", len(g.sessions), g.Ready())
}
