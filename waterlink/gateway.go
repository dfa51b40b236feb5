package waterlink

// Gateway is the surface waterlink needs from the Discord session layer.
// The library never talks to Discord directly; the host wires an adapter
// (see internal/discord.GatewayAdapter) and forwards voice-server-update
// notifications into Connection.HandleVoiceServerUpdate.
type Gateway interface {
	// Ready reports whether the Discord side is fully connected and has
	// identified itself.
	Ready() bool

	// UserID returns the bot user's snowflake. Only valid once Ready.
	UserID() string

	// ShardCount returns the number of gateway shards.
	ShardCount() int

	// ShardOpen reports whether the given shard's gateway socket is usable.
	ShardOpen(shardID int) bool

	// VoiceSessionID returns the bot's current voice session id in the
	// given guild, or "" when there is none.
	VoiceSessionID(guildID string) string

	// UpdateVoiceState asks Discord to move the bot into the given voice
	// channel. An empty channelID disconnects.
	UpdateVoiceState(guildID, channelID string) error
}
