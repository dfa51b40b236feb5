package music

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"waterlink/waterlink"

	"github.com/bwmarrin/discordgo"
)

type PlayCommand struct{}

func (c *PlayCommand) Name() string        { return "music-play" }
func (c *PlayCommand) Description() string { return "Resolve a track on the node and play it" }
func (c *PlayCommand) Category() string    { return "🎵 Music" }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Link or search terms, e.g. ytsearch:never gonna give you up",
				Required:    true,
			},
		},
	}
}

func (c *PlayCommand) Run(ctx interface{}) error {
	slash, err := slashOf(ctx)
	if err != nil {
		return err
	}

	channelID, err := callerVoiceChannel(slash)
	if err != nil {
		if errors.Is(err, errNotInVoice) {
			return respond(slash, "Join a voice channel first.")
		}
		return err
	}

	query := optionString(slash.Event, "query")

	resolveCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tracks, err := slash.Conn.Query(resolveCtx, query,
		waterlink.WithRetryCount(2),
		waterlink.WithRetryDelay(time.Second))
	if err != nil {
		log.Printf("[Music] query %q failed: %v", query, err)
		return respond(slash, "The audio node could not resolve that query.")
	}
	if len(tracks) == 0 {
		return respond(slash, fmt.Sprintf("Nothing found for `%s`.", query))
	}
	track := tracks[0]

	p, err := guildPlayer(slash)
	if err != nil {
		return err
	}
	if p.ChannelID() != channelID {
		if err := p.Connect(channelID); err != nil {
			return err
		}
	}

	p.OnTrackEnd(func(p *waterlink.Player, reason string) {
		if reason != "FINISHED" {
			return
		}
		_, err := slash.Session.ChannelMessageSend(slash.Event.ChannelID,
			fmt.Sprintf("Finished playing **%s**.", track.Info.Title))
		if err != nil {
			log.Printf("[Music] track-end announce failed: %v", err)
		}
	})

	if err := p.Play(track); err != nil {
		return err
	}

	desc := fmt.Sprintf("🎶 [%s](%s)", track.Info.Title, track.Info.URI)
	return respondEmbed(slash, "▶️ Now Playing", desc)
}
