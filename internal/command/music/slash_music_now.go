package music

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

type NowCommand struct{}

func (c *NowCommand) Name() string        { return "music-now" }
func (c *NowCommand) Description() string { return "Show the current track and position" }
func (c *NowCommand) Category() string    { return "🎵 Music" }

func (c *NowCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *NowCommand) Run(ctx interface{}) error {
	slash, err := slashOf(ctx)
	if err != nil {
		return err
	}
	p, err := guildPlayer(slash)
	if err != nil {
		return err
	}

	track := p.Track()
	if track == nil {
		return respond(slash, "Nothing is playing.")
	}

	desc := fmt.Sprintf("🎶 [%s](%s) by %s", track.Info.Title, track.Info.URI, track.Info.Author)
	if pos, ok := p.Position(); ok {
		elapsed := time.Duration(pos * float64(time.Second)).Round(time.Second)
		total := time.Duration(track.Info.Length) * time.Millisecond
		desc += fmt.Sprintf("\n`%s / %s`", elapsed, total.Round(time.Second))
	}
	if p.Paused() {
		desc += "\n⏸️ Paused"
	}

	return respondEmbed(slash, "🎧 Now Playing", desc)
}
