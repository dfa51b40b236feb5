// Package music is the slash-command surface over the waterlink audio
// node client. Every command resolves the guild's player from the shared
// node connection carried in the slash context.
package music

import (
	"errors"

	"waterlink/internal/command"
	"waterlink/waterlink"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x9B59B6

var errNotInVoice = errors.New("caller is not in a voice channel")

func Register() {
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&PlayCommand{})))
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&PauseCommand{})))
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&ResumeCommand{})))
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&StopCommand{})))
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&VolumeCommand{})))
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&SeekCommand{})))
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&EqualizerCommand{})))
	command.Register(command.WithCommandLogger(command.WithGuildOnly(&NowCommand{})))
}

func slashOf(ctx interface{}) (*command.SlashContext, error) {
	slash, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil, errors.New("wrong context type")
	}
	return slash, nil
}

func respond(slash *command.SlashContext, content string) error {
	return slash.Session.InteractionRespond(slash.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func respondEmbed(slash *command.SlashContext, title, desc string) error {
	return slash.Session.InteractionRespond(slash.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       title,
				Description: desc,
				Color:       embedColor,
			}},
		},
	})
}

func guildPlayer(slash *command.SlashContext) (*waterlink.Player, error) {
	return slash.Conn.Player(slash.Event.GuildID)
}

// callerVoiceChannel finds the voice channel the invoking member currently
// sits in, from the session's state cache.
func callerVoiceChannel(slash *command.SlashContext) (int64, error) {
	vs, err := slash.Session.State.VoiceState(slash.Event.GuildID, slash.Event.Member.User.ID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		return 0, errNotInVoice
	}
	id, err := waterlink.ParseSnowflake(vs.ChannelID)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func optionString(event *discordgo.InteractionCreate, name string) string {
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func optionInt(event *discordgo.InteractionCreate, name string, fallback int64) int64 {
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.IntValue()
		}
	}
	return fallback
}
