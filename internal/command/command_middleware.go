package command

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

func WithGuildOnly(cmd Command) Command {
	return &wrappedCommand{
		Command: cmd,
		wrap: func(ctx interface{}) error {
			if v, ok := ctx.(*SlashContext); ok && v.Event.GuildID == "" {
				_ = v.Session.InteractionRespond(v.Event.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseChannelMessageWithSource,
					Data: &discordgo.InteractionResponseData{
						Content: "You must be in a guild to use this command.",
						Flags:   discordgo.MessageFlagsEphemeral,
					},
				})
				return nil
			}
			return cmd.Run(ctx)
		},
	}
}

func WithCommandLogger(cmd Command) Command {
	return &wrappedCommand{
		Command: cmd,
		wrap: func(ctx interface{}) error {
			start := time.Now()
			err := cmd.Run(ctx)
			if err != nil {
				log.Printf("[Command] %s failed after %s: %v", cmd.Name(), time.Since(start), err)
			} else {
				log.Printf("[Command] %s done in %s", cmd.Name(), time.Since(start))
			}
			return err
		},
	}
}

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	return w.wrap(ctx)
}

// SlashDefinition surfaces the wrapped command's slash definition so
// middleware does not hide it from registration.
func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if p, ok := w.Command.(SlashProvider); ok {
		return p.SlashDefinition()
	}
	return nil
}
