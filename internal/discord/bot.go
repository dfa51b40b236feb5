package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"waterlink/internal/command"
	"waterlink/internal/command/music"
	"waterlink/internal/config"
	"waterlink/pkg/jobmgr"
	"waterlink/waterlink"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the sharded Discord sessions, the audio node connection, and the
// slash-command surface wired between them.
type Bot struct {
	cfg      *config.Config
	sessions []*discordgo.Session
	gw       *GatewayAdapter
	conn     *waterlink.Connection
	jobs     *jobmgr.Manager
}

// StartBot runs the bot until ctx is canceled.
func StartBot(ctx context.Context, cfg *config.Config) error {
	b := &Bot{cfg: cfg, jobs: jobmgr.New()}
	if err := b.run(ctx); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context) error {
	if err := b.openSessions(); err != nil {
		return err
	}
	defer b.closeSessions()

	b.gw = NewGatewayAdapter(b.sessions)
	b.conn = waterlink.New(b.gw)
	b.gw.Bind(b.conn)

	if !b.waitReady(time.Minute) {
		return fmt.Errorf("shards did not become ready in time")
	}

	music.Register()
	if err := b.registerCommands(); err != nil {
		return err
	}

	if err := b.jobs.Start("node-supervisor", func(jctx context.Context) error {
		return b.conn.Supervise(jctx, b.cfg.LavalinkPassword, b.cfg.LavalinkAddr, b.cfg.LavalinkRest)
	}); err != nil {
		return err
	}
	defer b.jobs.StopAll()

	log.Printf("[INFO] Bot is up with %d shard(s), node %s", len(b.sessions), b.cfg.LavalinkAddr)

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) openSessions() error {
	count := b.cfg.ShardCount
	for i := 0; i < count; i++ {
		dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates
		dg.ShardID = i
		dg.ShardCount = count
		dg.AddHandler(b.onReady)
		dg.AddHandler(b.onInteractionCreate)

		b.sessions = append(b.sessions, dg)
		if err := dg.Open(); err != nil {
			return fmt.Errorf("failed to open shard %d: %w", i, err)
		}
	}
	return nil
}

func (b *Bot) closeSessions() {
	for i, s := range b.sessions {
		if err := s.Close(); err != nil {
			log.Printf("[WARN] Closing shard %d: %v", i, err)
		}
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] Shard %d ready as %s (%d guilds)", s.ShardID, r.User.Username, len(r.Guilds))
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, event *discordgo.InteractionCreate) {
	if event.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := event.ApplicationCommandData().Name
	cmd, ok := command.Get(name)
	if !ok {
		return
	}

	slash := &command.SlashContext{Session: s, Event: event, Conn: b.conn}
	if err := cmd.Run(slash); err != nil {
		log.Printf("[ERR] Command %s: %v", name, err)
	}
}

// waitReady blocks until every shard finished its handshake, or the timeout
// passes.
func (b *Bot) waitReady(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if b.gw.Ready() {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
