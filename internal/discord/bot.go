package discord

import (
	"context"
	"fmt"
	"sync"

	"kasa_bridge/internal/logger"

	"github.com/bwmarrin/discordgo"
)

const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// Bot owns the gateway session. On every Ready it rebuilds the control
// surface; the ready hook runs only after the first one.
type Bot struct {
	session *discordgo.Session
	surface *SurfaceManager
	router  *Router
	onReady func(ctx context.Context)
	log     *logger.Logger

	readyOnce sync.Once
	mu        sync.Mutex
	ctx       context.Context
}

func NewBot(token string, surface *SurfaceManager, router *Router, onReady func(ctx context.Context), log *logger.Logger) (*Bot, error) {
	if log == nil {
		log = logger.Nop()
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = intents

	b := &Bot{
		session: s,
		surface: surface,
		router:  router,
		onReady: onReady,
		log:     log,
		ctx:     context.Background(),
	}
	s.AddHandler(b.handleReady)
	s.AddHandler(b.handleInteraction)
	return b, nil
}

// Open connects to the gateway. ctx bounds work started from gateway events.
func (b *Bot) Open(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) context() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.ready(b.context(), s, r)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.interaction(s, i)
}

// interaction runs button presses under the context given to Open.
func (b *Bot) interaction(gw Gateway, i *discordgo.InteractionCreate) {
	b.router.handle(b.context(), gw, i)
}

func (b *Bot) ready(ctx context.Context, gw Gateway, r *discordgo.Ready) {
	name := ""
	if r.User != nil {
		name = r.User.Username
	}
	b.log.Infow("gateway_connected", "user", name, "guilds", len(r.Guilds))

	ids := make([]string, 0, len(r.Guilds))
	for _, g := range r.Guilds {
		if g != nil {
			ids = append(ids, g.ID)
		}
	}
	b.surface.Rebuild(ctx, gw, ids)

	if b.onReady != nil {
		b.readyOnce.Do(func() { b.onReady(ctx) })
	}
}
