package discord

import (
	"context"
	"testing"

	"kasa_bridge/internal/logger"
	"kasa_bridge/internal/service"

	"github.com/bwmarrin/discordgo"
)

func TestReady_RebuildsEveryTimeHookRunsOnce(t *testing.T) {
	gw := newFakeGateway()
	surface := NewSurfaceManager(nil)
	hooks := 0
	b := &Bot{surface: surface, log: logger.Nop(), onReady: func(context.Context) { hooks++ }}

	r := &discordgo.Ready{
		User:   &discordgo.User{Username: "lamp-bot"},
		Guilds: []*discordgo.Guild{{ID: "g1"}, nil},
	}
	b.ready(context.Background(), gw, r)
	first, ok := surface.Current()
	if !ok {
		t.Fatalf("control channel not recorded after first ready")
	}

	// a resumed session delivers Ready again
	b.ready(context.Background(), gw, r)
	second, _ := surface.Current()

	if hooks != 1 {
		t.Fatalf("ready hook ran %d times, want 1", hooks)
	}
	if first == second {
		t.Fatalf("second ready should rebuild the channel")
	}
	if n := len(gw.named("g1", ControlChannelName)); n != 1 {
		t.Fatalf("expected a single control channel, got %d", n)
	}
}

func TestReady_NoGuilds(t *testing.T) {
	surface := NewSurfaceManager(nil)
	called := false
	b := &Bot{surface: surface, log: logger.Nop(), onReady: func(context.Context) { called = true }}

	b.ready(context.Background(), newFakeGateway(), &discordgo.Ready{})
	if _, ok := surface.Current(); ok {
		t.Fatalf("no control channel expected without guilds")
	}
	if !called {
		t.Fatalf("ready hook must still run")
	}
}

type ctxKey struct{}

type contextSpy struct {
	service.Light
	got any
}

func (s *contextSpy) TurnOff(ctx context.Context) error {
	s.got = ctx.Value(ctxKey{})
	return nil
}

func TestInteraction_UsesOpenContext(t *testing.T) {
	spy := &contextSpy{}
	b := &Bot{
		router: NewRouter(spy, nil),
		log:    logger.Nop(),
		ctx:    context.WithValue(context.Background(), ctxKey{}, "bot-ctx"),
	}

	gw := newFakeGateway()
	b.interaction(gw, componentInteraction(ButtonOff))

	if spy.got != "bot-ctx" {
		t.Fatalf("action ran under %v, want the bot context", spy.got)
	}
	if got := gw.reply(t); got != ReplyOff {
		t.Fatalf("unexpected reply %q", got)
	}
}
