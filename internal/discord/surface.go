package discord

import (
	"context"
	"sync"

	"kasa_bridge/internal/logger"

	"github.com/bwmarrin/discordgo"
)

// ControlChannelName is the fixed name of the control surface channel.
const ControlChannelName = "light-controls"

// Button custom IDs rendered on the control surface.
const (
	ButtonOn   = "light_on"
	ButtonOff  = "light_off"
	ButtonOn15 = "light_on_15"
	ButtonOn30 = "light_on_30"
	ButtonOn60 = "light_on_60"
)

// SurfaceManager owns the reference to the active control channel.
// The lock is only held for the assignment or read, never across a gateway call.
type SurfaceManager struct {
	mu        sync.RWMutex
	channelID string

	log *logger.Logger
}

func NewSurfaceManager(log *logger.Logger) *SurfaceManager {
	if log == nil {
		log = logger.Nop()
	}
	return &SurfaceManager{log: log}
}

// Current returns the active control channel, if one was created.
func (m *SurfaceManager) Current() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.channelID, m.channelID != ""
}

func (m *SurfaceManager) set(channelID string) {
	m.mu.Lock()
	m.channelID = channelID
	m.mu.Unlock()
}

// Rebuild deletes stale control channels and creates a fresh one in every
// guild. Failures are logged; the rest of the service keeps running.
func (m *SurfaceManager) Rebuild(ctx context.Context, gw Gateway, guildIDs []string) {
	for _, guildID := range guildIDs {
		m.rebuildGuild(ctx, gw, guildID)
	}
}

func (m *SurfaceManager) rebuildGuild(ctx context.Context, gw Gateway, guildID string) {
	opt := discordgo.WithContext(ctx)

	channels, err := gw.GuildChannels(guildID, opt)
	if err != nil {
		m.log.Errorw("list_channels_failed", "guild_id", guildID, "err", err)
	}
	for _, ch := range channels {
		if ch == nil || ch.Name != ControlChannelName {
			continue
		}
		if _, err := gw.ChannelDelete(ch.ID, opt); err != nil {
			m.log.Errorw("delete_control_channel_failed", "guild_id", guildID, "channel_id", ch.ID, "err", err)
			continue
		}
		m.log.Infow("control_channel_deleted", "guild_id", guildID, "channel_id", ch.ID)
	}

	ch, err := gw.GuildChannelCreate(guildID, ControlChannelName, discordgo.ChannelTypeGuildText, opt)
	if err != nil {
		m.log.Errorw("create_control_channel_failed", "guild_id", guildID, "err", err)
		return
	}
	m.set(ch.ID)
	m.log.Infow("control_channel_created", "guild_id", guildID, "channel_id", ch.ID)

	if _, err := gw.ChannelMessageSendComplex(ch.ID, ControlMessage(), opt); err != nil {
		m.log.Errorw("send_control_message_failed", "channel_id", ch.ID, "err", err)
	}
}

// ControlMessage renders the on/off row and the timed shortcuts row.
func ControlMessage() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: "Light Controls",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{CustomID: ButtonOn, Label: "Turn On", Style: discordgo.SuccessButton},
					discordgo.Button{CustomID: ButtonOff, Label: "Turn Off", Style: discordgo.DangerButton},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{CustomID: ButtonOn15, Label: "15 min", Style: discordgo.SecondaryButton},
					discordgo.Button{CustomID: ButtonOn30, Label: "30 min", Style: discordgo.SecondaryButton},
					discordgo.Button{CustomID: ButtonOn60, Label: "60 min", Style: discordgo.SecondaryButton},
				},
			},
		},
	}
}
