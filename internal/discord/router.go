package discord

import (
	"context"
	"fmt"

	"kasa_bridge/internal/logger"
	"kasa_bridge/internal/metrics"
	"kasa_bridge/internal/models"
	"kasa_bridge/internal/service"

	"github.com/bwmarrin/discordgo"
)

// ActionKind is the closed set of things a button can ask for.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionTurnOn
	ActionTurnOff
	ActionTurnOnTimed
)

// Action is a parsed button press. Minutes is set for ActionTurnOnTimed only.
type Action struct {
	Kind    ActionKind
	Minutes int
}

func (a Action) String() string {
	switch a.Kind {
	case ActionTurnOn:
		return "turn_on"
	case ActionTurnOff:
		return "turn_off"
	case ActionTurnOnTimed:
		return fmt.Sprintf("turn_on_%d", a.Minutes)
	default:
		return "unknown"
	}
}

// ParseAction maps a button custom ID to an Action.
func ParseAction(customID string) Action {
	switch customID {
	case ButtonOn:
		return Action{Kind: ActionTurnOn}
	case ButtonOff:
		return Action{Kind: ActionTurnOff}
	case ButtonOn15:
		return Action{Kind: ActionTurnOnTimed, Minutes: 15}
	case ButtonOn30:
		return Action{Kind: ActionTurnOnTimed, Minutes: 30}
	case ButtonOn60:
		return Action{Kind: ActionTurnOnTimed, Minutes: 60}
	default:
		return Action{Kind: ActionUnknown}
	}
}

// Replies shown to the user. Error detail never reaches Discord.
const (
	ReplyOn          = "Light turned on!"
	ReplyOnFailed    = "Failed to turn on light"
	ReplyOff         = "Light turned off!"
	ReplyOffFailed   = "Failed to turn off light"
	ReplyTimedFailed = "Failed to set timed light"
	ReplyUnknown     = "Unknown button"
)

// Router turns button presses into light transitions.
type Router struct {
	light service.Light
	log   *logger.Logger
}

func NewRouter(light service.Light, log *logger.Logger) *Router {
	if log == nil {
		log = logger.Nop()
	}
	return &Router{light: light, log: log}
}

// OnInteraction runs the action behind customID and returns the status text.
func (r *Router) OnInteraction(ctx context.Context, customID string) string {
	ctx = service.WithTrigger(ctx, models.TriggerInteraction)
	action := ParseAction(customID)

	var (
		reply string
		err   error
	)
	switch action.Kind {
	case ActionTurnOn:
		if err = r.light.TurnOnPlain(ctx); err != nil {
			r.log.Errorw("turn_on_failed", "err", err)
			reply = ReplyOnFailed
		} else {
			reply = ReplyOn
		}
	case ActionTurnOff:
		if err = r.light.TurnOff(ctx); err != nil {
			r.log.Errorw("turn_off_failed", "err", err)
			reply = ReplyOffFailed
		} else {
			reply = ReplyOff
		}
	case ActionTurnOnTimed:
		if err = r.light.TurnOnTimed(ctx, action.Minutes); err != nil {
			r.log.Errorw("timed_on_failed", "minutes", action.Minutes, "err", err)
			reply = ReplyTimedFailed
		} else {
			reply = fmt.Sprintf("Light turned on for %d minutes!", action.Minutes)
		}
	case ActionUnknown:
		r.log.Warnw("unknown_button", "custom_id", customID)
		return ReplyUnknown
	}
	metrics.ObserveInteraction(action.String(), err)
	return reply
}

// handle acknowledges a button press with a deferred ephemeral reply, runs
// the action and then fills the reply in. The ack goes out before any kasa
// command so slow device calls cannot outlive the interaction token.
func (r *Router) handle(ctx context.Context, gw Gateway, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionMessageComponent {
		return
	}
	customID := i.MessageComponentData().CustomID
	r.log.Infow("interaction_received", "custom_id", customID, "guild_id", i.GuildID, "user_id", interactionUserID(i))

	opt := discordgo.WithContext(ctx)
	acked := true
	err := gw.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}, opt)
	if err != nil {
		// the press still drives the light; only the reply is lost
		r.log.Errorw("interaction_ack_failed", "custom_id", customID, "err", err)
		acked = false
	}

	content := r.OnInteraction(ctx, customID)
	if !acked {
		return
	}

	if _, err := gw.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}, opt); err != nil {
		r.log.Errorw("interaction_respond_failed", "custom_id", customID, "err", err)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
