package discord

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// fakeGateway keeps channels per guild in memory.
type fakeGateway struct {
	mu        sync.Mutex
	channels  map[string][]*discordgo.Channel
	nextID    int
	sent      map[string][]*discordgo.MessageSend
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit

	listErr    error
	deleteErr  map[string]error
	createErr  error
	sendErr    error
	respondErr error
	editErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		channels:  map[string][]*discordgo.Channel{},
		sent:      map[string][]*discordgo.MessageSend{},
		deleteErr: map[string]error{},
	}
}

func (f *fakeGateway) addChannel(guildID, name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("c%d", f.nextID)
	f.channels[guildID] = append(f.channels[guildID], &discordgo.Channel{ID: id, GuildID: guildID, Name: name})
	return id
}

func (f *fakeGateway) named(guildID, name string) []*discordgo.Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*discordgo.Channel
	for _, c := range f.channels[guildID] {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGateway) GuildChannels(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*discordgo.Channel(nil), f.channels[guildID]...), nil
}

func (f *fakeGateway) ChannelDelete(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[channelID]; err != nil {
		return nil, err
	}
	for g, list := range f.channels {
		for i, c := range list {
			if c.ID == channelID {
				f.channels[g] = append(list[:i:i], list[i+1:]...)
				return c, nil
			}
		}
	}
	return nil, errors.New("unknown channel")
}

func (f *fakeGateway) GuildChannelCreate(guildID, name string, ctype discordgo.ChannelType, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if ctype != discordgo.ChannelTypeGuildText {
		return nil, errors.New("unexpected channel type")
	}
	id := f.addChannel(guildID, name)
	return &discordgo.Channel{ID: id, GuildID: guildID, Name: name}, nil
}

func (f *fakeGateway) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent[channelID] = append(f.sent[channelID], data)
	return &discordgo.Message{ChannelID: channelID, Content: data.Content}, nil
}

func (f *fakeGateway) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return f.respondErr
}

func (f *fakeGateway) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.edits = append(f.edits, edit)
	content := ""
	if edit.Content != nil {
		content = *edit.Content
	}
	return &discordgo.Message{Content: content}, nil
}

// reply returns the single text the user ended up seeing.
func (f *fakeGateway) reply(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) != 1 || len(f.edits) != 1 {
		t.Fatalf("expected one ack and one edit, got %d acks and %d edits", len(f.responses), len(f.edits))
	}
	if f.edits[0].Content == nil {
		t.Fatal("edit carries no content")
	}
	return *f.edits[0].Content
}
