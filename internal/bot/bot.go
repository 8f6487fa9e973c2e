package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	scheduledomain "studysync-backend/internal/schedule/domain"
	scheduleUsecase "studysync-backend/internal/schedule/usecase"
	syncdomain "studysync-backend/internal/sync/domain"
	syncUsecase "studysync-backend/internal/sync/usecase"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord command layer: it dispatches slash commands into the
// schedule and sync usecases and renders replies. All blocking work (the
// Canvas sync especially) runs off the gateway handler goroutine so other
// interactions keep flowing.
type Bot struct {
	session    *discordgo.Session
	guildID    string
	scheduleUc scheduleUsecase.ScheduleUsecase
	syncUc     syncUsecase.SyncUsecase
}

func New(token, guildID string, scheduleUc scheduleUsecase.ScheduleUsecase, syncUc syncUsecase.SyncUsecase) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	b := &Bot{
		session:    session,
		guildID:    guildID,
		scheduleUc: scheduleUc,
		syncUc:     syncUc,
	}
	session.AddHandler(b.onInteraction)
	return b, nil
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Check if the bot is active",
	},
	{
		Name:        "plan",
		Description: "Turn natural language into a calendar event or task",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "What to schedule, e.g. \"dinner with Sam Friday 8pm\"",
				Required:    true,
			},
		},
	},
	{
		Name:        "sync",
		Description: "Sync Canvas assignments into Google Tasks",
	},
	{
		Name:        "done",
		Description: "Mark a task as completed by rough title",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "task",
				Description: "Roughly, the task title",
				Required:    true,
			},
		},
	},
}

// Start opens the gateway connection and registers the slash commands.
// Guild-scoped registration shows up instantly; global registration can take
// up to an hour to propagate.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	appID := b.session.State.User.ID
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	log.Printf("[Bot] Ready as %s, commands registered", b.session.State.User.Username)
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		log.Printf("[Bot] Error closing session: %v", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.onComponent(s, i)
	}
}

func (b *Bot) onCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "ping":
		respond(s, i, "Pong! Bot is active.")
	case "plan":
		b.handlePlan(s, i, data.Options[0].StringValue())
	case "sync":
		b.handleSync(s, i)
	case "done":
		b.handleDone(s, i, data.Options[0].StringValue())
	default:
		respond(s, i, "Unknown command.")
	}
}

// handlePlan stages a parsed item and shows it with confirm/cancel buttons.
func (b *Bot) handlePlan(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	deferReply(s, i)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		action, err := b.scheduleUc.StageItem(ctx, callerID(i), text)
		if err != nil {
			editReply(s, i, fmt.Sprintf("Could not understand that: %v", err))
			return
		}

		embed := itemEmbed(&action.Item)
		components := []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Confirm",
						Style:    discordgo.SuccessButton,
						CustomID: "confirm:" + action.ID,
					},
					discordgo.Button{
						Label:    "Cancel",
						Style:    discordgo.DangerButton,
						CustomID: "cancel:" + action.ID,
					},
				},
			},
		}

		content := "Does this look right?"
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content:    &content,
			Embeds:     &[]*discordgo.MessageEmbed{embed},
			Components: &components,
		}); err != nil {
			log.Printf("[Bot] Failed to edit reply: %v", err)
		}
	}()
}

// handleSync runs the reconciliation off the handler goroutine and reports
// the four counters when it finishes.
func (b *Bot) handleSync(s *discordgo.Session, i *discordgo.InteractionCreate) {
	deferReply(s, i)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		summary, err := b.syncUc.SyncAssignments(ctx)
		if errors.Is(err, syncdomain.ErrSyncInProgress) {
			editReply(s, i, "A sync is already running, try again in a bit.")
			return
		}
		if err != nil {
			editReply(s, i, fmt.Sprintf("Sync failed: %v", err))
			return
		}

		embed := summaryEmbed(summary)
		content := "Canvas sync finished."
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &content,
			Embeds:  &[]*discordgo.MessageEmbed{embed},
		}); err != nil {
			log.Printf("[Bot] Failed to edit reply: %v", err)
		}
	}()
}

func (b *Bot) handleDone(s *discordgo.Session, i *discordgo.InteractionCreate, query string) {
	deferReply(s, i)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		title, err := b.scheduleUc.CompleteTaskByTitle(ctx, query)
		if err != nil {
			editReply(s, i, fmt.Sprintf("Could not complete a task: %v", err))
			return
		}
		editReply(s, i, fmt.Sprintf("Marked **%s** as completed.", title))
	}()
}

// onComponent resolves the confirm/cancel buttons of a staged action.
func (b *Bot) onComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	verb, actionID, ok := strings.Cut(customID, ":")
	if !ok {
		return
	}

	switch verb {
	case "confirm":
		deferUpdate(s, i)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			result, err := b.scheduleUc.Confirm(ctx, callerID(i), actionID)
			if err != nil {
				editComponentReply(s, i, confirmErrorMessage(err))
				return
			}
			if strings.HasPrefix(result, "http") {
				editComponentReply(s, i, "Event created: "+result)
			} else {
				editComponentReply(s, i, "Task created.")
			}
		}()

	case "cancel":
		if err := b.scheduleUc.Cancel(callerID(i), actionID); err != nil {
			respond(s, i, confirmErrorMessage(err))
			return
		}
		respond(s, i, "Action cancelled.")
	}
}

func confirmErrorMessage(err error) string {
	switch err {
	case scheduledomain.ErrPendingNotFound:
		return "That action is no longer pending."
	case scheduledomain.ErrPendingExpired:
		return "That confirmation expired. Run the command again."
	case scheduledomain.ErrNotOwner:
		return "Only the user who asked can confirm this."
	default:
		return fmt.Sprintf("Failed: %v", err)
	}
}

// callerID returns the invoking user's id for guild and DM interactions.
func callerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("[Bot] Failed to respond: %v", err)
	}
}

func deferReply(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("[Bot] Failed to defer: %v", err)
	}
}

func deferUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("[Bot] Failed to defer update: %v", err)
	}
}

func editReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		log.Printf("[Bot] Failed to edit reply: %v", err)
	}
}

// editComponentReply replaces the confirm/cancel message with the outcome and
// strips the buttons so they cannot be pressed twice.
func editComponentReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	empty := []discordgo.MessageComponent{}
	noEmbeds := []*discordgo.MessageEmbed{}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &noEmbeds,
		Components: &empty,
	}); err != nil {
		log.Printf("[Bot] Failed to edit component reply: %v", err)
	}
}
