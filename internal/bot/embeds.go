package bot

import (
	"fmt"
	"strings"

	syncdomain "studysync-backend/internal/sync/domain"
	"studysync-backend/pkg/ai"

	"github.com/bwmarrin/discordgo"
)

const (
	colorGreen  = 0x2ecc71
	colorBlue   = 0x3498db
	colorOrange = 0xe67e22
)

// itemEmbed renders a staged item for the confirm step.
func itemEmbed(item *ai.ParsedItem) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: item.Title,
		Color: colorBlue,
	}

	if item.Type == ai.ItemTypeEvent {
		embed.Description = "Calendar event"
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Starts", Value: item.StartTime, Inline: true},
			&discordgo.MessageEmbedField{Name: "Ends", Value: item.EndTime, Inline: true},
		)
		if item.Location != "" {
			embed.Fields = append(embed.Fields,
				&discordgo.MessageEmbedField{Name: "Location", Value: item.Location, Inline: true})
		}
	} else {
		embed.Description = "Task"
		embed.Color = colorGreen
		if item.DueDate != "" {
			embed.Fields = append(embed.Fields,
				&discordgo.MessageEmbedField{Name: "Due", Value: item.DueDate, Inline: true})
		}
	}

	if item.Notes != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Notes", Value: item.Notes})
	}
	if len(item.Assumptions) > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Assumed: " + strings.Join(item.Assumptions, "; "),
		}
	}
	return embed
}

// summaryEmbed renders the four counters of a finished sync run.
func summaryEmbed(summary *syncdomain.SyncSummary) *discordgo.MessageEmbed {
	color := colorGreen
	if summary.Errors > 0 {
		color = colorOrange
	}
	return &discordgo.MessageEmbed{
		Title: "Canvas → Google Tasks",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Created", Value: fmt.Sprintf("%d", summary.Created), Inline: true},
			{Name: "Updated", Value: fmt.Sprintf("%d", summary.Updated), Inline: true},
			{Name: "Skipped", Value: fmt.Sprintf("%d", summary.Skipped), Inline: true},
			{Name: "Errors", Value: fmt.Sprintf("%d", summary.Errors), Inline: true},
		},
	}
}
