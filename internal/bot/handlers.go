package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/studytrack/internal/excel"
	"github.com/example/studytrack/internal/revision"
	"github.com/example/studytrack/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	var err error
	switch message.Command() {
	case "start", "help":
		err = b.handleHelp(message)
	case "stats":
		err = b.handleStats(message)
	case "subjects":
		err = b.handleSubjects(message)
	case "due":
		err = b.handleDue(message)
	case "revise":
		err = b.handleRevise(ctx, message)
	case "interval":
		err = b.handleInterval(ctx, message)
	case "delete":
		err = b.handleDelete(ctx, message)
	case "report":
		err = b.handleReport(message)
	case "refresh":
		err = b.handleRefresh(ctx, message)
	default:
		err = b.reply(message.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
	return err
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	help := strings.Join([]string{
		"I track your study analytics and revision schedule.",
		"",
		"/stats [7d|30d|90d|year|all] - hours, trend and consistency",
		"/subjects - hours per subject and per paper",
		"/due [search] - topics due for revision",
		"/revise <n> - mark topic n from the last /due list as revised",
		"/interval <n> <days> - change topic n's revision interval",
		"/delete <n> - remove topic n from the syllabus",
		"/report - export the full report as a spreadsheet",
		"/refresh - reload data from the store",
	}, "\n")
	return b.reply(message.Chat.ID, help)
}

func (b *Bot) handleStats(message *tgbotapi.Message) error {
	if arg := strings.TrimSpace(message.CommandArguments()); arg != "" {
		b.engine.SetRange(arg)
	}
	dash := b.engine.Dashboard()

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Study stats (%s)\n", dash.Range)
	fmt.Fprintf(&sb, "Total: %.1f h, daily average %.1f h\n", dash.TotalHours, dash.DailyAverage)
	fmt.Fprintf(&sb, "This week %.1f h vs last week %.1f h (%+.0f%%)\n",
		dash.Weekly.ThisWeekHours, dash.Weekly.LastWeekHours, dash.Weekly.ChangePercent)
	fmt.Fprintf(&sb, "Consistency: %d%% of the last 30 days\n", dash.ConsistencyScore)
	fmt.Fprintf(&sb, "Streak: %d day(s)\n", dash.CurrentStreak)
	if len(dash.PeakHours) > 0 {
		fmt.Fprintf(&sb, "Peak hour: %02d:00 (%.1f h)\n", dash.PeakHours[0].Hour, dash.PeakHours[0].Hours)
	}
	if dash.AverageAccuracy > 0 {
		fmt.Fprintf(&sb, "Average quiz accuracy: %d%%\n", dash.AverageAccuracy)
	}
	return b.reply(message.Chat.ID, sb.String())
}

func (b *Bot) handleSubjects(message *tgbotapi.Message) error {
	dash := b.engine.Dashboard()
	if len(dash.Subjects) == 0 && len(dash.Papers) == 0 {
		return b.reply(message.Chat.ID, "No study logs in the selected range yet.")
	}

	var sb strings.Builder
	sb.WriteString("📚 Hours by subject\n")
	for _, s := range dash.Subjects {
		fmt.Fprintf(&sb, "  %s: %.1f h\n", s.Subject, s.Hours)
	}
	if len(dash.Papers) > 0 {
		sb.WriteString("\nSyllabus progress\n")
		for _, p := range dash.Papers {
			fmt.Fprintf(&sb, "  %s: %d%% (%d/%d)\n", p.Name, p.ProgressPercent, p.CompletedNodeCount, p.TotalNodeCount)
		}
	}
	return b.reply(message.Chat.ID, sb.String())
}

func (b *Bot) handleDue(message *tgbotapi.Message) error {
	search := strings.TrimSpace(message.CommandArguments())
	groups := b.engine.Topics(revision.FilterDue, search)

	listed := []models.TopicWithStatus{}
	var sb strings.Builder
	sb.WriteString("⏰ Topics due for revision\n")
	for _, g := range groups {
		if len(listed) >= b.config.TopicListLimit {
			break
		}
		fmt.Fprintf(&sb, "%s:\n", g.Subject)
		for _, t := range g.Topics {
			if len(listed) >= b.config.TopicListLimit {
				break
			}
			listed = append(listed, t)
			fmt.Fprintf(&sb, "  %d. %s (every %d days)\n", len(listed), t.Title, t.RevisionInterval)
		}
	}

	b.mu.Lock()
	b.lastListed = listed
	b.mu.Unlock()

	if len(listed) == 0 {
		return b.reply(message.Chat.ID, "Nothing is due. 🎉")
	}
	sb.WriteString("\nUse /revise <n> once you've reviewed a topic.")
	return b.reply(message.Chat.ID, sb.String())
}

// listedTopic resolves a 1-based position from the last /due list.
func (b *Bot) listedTopic(arg string) (models.TopicWithStatus, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return models.TopicWithStatus{}, fmt.Errorf("%q is not a list number", arg)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 1 || n > len(b.lastListed) {
		return models.TopicWithStatus{}, fmt.Errorf("no topic %d in the last /due list", n)
	}
	return b.lastListed[n-1], nil
}

func (b *Bot) handleRevise(ctx context.Context, message *tgbotapi.Message) error {
	topic, err := b.listedTopic(strings.TrimSpace(message.CommandArguments()))
	if err != nil {
		return b.reply(message.Chat.ID, err.Error())
	}
	if err := b.engine.MarkRevised(ctx, topic.ID); err != nil {
		return b.reply(message.Chat.ID, "Could not save the change; your data is unchanged.")
	}
	return b.reply(message.Chat.ID, fmt.Sprintf("✅ %s marked as revised.", topic.Title))
}

func (b *Bot) handleInterval(ctx context.Context, message *tgbotapi.Message) error {
	args := strings.Fields(message.CommandArguments())
	if len(args) != 2 {
		return b.reply(message.Chat.ID, "Usage: /interval <n> <days>")
	}
	topic, err := b.listedTopic(args[0])
	if err != nil {
		return b.reply(message.Chat.ID, err.Error())
	}
	days, err := strconv.Atoi(args[1])
	if err != nil || days <= 0 {
		return b.reply(message.Chat.ID, "Days must be a positive number.")
	}
	if err := b.engine.SetInterval(ctx, topic.ID, days); err != nil {
		return b.reply(message.Chat.ID, "Could not save the change; your data is unchanged.")
	}
	return b.reply(message.Chat.ID, fmt.Sprintf("⏱ %s now repeats every %d days.", topic.Title, days))
}

func (b *Bot) handleDelete(ctx context.Context, message *tgbotapi.Message) error {
	topic, err := b.listedTopic(strings.TrimSpace(message.CommandArguments()))
	if err != nil {
		return b.reply(message.Chat.ID, err.Error())
	}
	if err := b.engine.DeleteTopic(ctx, topic.ID); err != nil {
		return b.reply(message.Chat.ID, "Could not save the change; your data is unchanged.")
	}
	return b.reply(message.Chat.ID, fmt.Sprintf("🗑 %s removed from the syllabus.", topic.Title))
}

func (b *Bot) handleReport(message *tgbotapi.Message) error {
	dash := b.engine.Dashboard()
	result, err := excel.ExportReport(b.config.ReportPath, dash)
	if err != nil {
		return b.reply(message.Chat.ID, "Failed to build the report.")
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FilePath(result.FilePath))
	doc.Caption = fmt.Sprintf("Study report (%d sheets, %d rows)", result.Sheets, result.Rows)
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send report: %v", err)
	}
	return nil
}

func (b *Bot) handleRefresh(ctx context.Context, message *tgbotapi.Message) error {
	if err := b.engine.Refresh(ctx); err != nil {
		return b.reply(message.Chat.ID, "Refresh failed; showing the previous data.")
	}
	return b.reply(message.Chat.ID, "🔄 Data reloaded.")
}
