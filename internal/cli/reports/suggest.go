package reports

import (
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/insights"
)

// SuggestCmd prints hydration reminder suggestions based on the last week
// of water logs.
type SuggestCmd struct{}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	suggestions, err := insights.NewAnalyzer(ctx.Store).Analyze(ctx.OwnerID, ctx.Now())
	if err != nil {
		return err
	}

	if len(suggestions) == 0 {
		fmt.Println("No suggestions. Keep logging water to get tailored recommendations.")
		return nil
	}

	for _, s := range suggestions {
		switch s.Type {
		case insights.SuggestionAddReminder:
			fmt.Printf("• Add a water reminder (recurrence: %s)\n", s.Suggested)
		case insights.SuggestionTightenInterval:
			fmt.Printf("• Change reminder %s from %s to %s\n", s.ReminderID, s.Current, s.Suggested)
		case insights.SuggestionRelaxInterval:
			fmt.Printf("• Relax reminder %s from %s to %s\n", s.ReminderID, s.Current, s.Suggested)
		}
		fmt.Printf("  %s\n", s.Reason)
	}
	return nil
}
