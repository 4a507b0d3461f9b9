package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
)

// Vault loads and lists the director's messages, most recent first.
func (a *App) Vault(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.vault.Load(ctx); err != nil {
		return err
	}

	messages := a.vault.Messages()
	if len(messages) == 0 {
		fmt.Fprintln(a.out, "Your vault is empty.")
		return nil
	}
	for i, m := range messages {
		fmt.Fprintf(a.out, "%2d. %s  %-5s  for %s\n", i+1, m.ScheduledAt.Format("2006-01-02"), m.MessageType, childName(m.Child))
	}
	return nil
}

// Show prints one message of the last listing, by its 1-based number.
func (a *App) Show(_ context.Context, arg string) error {
	messages := a.vault.Messages()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(messages) {
		fmt.Fprintf(a.out, "No message %q. Run 'vault' first.\n", arg)
		return fmt.Errorf("bad message number %q", arg)
	}

	m := messages[n-1]
	fmt.Fprintf(a.out, "Type:      %s\n", m.MessageType)
	fmt.Fprintf(a.out, "For:       %s\n", childName(m.Child))
	fmt.Fprintf(a.out, "Scheduled: %s\n", m.ScheduledAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "Created:   %s\n", m.CreatedAt.Format("2006-01-02 15:04"))
	if m.Content != nil && *m.Content != "" {
		fmt.Fprintf(a.out, "\n%s\n", *m.Content)
	}
	for _, media := range m.MessageMedia {
		fmt.Fprintf(a.out, "Media (%s): %s\n", media.MediaType, media.MediaURL)
	}
	return nil
}

func childName(c models.Child) string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Categories loads the category list and marks the current selection.
func (a *App) Categories(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.categories.Load(ctx); err != nil {
		return err
	}
	a.printCategories()
	return nil
}

func (a *App) printCategories() {
	selected := a.categories.Selected()
	for i, c := range a.categories.Categories() {
		mark := " "
		if slices.Contains(selected, c.ID) {
			mark = "x"
		}
		emoji := ""
		if c.Emoji != nil {
			emoji = *c.Emoji + " "
		}
		fmt.Fprintf(a.out, "[%s] %2d. %s%s\n", mark, i+1, emoji, c.Name)
	}
}

// Toggle flips each argument in the selection. An argument is a 1-based
// number from the last listing, or a category id.
func (a *App) Toggle(_ context.Context, args []string) error {
	categories := a.categories.Categories()
	for _, arg := range args {
		id := arg
		if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(categories) {
			id = categories[n-1].ID
		}
		a.categories.Toggle(id)
	}
	a.printCategories()
	return nil
}

func (a *App) SaveCategories(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.categories.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %d new categories (%d already chosen).\n", res.SavedCount, res.ExistingCount)
	return nil
}
