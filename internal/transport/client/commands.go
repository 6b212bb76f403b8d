package client

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"eventshare/internal/domain"
	"eventshare/internal/ics"
)

// Commands provides command-line operations for the client
type Commands struct {
	client *Client
}

// NewCommands creates a new Commands instance
func NewCommands(client *Client) *Commands {
	return &Commands{
		client: client,
	}
}

// Share fetches the share text and displays it with its metadata
func (c *Commands) Share(ctx context.Context) error {
	result, err := c.client.GenerateShare(ctx)
	if err != nil {
		return err
	}

	fmt.Println(result.ShareText)
	fmt.Println()
	fmt.Printf("Included Events: %d\n", result.IncludedEventCount)
	fmt.Printf("Length: %d characters\n", utf8.RuneCountInString(result.ShareText))
	if result.WasTruncated {
		fmt.Println("Some events were dropped to fit the character limit")
	}

	return nil
}

// GetConfig displays the active share configuration
func (c *Commands) GetConfig(ctx context.Context) error {
	cfg, err := c.client.GetShareConfig(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Share Configuration:\n")
	printConfig(*cfg)
	return nil
}

// SetConfig updates the share configuration. Empty url and message keep the
// current values; hashtags replace the current list only when hashtagsSet is
// true, so an empty list clears them.
func (c *Commands) SetConfig(ctx context.Context, url, message string, hashtags []string, hashtagsSet bool) error {
	current, err := c.client.GetShareConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current config: %w", err)
	}

	cfg := *current
	if url != "" {
		cfg.DestinationURL = url
	}
	if message != "" {
		cfg.BaseMessage = message
	}
	if hashtagsSet {
		cfg.Hashtags = hashtags
	}

	updated, err := c.client.UpdateShareConfig(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Share configuration updated:\n")
	printConfig(*updated)
	return nil
}

func printConfig(cfg domain.ShareConfig) {
	fmt.Printf("Destination URL: %s\n", cfg.DestinationURL)
	if len(cfg.Hashtags) > 0 {
		fmt.Printf("Hashtags: %s\n", strings.Join(cfg.Hashtags, " "))
	} else {
		fmt.Printf("Hashtags: (none)\n")
	}
	fmt.Printf("Base Message: %s\n", cfg.BaseMessage)
}

// AddEvent registers a new event and displays the result
func (c *Commands) AddEvent(ctx context.Context, request domain.CreateEventRequest) error {
	event, err := c.client.CreateEvent(ctx, request)
	if err != nil {
		return err
	}

	fmt.Printf("Event created:\n")
	fmt.Printf("ID: %s\n", event.ID)
	fmt.Printf("Title: %s\n", event.Title)
	fmt.Printf("Start: %s\n", event.StartDate.Format("2006-01-02 15:04"))
	fmt.Printf("End: %s\n", event.EndDate.Format("2006-01-02 15:04"))
	fmt.Printf("Status: %s\n", event.Status)
	if event.Link != "" {
		fmt.Printf("Link: %s\n", event.Link)
	}

	return nil
}

// ListEvents displays all events in a table format
func (c *Commands) ListEvents(ctx context.Context) error {
	events, err := c.client.ListEvents(ctx)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events found")
		return nil
	}

	fmt.Printf("%-36s %-25s %-17s %-9s %s\n", "ID", "Title", "Start", "Status", "Link")
	fmt.Println(strings.Repeat("-", 100))

	for _, event := range events {
		title := event.Title
		if utf8.RuneCountInString(title) > 25 {
			title = string([]rune(title)[:22]) + "..."
		}

		fmt.Printf("%-36s %-25s %-17s %-9s %s\n",
			event.ID,
			title,
			event.StartDate.Format("2006-01-02 15:04"),
			event.Status,
			event.Link,
		)
	}

	return nil
}

// Approve marks an event as approved
func (c *Commands) Approve(ctx context.Context, id string) error {
	err := c.client.UpdateEventStatus(ctx, id, "approved")
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Event '%s' not found\n", id)
			return nil
		}
		return err
	}

	fmt.Printf("Event '%s' approved\n", id)
	return nil
}

// Reject marks an event as rejected
func (c *Commands) Reject(ctx context.Context, id string) error {
	err := c.client.UpdateEventStatus(ctx, id, "rejected")
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Event '%s' not found\n", id)
			return nil
		}
		return err
	}

	fmt.Printf("Event '%s' rejected\n", id)
	return nil
}

// DeleteEvent removes an event
func (c *Commands) DeleteEvent(ctx context.Context, id string) error {
	err := c.client.DeleteEvent(ctx, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Event '%s' not found\n", id)
			return nil
		}
		return err
	}

	fmt.Printf("Event '%s' deleted\n", id)
	return nil
}

// ImportEvents reads events from an iCalendar file and registers them,
// skipping ids the server already knows. With approve set, imported events
// are created as approved instead of pending.
func (c *Commands) ImportEvents(ctx context.Context, path string, approve bool) error {
	events, err := ics.ParseFile(path)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events found in calendar")
		return nil
	}

	status := ""
	if approve {
		status = "approved"
	}

	imported := 0
	skipped := 0
	for _, event := range events {
		request := domain.CreateEventRequest{
			ID:        event.ID,
			Title:     event.Title,
			StartDate: event.StartDate,
			EndDate:   event.EndDate,
			Link:      event.Link,
			Status:    status,
		}

		if _, err := c.client.CreateEvent(ctx, request); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				skipped++
				continue
			}
			return fmt.Errorf("failed to import '%s': %w", event.Title, err)
		}
		imported++
	}

	fmt.Printf("Imported %d events (%d skipped)\n", imported, skipped)
	return nil
}
