package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Commands renders client results for the command line
type Commands struct {
	client *Client
	out    io.Writer
}

func NewCommands(client *Client, out io.Writer) *Commands {
	return &Commands{
		client: client,
		out:    out,
	}
}

func (c *Commands) Shorten(ctx context.Context, originalURL, customCode string) error {
	result, err := c.client.Shorten(ctx, originalURL, customCode)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Short Code:   %s\n", result.ShortCode)
	fmt.Fprintf(c.out, "Short URL:    %s\n", result.ShortURL)
	fmt.Fprintf(c.out, "Original URL: %s\n", result.OriginalURL)
	return nil
}

func (c *Commands) Get(ctx context.Context, shortCode string) error {
	link, err := c.client.GetLink(ctx, shortCode)
	if err != nil {
		return notFoundAsMessage(c.out, shortCode, err)
	}

	fmt.Fprintf(c.out, "Short Code:   %s\n", link.ShortCode)
	fmt.Fprintf(c.out, "Original URL: %s\n", link.OriginalURL)
	fmt.Fprintf(c.out, "Clicks:       %d\n", link.ClickCount)
	fmt.Fprintf(c.out, "Created At:   %s\n", link.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (c *Commands) Delete(ctx context.Context, shortCode string) error {
	if err := c.client.DeleteLink(ctx, shortCode); err != nil {
		return notFoundAsMessage(c.out, shortCode, err)
	}

	fmt.Fprintf(c.out, "Short link '%s' deleted\n", shortCode)
	return nil
}

// List prints every link in a table
func (c *Commands) List(ctx context.Context) error {
	links, err := c.client.ListLinks(ctx)
	if err != nil {
		return err
	}

	if len(links) == 0 {
		fmt.Fprintln(c.out, "No links found")
		return nil
	}

	fmt.Fprintf(c.out, "%-12s %-50s %-20s %s\n", "Short Code", "Original URL", "Created At", "Clicks")
	fmt.Fprintln(c.out, strings.Repeat("-", 92))

	for _, link := range links {
		originalURL := link.OriginalURL
		if len(originalURL) > 50 {
			originalURL = originalURL[:47] + "..."
		}

		fmt.Fprintf(c.out, "%-12s %-50s %-20s %d\n",
			link.ShortCode,
			originalURL,
			link.CreatedAt.Format("2006-01-02 15:04:05"),
			link.ClickCount,
		)
	}
	return nil
}

func (c *Commands) Stats(ctx context.Context) error {
	stats, err := c.client.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Total Links:  %d\n", stats.TotalLinks)
	fmt.Fprintf(c.out, "Total Clicks: %d\n", stats.TotalClicks)
	return nil
}

func notFoundAsMessage(out io.Writer, shortCode string, err error) error {
	if errors.Is(err, ErrNotFound) {
		fmt.Fprintf(out, "Short code '%s' not found\n", shortCode)
		return nil
	}
	return err
}
