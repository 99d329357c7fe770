package notifier

import (
	"context"
	"html"
	"log"
	"strings"
)

// Notifier delivers rendered messages to the presentation surface.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// LogNotifier writes messages to the process log, used when Telegram is not configured.
// A nil Logger writes to the standard logger.
type LogNotifier struct {
	Logger *log.Logger
}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Send(_ context.Context, text string) error {
	printf := log.Printf
	if n.Logger != nil {
		printf = n.Logger.Printf
	}
	for _, line := range strings.Split(plainText(text), "\n") {
		if line != "" {
			printf("[SIGNAL] %s", line)
		}
	}
	return nil
}

// plainText drops Telegram HTML markup and its entity escapes.
func plainText(s string) string { return html.UnescapeString(stripTags(s)) }

var tagReplacer = strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "", "<code>", "", "</code>", "")

func stripTags(s string) string { return tagReplacer.Replace(s) }
