package render

import (
	"fmt"
	"strings"

	"github.com/sandevgo/cinebot/internal/core"
)

// Markdown flattens fulfillment messages for chat front ends that cannot
// show rich cards. Info cards become a bold title, the subtitle and a link;
// chips become a line of links.
func Markdown(msgs []core.Message) string {
	var blocks []string
	for _, msg := range msgs {
		if msg.Text != nil {
			blocks = append(blocks, strings.Join(msg.Text.Text, "\n"))
		}
		if msg.Payload == nil {
			continue
		}
		for _, row := range msg.Payload.RichContent {
			for _, el := range row {
				if b := elementMarkdown(el); b != "" {
					blocks = append(blocks, b)
				}
			}
		}
	}
	return strings.Join(blocks, "\n\n")
}

func elementMarkdown(el core.RichElement) string {
	switch el.Type {
	case core.ElementChips:
		links := make([]string, 0, len(el.Options))
		for _, o := range el.Options {
			if o.Link == "" {
				links = append(links, o.Text)
				continue
			}
			links = append(links, fmt.Sprintf("[%s](%s)", o.Text, o.Link))
		}
		return strings.Join(links, " · ")
	case core.ElementInfo:
		var sb strings.Builder
		fmt.Fprintf(&sb, "**%s**", el.Title)
		if el.Subtitle != "" {
			sb.WriteString("\n" + el.Subtitle)
		}
		if el.ActionLink != "" {
			fmt.Fprintf(&sb, "\n[More info](%s)", el.ActionLink)
		}
		return sb.String()
	}
	return ""
}
