package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// TextObject is a Slack Block Kit text element.
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Block is a single Slack Block Kit block.
type Block struct {
	Type string      `json:"type"`
	Text *TextObject `json:"text,omitempty"`
}

// SlackPayload is the message payload handed to the external posting step.
type SlackPayload struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text,omitempty"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// BuildSlackPayload wraps the rendered stats text into the Block Kit
// message the posting step expects: a header naming the period, a
// completion note, and the stats in a fenced section.
func BuildSlackPayload(statsText, period, channel string) *SlackPayload {
	return &SlackPayload{
		Channel: channel,
		Blocks: []Block{
			{
				Type: "header",
				Text: &TextObject{
					Type: "plain_text",
					Text: fmt.Sprintf("PR Statistics for %s", period),
				},
			},
			{
				Type: "section",
				Text: &TextObject{
					Type: "mrkdwn",
					Text: "PR statistics report has completed.",
				},
			},
			{
				Type: "section",
				Text: &TextObject{
					Type: "mrkdwn",
					Text: fmt.Sprintf("```%s```", statsText),
				},
			},
		},
	}
}

// WriteSlackPayload marshals the payload and writes it to path.
func WriteSlackPayload(path string, payload *SlackPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write Slack payload to %s: %w", path, err)
	}
	return nil
}
