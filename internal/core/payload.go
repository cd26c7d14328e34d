package core

// Message is one fulfillment message: either plain text or a rich payload.
type Message struct {
	Text    *TextMessage `json:"text,omitempty"`
	Payload *RichPayload `json:"payload,omitempty"`
}

type TextMessage struct {
	Text []string `json:"text"`
}

// RichPayload is the Dialogflow Messenger custom payload. Each inner slice is
// rendered as one card row.
type RichPayload struct {
	RichContent [][]RichElement `json:"richContent"`
}

const (
	ElementInfo  = "info"
	ElementChips = "chips"
)

type RichElement struct {
	Type        string       `json:"type"`
	Title       string       `json:"title,omitempty"`
	Subtitle    string       `json:"subtitle,omitempty"`
	Image       *Image       `json:"image,omitempty"`
	ActionLink  string       `json:"actionLink,omitempty"`
	Description string       `json:"description,omitempty"`
	Options     []ChipOption `json:"options,omitempty"`
}

type Image struct {
	RawURL string `json:"rawUrl"`
}

type ChipOption struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

func TextMsg(lines ...string) Message {
	return Message{Text: &TextMessage{Text: lines}}
}

func PayloadMsg(p RichPayload) Message {
	return Message{Payload: &p}
}
