package discord

// Embed represents a Discord embed object.
type Embed struct {
	Title       string       `json:"title,omitempty"`       // Title of embed
	Description string       `json:"description,omitempty"` // Description of embed
	URL         string       `json:"url,omitempty"`         // URL of embed
	Timestamp   string       `json:"timestamp,omitempty"`   // ISO8601 timestamp
	Color       int          `json:"color,omitempty"`       // Color code of the embed
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"` // Array of embed field objects
}

// EmbedFooter represents the footer of an embed.
type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedAuthor represents the author of an embed.
type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedField represents a field in an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// NewEmbedField creates a new embed field
func NewEmbedField(name, value string, inline bool) EmbedField {
	return EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}

// MessagePayload represents the JSON payload sent to a Discord webhook.
type MessagePayload struct {
	Content   string  `json:"content,omitempty"`    // Message content (text)
	Username  string  `json:"username,omitempty"`   // Override the default webhook username
	AvatarURL string  `json:"avatar_url,omitempty"` // Override the default webhook avatar
	Embeds    []Embed `json:"embeds,omitempty"`     // Array of embed objects
}
