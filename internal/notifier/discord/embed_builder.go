package discord

import (
	"time"
)

// EmbedBuilder helps in constructing Embed objects.
type EmbedBuilder struct {
	embed     Embed
	validator *EmbedValidator
}

// NewEmbedBuilder creates a new embed builder
func NewEmbedBuilder() *EmbedBuilder {
	return &EmbedBuilder{
		embed:     Embed{},
		validator: NewEmbedValidator(),
	}
}

// WithTitle sets the embed title
func (eb *EmbedBuilder) WithTitle(title string) *EmbedBuilder {
	eb.embed.Title = title
	return eb
}

// WithDescription sets the embed description
func (eb *EmbedBuilder) WithDescription(description string) *EmbedBuilder {
	eb.embed.Description = description
	return eb
}

// WithURL sets the embed URL
func (eb *EmbedBuilder) WithURL(url string) *EmbedBuilder {
	eb.embed.URL = url
	return eb
}

// WithTimestamp sets the embed timestamp
func (eb *EmbedBuilder) WithTimestamp(timestamp time.Time) *EmbedBuilder {
	eb.embed.Timestamp = timestamp.Format(time.RFC3339)
	return eb
}

// WithColor sets the embed color
func (eb *EmbedBuilder) WithColor(color int) *EmbedBuilder {
	eb.embed.Color = color
	return eb
}

// WithFooter sets the embed footer
func (eb *EmbedBuilder) WithFooter(text, iconURL string) *EmbedBuilder {
	eb.embed.Footer = &EmbedFooter{Text: text, IconURL: iconURL}
	return eb
}

// WithAuthor sets the embed author
func (eb *EmbedBuilder) WithAuthor(name, url, iconURL string) *EmbedBuilder {
	eb.embed.Author = &EmbedAuthor{Name: name, URL: url, IconURL: iconURL}
	return eb
}

// AddField adds a field to the embed
func (eb *EmbedBuilder) AddField(name, value string, inline bool) *EmbedBuilder {
	eb.embed.Fields = append(eb.embed.Fields, NewEmbedField(name, value, inline))
	return eb
}

// Validate validates the current embed
func (eb *EmbedBuilder) Validate() error {
	return eb.validator.ValidateEmbed(eb.embed)
}

// Build builds the embed with validation
func (eb *EmbedBuilder) Build() Embed {
	if err := eb.Validate(); err != nil {
		return Embed{}
	}
	return eb.embed
}

// MessagePayloadBuilder helps in constructing MessagePayload objects.
type MessagePayloadBuilder struct {
	payload MessagePayload
}

// NewMessagePayloadBuilder creates a new instance of MessagePayloadBuilder.
func NewMessagePayloadBuilder() *MessagePayloadBuilder {
	return &MessagePayloadBuilder{
		payload: MessagePayload{},
	}
}

// WithContent sets the Content for the MessagePayload.
func (b *MessagePayloadBuilder) WithContent(content string) *MessagePayloadBuilder {
	b.payload.Content = content
	return b
}

// WithUsername sets the Username for the MessagePayload.
func (b *MessagePayloadBuilder) WithUsername(username string) *MessagePayloadBuilder {
	b.payload.Username = username
	return b
}

// WithAvatarURL sets the AvatarURL for the MessagePayload.
func (b *MessagePayloadBuilder) WithAvatarURL(avatarURL string) *MessagePayloadBuilder {
	b.payload.AvatarURL = avatarURL
	return b
}

// AddEmbed adds an Embed to the MessagePayload.
func (b *MessagePayloadBuilder) AddEmbed(embed Embed) *MessagePayloadBuilder {
	b.payload.Embeds = append(b.payload.Embeds, embed)
	return b
}

// Build returns the constructed MessagePayload object.
func (b *MessagePayloadBuilder) Build() MessagePayload {
	return b.payload
}
