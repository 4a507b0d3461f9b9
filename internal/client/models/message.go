package models

import (
	"sort"
	"time"
)

// MessageType classifies a vault message.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeAudio MessageType = "audio"
	MessageTypeVideo MessageType = "video"
	MessageTypeImage MessageType = "image"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeAudio, MessageTypeVideo, MessageTypeImage:
		return true
	}
	return false
}

// Child is the recipient (actor) summary embedded in a message.
type Child struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MessageMedia points at the recorded media of a non-text message.
type MessageMedia struct {
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
}

// Message is a single vault item.
type Message struct {
	ID           string         `json:"id"`
	MessageType  MessageType    `json:"message_type"`
	Content      *string        `json:"content,omitempty"`
	ScheduledAt  time.Time      `json:"scheduled_at"`
	CreatedAt    time.Time      `json:"created_at"`
	DirectorID   string         `json:"director_id"`
	ActorID      string         `json:"actor_id"`
	Child        Child          `json:"child"`
	MessageMedia []MessageMedia `json:"message_media,omitempty"`
}

// SortByScheduledDesc orders messages most recent first. The sort is stable
// so equal timestamps keep the backend order.
func SortByScheduledDesc(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].ScheduledAt.After(messages[j].ScheduledAt)
	})
}
