package models

import "time"

// DocumentEventMessage is published to the queue on document lifecycle
// transitions so the chat-platform collaborator can notify the channel.
type DocumentEventMessage struct {
	FileID    string    `json:"fileId"`
	TeamID    string    `json:"teamId"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
