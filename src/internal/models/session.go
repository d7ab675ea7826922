package models

import "time"

// EditorSession is the one-time handoff payload written on an "open"
// request and consumed exactly once when the editor page loads.
type EditorSession struct {
	SessionID string `json:"sessionId"`
	TeamID    string `json:"teamId"`
	UserID    string `json:"userId"`
	ChannelID string `json:"channelId"`
	MessageTs string `json:"messageTs"`
	FileID    string `json:"fileId"`
}

// DocumentSessionKey tracks the composite key of a file that currently
// has an open editor. It outlives the one-time handoff session.
type DocumentSessionKey struct {
	FileID string `json:"fileId"`
	Key    string `json:"key"`
}

// ActiveFileSession is the persisted record the sweeper reads to find
// files whose editor activity went stale.
type ActiveFileSession struct {
	FileID    string    `bson:"file_id"`
	CreatedAt time.Time `bson:"created_at"`
}
