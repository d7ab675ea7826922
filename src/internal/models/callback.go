package models

// CallbackStatus models the document lifecycle transitions the rendering
// service reports back. Codes follow the document server protocol.
type CallbackStatus int

const (
	StatusEditing        CallbackStatus = 1
	StatusSave           CallbackStatus = 2
	StatusSaveError      CallbackStatus = 3
	StatusClosed         CallbackStatus = 4
	StatusForceSave      CallbackStatus = 6
	StatusForceSaveError CallbackStatus = 7
)

func (s CallbackStatus) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSave:
		return "save"
	case StatusSaveError:
		return "save_error"
	case StatusClosed:
		return "closed"
	case StatusForceSave:
		return "force_save"
	case StatusForceSaveError:
		return "force_save_error"
	default:
		return "unknown"
	}
}

// Callback is the wire shape the rendering service posts back.
// Key is a composite file key, Users lists the ids of active editors.
type Callback struct {
	Key     string           `json:"key"`
	Status  CallbackStatus   `json:"status"`
	Token   string           `json:"token,omitempty"`
	Users   []string         `json:"users,omitempty"`
	Actions []CallbackAction `json:"actions,omitempty"`
	Url     string           `json:"url,omitempty"`
}

type CallbackAction struct {
	Type   int    `json:"type"`
	UserID string `json:"userid"`
}
