package models

// EditorConfig is the signed configuration handed to the browser-based
// editor. Its wire shape must match what the rendering service expects.
type EditorConfig struct {
	Width        string            `json:"width"`
	Height       string            `json:"height"`
	Type         string            `json:"type"`
	DocumentType string            `json:"documentType"`
	Document     Document          `json:"document"`
	EditorConfig EditorConfigInner `json:"editorConfig"`
	Token        string            `json:"token,omitempty"`
}

type Document struct {
	FileType string `json:"fileType"`
	Key      string `json:"key"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

type EditorConfigInner struct {
	Mode        string     `json:"mode"`
	Lang        string     `json:"lang"`
	CallbackUrl string     `json:"callbackUrl"`
	User        EditorUser `json:"user"`
}

type EditorUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// DownloadSession is the payload of a signed download token. The token is
// signed with the process-wide cryptography secret, never a team secret.
type DownloadSession struct {
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}
