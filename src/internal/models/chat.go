package models

// ChatFile is the subset of the chat platform's file object the bridge needs.
type ChatFile struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Title              string `json:"title"`
	FileType           string `json:"filetype"`
	URLPrivate         string `json:"url_private"`
	URLPrivateDownload string `json:"url_private_download"`
	Size               int64  `json:"size"`
}

// ChatUser is the subset of the chat platform's user object the bridge needs.
type ChatUser struct {
	ID       string          `json:"id"`
	TeamID   string          `json:"team_id"`
	Name     string          `json:"name"`
	RealName string          `json:"real_name"`
	Profile  ChatUserProfile `json:"profile"`
}

type ChatUserProfile struct {
	DisplayName string `json:"display_name"`
	RealName    string `json:"real_name"`
	Image32     string `json:"image_32"`
}
