package core

const (
	AppName      = "bioprep"
	AppUserAgent = "bioprep/0.1"
	AppVersion   = "0.1.0"
)

const (
	MessageTypeUser     = "USER"
	ContentTypeImage    = "IMAGE"
	DefaultMetisBaseURL = "https://api.metisai.ir/api/v1"
)

// Attachment references a remote file sent alongside a chat message.
type Attachment struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// ChatMessage is the single user turn sent per session.
type ChatMessage struct {
	Content     string       `json:"content"`
	Type        string       `json:"type"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

func ImageAttachments(urls []string) []Attachment {
	if len(urls) == 0 {
		return nil
	}
	out := make([]Attachment, 0, len(urls))
	for _, u := range urls {
		out = append(out, Attachment{Content: u, ContentType: ContentTypeImage})
	}
	return out
}
