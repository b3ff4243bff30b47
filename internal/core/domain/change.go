package domain

// File is the Drive metadata we care about for syncing.
type File struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	MimeType string   `json:"mime_type"`
	Trashed  bool     `json:"trashed"`
	Parents  []string `json:"parents"`
}

// Change is a single entry from the Drive change feed.
type Change struct {
	FileID  string `json:"file_id"`
	Removed bool   `json:"removed"`
}

// ChangePage is one page of the change feed plus the tokens needed to advance it.
type ChangePage struct {
	Changes           []Change `json:"changes"`
	NewStartPageToken string   `json:"new_start_page_token"`
	NextPageToken     string   `json:"next_page_token"`
}

// Content is a file ready for upload: the name it should carry in the
// knowledge base and its raw bytes.
type Content struct {
	Filename string
	Data     []byte
}

// SyncState is the persisted cursor into the Drive change feed.
type SyncState struct {
	PageToken string `json:"page_token" firestore:"pageToken"`
}

// WatchChannel describes a Drive push-notification channel registration.
type WatchChannel struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Token   string `json:"token"`
}

// Document is the knowledge-base response payload for an uploaded file.
// Dify's schema varies by version, so we keep it loose.
type Document map[string]any
