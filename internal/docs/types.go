package docs

// DocumentMetadata represents Drive metadata about a document.
type DocumentMetadata struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	CreatedTime  string `json:"createdTime"`
	ModifiedTime string `json:"modifiedTime"`
	Size         int64  `json:"size,omitempty"`
	Owners       []User `json:"owners,omitempty"`
}

// User represents a Google Drive user.
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// DocContent is the readable content of a document.
type DocContent struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Text   string     `json:"text"`
	Images []ImageRef `json:"images,omitempty"`
}

// ImageRef identifies an inline image and where it was loaded from.
type ImageRef struct {
	ObjectID string `json:"objectId"`
	URI      string `json:"uri,omitempty"`
}
