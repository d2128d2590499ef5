package callform

import (
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/rcliao/helpdesk/internal/model"
)

// ClipboardItem is one entry of a paste event.
type ClipboardItem struct {
	Type string // MIME type as reported by the clipboard; may be empty
	Data []byte
}

// ItemFromFile builds a clipboard item from a file, sniffing its type.
func ItemFromFile(path string) (ClipboardItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClipboardItem{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ClipboardItem{Type: mimetype.Detect(data).String(), Data: data}, nil
}

func (it ClipboardItem) mimeType() string {
	if it.Type != "" {
		return it.Type
	}
	if len(it.Data) == 0 {
		return ""
	}
	return mimetype.Detect(it.Data).String()
}

// IsImage reports whether the item's MIME type names an image. Items with
// no reported type are sniffed from their content.
func IsImage(it ClipboardItem) bool {
	return strings.Contains(it.mimeType(), "image")
}

// FirstImage selects the first image item that carries data. Later items are
// ignored even when they are images too.
func FirstImage(items []ClipboardItem) (ClipboardItem, bool) {
	for _, it := range items {
		if !IsImage(it) || len(it.Data) == 0 {
			continue
		}
		return it, true
	}
	return ClipboardItem{}, false
}

// Paste stages the first image of a paste event as the draft's screenshot,
// replacing any previous one. Encoding runs in the background; the returned
// channel closes once the draft holds the new image. When several decodes
// overlap, the last to finish wins. Paste returns false and leaves the
// draft alone when no item is an image.
func (f *Form) Paste(items []ClipboardItem) (<-chan struct{}, bool) {
	it, ok := FirstImage(items)
	if !ok {
		return nil, false
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		uri := model.EncodeDataURI(it.mimeType(), it.Data)
		f.mu.Lock()
		f.draft.IssueImage = uri
		f.mu.Unlock()
	}()
	return done, true
}

// RemoveImage clears the staged screenshot.
func (f *Form) RemoveImage() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.IssueImage = ""
}
