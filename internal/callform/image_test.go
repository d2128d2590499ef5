package callform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/helpdesk/internal/model"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	gifBytes = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!")
)

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("image decode did not finish")
	}
}

func TestPasteFirstImageWins(t *testing.T) {
	f := New(nil)
	done, ok := f.Paste([]ClipboardItem{
		{Type: "text/plain", Data: []byte("hello")},
		{Type: "image/png", Data: pngBytes},
		{Type: "image/gif", Data: gifBytes},
	})
	if !ok {
		t.Fatal("expected paste to find an image")
	}
	wait(t, done)

	img := f.Draft().IssueImage
	if img != model.EncodeDataURI("image/png", pngBytes) {
		t.Errorf("expected png data uri, got %q", img)
	}
}

func TestPasteSkipsEmptyImageItem(t *testing.T) {
	it, ok := FirstImage([]ClipboardItem{
		{Type: "image/png"},
		{Type: "image/gif", Data: gifBytes},
	})
	if !ok || it.Type != "image/gif" {
		t.Errorf("expected gif item, got %+v %v", it, ok)
	}
}

func TestPasteSniffsUntypedItems(t *testing.T) {
	if !IsImage(ClipboardItem{Data: pngBytes}) {
		t.Error("expected untyped png to be detected as image")
	}
	if IsImage(ClipboardItem{Data: []byte("just some text")}) {
		t.Error("text should not be an image")
	}

	f := New(nil)
	done, ok := f.Paste([]ClipboardItem{{Data: gifBytes}})
	if !ok {
		t.Fatal("expected sniffed gif to be pasted")
	}
	wait(t, done)
	if !strings.HasPrefix(f.Draft().IssueImage, "data:image/gif;base64,") {
		t.Errorf("unexpected image %q", f.Draft().IssueImage)
	}
}

func TestPasteWithoutImageIsNoop(t *testing.T) {
	f := New(nil)
	f.Update(func(d *model.Draft) { d.IssueImage = "data:image/png;base64,AAAA" })

	if _, ok := f.Paste(nil); ok {
		t.Error("empty paste should be a no-op")
	}
	if _, ok := f.Paste([]ClipboardItem{{Type: "text/html", Data: []byte("<b>x</b>")}}); ok {
		t.Error("text paste should be a no-op")
	}
	if f.Draft().IssueImage != "data:image/png;base64,AAAA" {
		t.Errorf("image changed: %q", f.Draft().IssueImage)
	}
}

func TestSecondPasteReplacesImage(t *testing.T) {
	f := New(nil)
	done, _ := f.Paste([]ClipboardItem{{Type: "image/png", Data: pngBytes}})
	wait(t, done)
	done, _ = f.Paste([]ClipboardItem{{Type: "image/gif", Data: gifBytes}})
	wait(t, done)

	img := f.Draft().IssueImage
	if img != model.EncodeDataURI("image/gif", gifBytes) {
		t.Errorf("expected gif data uri, got %q", img)
	}
	if strings.Contains(img, "image/png") {
		t.Error("first image still referenced")
	}
}

func TestRemoveImage(t *testing.T) {
	f := New(nil)
	done, _ := f.Paste([]ClipboardItem{{Type: "image/png", Data: pngBytes}})
	wait(t, done)
	f.RemoveImage()
	if f.Draft().IssueImage != "" {
		t.Errorf("expected no image, got %q", f.Draft().IssueImage)
	}
}

func TestItemFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, pngBytes, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	it, err := ItemFromFile(path)
	if err != nil {
		t.Fatalf("item from file: %v", err)
	}
	if it.Type != "image/png" {
		t.Errorf("expected image/png, got %q", it.Type)
	}

	if _, err := ItemFromFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
