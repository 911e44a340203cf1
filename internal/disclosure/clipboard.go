package disclosure

import "github.com/atotto/clipboard"

// Clipboard is the copy target of the controller.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the platform clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Buffer is the fallback copy target used when the platform clipboard is
// unavailable: the value is held in memory so the caller can still present it
// for manual selection.
type Buffer struct {
	value string
	set   bool
}

// WriteAll implements Clipboard.
func (b *Buffer) WriteAll(text string) error {
	b.value = text
	b.set = true
	return nil
}

// Value returns the last buffered text and whether anything was buffered.
func (b *Buffer) Value() (string, bool) {
	return b.value, b.set
}
