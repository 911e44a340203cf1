// Package disclosure implements the client-side state machine that gates
// revealing and copying the secret code unlocked by a confirmed verification.
package disclosure

import (
	"strings"
	"time"

	"github.com/KiwiAmenazante/DREMO/internal/verification"
)

// State of the controller.
type State string

// Controller states. Revealed is not a separate state: it is a toggle that
// only exists while the confirmation surface is open.
const (
	StateLocked   State = "locked"
	StateUnlocked State = "unlocked"
)

// Notices shown after a copy attempt, and how long they stay visible.
const (
	NoticeCopied     = "copied to clipboard"
	NoticeCopyFailed = "could not copy"

	copiedNoticeTTL     = 1500 * time.Millisecond
	copyFailedNoticeTTL = 2 * time.Second
)

// SecretPlaceholder is displayed when no secret is present.
const SecretPlaceholder = "—"

// Controller owns the disclosure workflow for one form interaction. Any
// operation attempted from an invalid state is a no-op. The controller is
// cooperative single-threaded: one verification flow at a time, no internal
// locking, notice expiry is checked on read instead of with timers.
type Controller struct {
	clipboard Clipboard
	fallback  Clipboard
	buffer    *Buffer
	now       func() time.Time

	state       State
	secret      string
	hasSecret   bool
	confirmOpen bool
	revealed    bool
	notice      string
	noticeUntil time.Time
}

// NewController returns a locked controller copying to the given clipboard,
// with an in-memory buffer as fallback target.
func NewController(clip Clipboard) *Controller {
	buffer := &Buffer{}
	return &Controller{
		clipboard: clip,
		fallback:  buffer,
		buffer:    buffer,
		now:       time.Now,
		state:     StateLocked,
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// ConfirmationOpen reports whether the confirmation surface is open.
func (c *Controller) ConfirmationOpen() bool { return c.confirmOpen }

// Revealed reports whether the secret is currently shown in plain text.
func (c *Controller) Revealed() bool { return c.revealed }

// Fallback exposes the buffer used when the platform clipboard failed.
func (c *Controller) Fallback() *Buffer { return c.buffer }

// Unlock transitions Locked -> Unlocked. It succeeds only for a
// confirmed-with-contact verdict carrying a non-null secret; anything else
// leaves the controller locked.
func (c *Controller) Unlock(verdict verification.Verdict, secret *string) {
	if c.state != StateLocked {
		return
	}
	if verdict != verification.VerdictConfirmedWithContact || secret == nil || *secret == "" {
		return
	}
	c.state = StateUnlocked
	c.secret = *secret
	c.hasSecret = true
}

// RequestDisclosure opens the confirmation surface. Valid only from Unlocked;
// it never reveals the secret by itself.
func (c *Controller) RequestDisclosure() {
	if c.state != StateUnlocked {
		return
	}
	c.confirmOpen = true
}

// CloseDisclosure hides the confirmation surface again.
func (c *Controller) CloseDisclosure() {
	c.confirmOpen = false
}

// ToggleReveal flips between masked and plain display. Valid only while the
// confirmation surface is open.
func (c *Controller) ToggleReveal() {
	if !c.confirmOpen {
		return
	}
	c.revealed = !c.revealed
}

// Display returns what the confirmation surface should show: the plain
// secret when revealed, its masked form otherwise.
func (c *Controller) Display() string {
	if !c.hasSecret {
		return SecretPlaceholder
	}
	if c.revealed {
		return c.secret
	}
	return MaskSecret(c.secret)
}

// CopyToClipboard copies the unmasked secret regardless of the reveal toggle.
// When the platform clipboard is unavailable the value lands in the fallback
// buffer instead. A transient notice records the outcome.
func (c *Controller) CopyToClipboard() {
	if !c.confirmOpen || !c.hasSecret {
		return
	}

	if err := c.clipboard.WriteAll(c.secret); err != nil {
		if err := c.fallback.WriteAll(c.secret); err != nil {
			c.setNotice(NoticeCopyFailed, copyFailedNoticeTTL)
			return
		}
	}
	c.setNotice(NoticeCopied, copiedNoticeTTL)
}

// Notice returns the current transient notice, or "" once it expired.
func (c *Controller) Notice() string {
	if c.notice == "" || c.now().After(c.noticeUntil) {
		return ""
	}
	return c.notice
}

// Reset returns the controller to Locked and drops the secret. Called when
// the form is cleared or a new query begins.
func (c *Controller) Reset() {
	c.state = StateLocked
	c.secret = ""
	c.hasSecret = false
	c.confirmOpen = false
	c.revealed = false
	c.notice = ""
	c.noticeUntil = time.Time{}
}

func (c *Controller) setNotice(text string, ttl time.Duration) {
	c.notice = text
	c.noticeUntil = c.now().Add(ttl)
}

// MaskSecret censors a secret for display. Short secrets are masked almost
// entirely; longer ones keep the first and last two characters visible.
func MaskSecret(code string) string {
	trimmed := []rune(strings.TrimSpace(code))
	switch n := len(trimmed); {
	case n == 0:
		return SecretPlaceholder
	case n <= 2:
		return "••"
	case n <= 4:
		return string(trimmed[0]) + strings.Repeat("•", 3)
	default:
		middle := n - 4
		if middle < 2 {
			middle = 2
		}
		return string(trimmed[:2]) + strings.Repeat("•", middle) + string(trimmed[n-2:])
	}
}
