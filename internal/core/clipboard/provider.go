package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard can be reached.
var ErrUnavailable = errors.New("clipboard: unavailable")

// Provider moves text in and out of a clipboard.
type Provider interface {
	SetText(text string) error
	GetText() (string, error)
}

// SystemProvider talks to the OS clipboard (xclip/xsel/wl-clipboard, pbcopy, Windows API).
type SystemProvider struct{}

func (SystemProvider) SetText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (SystemProvider) GetText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, nil
}

// RegisterProvider is an in-process clipboard.
type RegisterProvider struct {
	mu   sync.Mutex
	text string
}

func (r *RegisterProvider) SetText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	return nil
}

func (r *RegisterProvider) GetText() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, nil
}

// NewProvider returns the system clipboard when requested and supported,
// and an in-process register otherwise.
func NewProvider(useSystem bool) Provider {
	if useSystem && !clipboard.Unsupported {
		return SystemProvider{}
	}
	return &RegisterProvider{}
}
