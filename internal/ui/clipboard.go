package ui

import (
	"fmt"
	"unicode/utf16"

	"github.com/atotto/clipboard"
)

// systemClipboard moves text through the OS clipboard, or through memory
// where no clipboard tool is available.
type systemClipboard struct {
	fallback MemoryClipboard
}

func newSystemClipboard() *systemClipboard {
	return &systemClipboard{}
}

func (c *systemClipboard) ReadText() ([]uint16, error) {
	if clipboard.Unsupported {
		return c.fallback.ReadText()
	}
	s, err := clipboard.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read clipboard: %w", err)
	}
	return utf16.Encode([]rune(s)), nil
}

func (c *systemClipboard) WriteText(units []uint16) error {
	if clipboard.Unsupported {
		return c.fallback.WriteText(units)
	}
	if err := clipboard.WriteAll(decodeUntilNUL(units)); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// MemoryClipboard keeps text in process.
type MemoryClipboard struct {
	units []uint16
}

// NewMemoryClipboard returns a clipboard that never leaves the process.
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

func (c *MemoryClipboard) ReadText() ([]uint16, error) {
	return append([]uint16(nil), c.units...), nil
}

func (c *MemoryClipboard) WriteText(units []uint16) error {
	c.units = append(c.units[:0], units...)
	return nil
}

// String returns the text held, without the terminator.
func (c *MemoryClipboard) String() string {
	return decodeUntilNUL(c.units)
}

func decodeUntilNUL(units []uint16) string {
	for i, u := range units {
		if u == 0 {
			units = units[:i]
			break
		}
	}
	return string(utf16.Decode(units))
}
