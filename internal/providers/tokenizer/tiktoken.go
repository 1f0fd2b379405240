package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Tiktoken estimates prompt sizes. The BPE table is loaded on first use.
type Tiktoken struct {
	encoding string

	once sync.Once
	tk   *tiktoken.Tiktoken
	err  error
}

func NewTiktoken() *Tiktoken {
	return &Tiktoken{encoding: defaultEncoding}
}

func (t *Tiktoken) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	t.once.Do(func() {
		t.tk, t.err = tiktoken.GetEncoding(t.encoding)
	})
	if t.err != nil {
		return 0, fmt.Errorf("load %s encoding: %w", t.encoding, t.err)
	}
	return len(t.tk.Encode(text, nil, nil)), nil
}
