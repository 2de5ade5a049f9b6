package model

import (
	"errors"
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"minatostudio/captioner/captioner"
)

// TokenizerVocabulary adapts a HuggingFace-format tokenizer.json file to the
// captioner.Vocabulary interface. The id table is read-only after load, so
// the adapter is safe for concurrent decodes.
type TokenizerVocabulary struct {
	tk   *tokenizer.Tokenizer
	size int
}

var _ captioner.Vocabulary = (*TokenizerVocabulary)(nil)

// LoadTokenizerVocabulary reads the tokenizer file and verifies the reserved
// start and end markers are present.
func LoadTokenizerVocabulary(path string) (*TokenizerVocabulary, error) {
	if path == "" {
		return nil, errors.New("tokenizer path is required")
	}
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	v := &TokenizerVocabulary{tk: tk, size: tk.GetVocabSize(true)}
	for _, reserved := range []string{captioner.StartToken, captioner.EndToken} {
		if _, ok := v.ID(reserved); !ok {
			return nil, fmt.Errorf("tokenizer lacks reserved token %q", reserved)
		}
	}
	return v, nil
}

// ID implements captioner.Vocabulary.
func (v *TokenizerVocabulary) ID(word string) (int, bool) {
	id, ok := v.tk.TokenToId(word)
	return id, ok
}

// Word implements captioner.Vocabulary.
func (v *TokenizerVocabulary) Word(id int) (string, bool) {
	word, ok := v.tk.IdToToken(id)
	return word, ok
}

// Size implements captioner.Vocabulary.
func (v *TokenizerVocabulary) Size() int {
	return v.size
}
