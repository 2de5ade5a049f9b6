package captioner

// Reserved tokens shared by every vocabulary. PAD always maps to id 0;
// the start and end markers follow the training corpus convention.
const (
	PadID      = 0
	StartToken = "startseq"
	EndToken   = "endseq"
)

// Vocabulary is the bidirectional word/id mapping the decoder operates on.
// Ids must be unique and stable for the lifetime of a decoding session.
type Vocabulary interface {
	// ID returns the id for a word, reporting whether the word is known.
	ID(word string) (int, bool)
	// Word returns the word for an id, reporting whether the id is known.
	Word(id int) (string, bool)
	// Size returns the number of ids including the reserved PAD slot.
	Size() int
}

// MapVocabulary is an in-memory Vocabulary built from a word list.
type MapVocabulary struct {
	wordToID map[string]int
	idToWord map[int]string
	size     int
}

// NewMapVocabulary assigns sequential ids starting at 1 to the given words,
// keeping id 0 reserved for PAD. Duplicate and empty words are skipped. The
// start and end markers are appended automatically when absent.
func NewMapVocabulary(words []string) *MapVocabulary {
	v := &MapVocabulary{
		wordToID: make(map[string]int, len(words)+2),
		idToWord: make(map[int]string, len(words)+2),
	}
	next := 1
	add := func(w string) {
		if w == "" {
			return
		}
		if _, ok := v.wordToID[w]; ok {
			return
		}
		v.wordToID[w] = next
		v.idToWord[next] = w
		next++
	}
	for _, w := range words {
		add(w)
	}
	add(StartToken)
	add(EndToken)
	v.size = next
	return v
}

// ID implements Vocabulary.
func (v *MapVocabulary) ID(word string) (int, bool) {
	id, ok := v.wordToID[word]
	return id, ok
}

// Word implements Vocabulary.
func (v *MapVocabulary) Word(id int) (string, bool) {
	w, ok := v.idToWord[id]
	return w, ok
}

// Size implements Vocabulary.
func (v *MapVocabulary) Size() int {
	return v.size
}

// EncodeWords maps words to ids, skipping unknown words.
func EncodeWords(v Vocabulary, words []string) []int {
	ids := make([]int, 0, len(words))
	for _, w := range words {
		if id, ok := v.ID(w); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// DecodeIDs maps ids back to words, skipping ids without a word.
func DecodeIDs(v Vocabulary, ids []int) []string {
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if w, ok := v.Word(id); ok {
			words = append(words, w)
		}
	}
	return words
}
