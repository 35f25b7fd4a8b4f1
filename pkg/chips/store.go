// Package chips holds the token ("chip") variant of the multi-amount input:
// committed amounts are discrete tokens and only the buffer is edited.
package chips

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cisan/caripiutang/pkg/mask"
)

// Token is one committed amount.
type Token struct {
	ID    string
	Value string
}

// IDFunc generates token ids.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string { return uuid.NewString() }

// Store is an immutable token list plus the uncommitted buffer. Every
// operation returns a new Store; the receiver is never modified.
type Store struct {
	committed []Token
	buffer    string
	newID     IDFunc
}

// New returns an empty Store. A nil idFn uses NewID.
func New(idFn IDFunc) Store {
	if idFn == nil {
		idFn = NewID
	}
	return Store{newID: idFn}
}

func (s Store) id() string {
	if s.newID == nil {
		return NewID()
	}
	return s.newID()
}

// Tokens returns a copy of the committed tokens in order.
func (s Store) Tokens() []Token {
	out := make([]Token, len(s.committed))
	copy(out, s.committed)
	return out
}

// Buffer returns the uncommitted digits.
func (s Store) Buffer() string { return s.buffer }

// Len returns the number of committed tokens.
func (s Store) Len() int { return len(s.committed) }

// Commit splits text on the separator and appends one token per non-empty
// digit string, then clears the buffer. Text without any digits leaves the
// store unchanged.
func (s Store) Commit(text string) Store {
	var added []Token
	for _, seg := range mask.Segments(text) {
		if seg == "" {
			continue
		}
		added = append(added, Token{ID: s.id(), Value: seg})
	}
	if len(added) == 0 {
		return s
	}

	next := s
	next.committed = make([]Token, 0, len(s.committed)+len(added))
	next.committed = append(next.committed, s.committed...)
	next.committed = append(next.committed, added...)
	next.buffer = ""
	return next
}

// CommitBuffer commits the current buffer. It backs both Enter and the
// separator key.
func (s Store) CommitBuffer() Store { return s.Commit(s.buffer) }

// Type appends the digits of text to the buffer.
func (s Store) Type(text string) Store {
	digits := mask.FilterDigits(text)
	if digits == "" {
		return s
	}
	s.buffer += digits
	return s
}

// Backspace removes the last buffer digit, or the last token when the buffer
// is empty.
func (s Store) Backspace() Store {
	if s.buffer != "" {
		s.buffer = s.buffer[:len(s.buffer)-1]
		return s
	}
	if len(s.committed) == 0 {
		return s
	}
	s.committed = s.committed[:len(s.committed)-1:len(s.committed)-1]
	return s
}

// RemoveByID removes the token with the given id. Other tokens keep their
// ids, values and order.
func (s Store) RemoveByID(id string) Store {
	idx := -1
	for i, tok := range s.committed {
		if tok.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	next := s
	next.committed = make([]Token, 0, len(s.committed)-1)
	next.committed = append(next.committed, s.committed[:idx]...)
	next.committed = append(next.committed, s.committed[idx+1:]...)
	return next
}

// Paste commits text as a batch when it contains a separator and otherwise
// appends its digits to the buffer. Pending buffer digits continue the first
// pasted amount.
func (s Store) Paste(text string) Store {
	if strings.ContainsRune(text, mask.Separator) {
		return s.Commit(s.buffer + text)
	}
	return s.Type(text)
}

// Value joins the committed token values with the separator. The buffer is
// excluded.
func (s Store) Value() string {
	values := make([]string, len(s.committed))
	for i, tok := range s.committed {
		values[i] = tok.Value
	}
	return strings.Join(values, string(mask.Separator))
}

// Clear drops every token and the buffer.
func (s Store) Clear() Store {
	return Store{newID: s.newID}
}
