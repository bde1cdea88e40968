package snapshot

import "github.com/odvcencio/powerquery-parser/text"

// CommentKind discriminates a line comment ("// ...") from a block comment
// ("/* ... */").
type CommentKind int

const (
	CommentKindLine CommentKind = iota
	CommentKindMultiline
)

// Comment is a single comment, possibly spanning several original lines if
// it was a block comment.
type Comment struct {
	Kind            CommentKind
	Data            string
	PositionStart   text.Position
	PositionEnd     text.Position
	ContainsNewline bool
}
