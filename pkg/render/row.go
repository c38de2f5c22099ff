package render

// MaxTextLength is the longest free-text cell shown before truncation.
const MaxTextLength = 50

const ellipsis = "..."

// Style is an abstract visual treatment, mapped to colours by the console.
type Style int

const (
	StyleNone Style = iota
	StyleKey
	StyleLow
	StyleSevere
)

// Cell is one table cell. Span is the number of columns it covers;
// zero means one.
type Cell struct {
	Text  string
	Style Style
	Span  int
}

type Row []Cell

// IsPlaceholder reports whether the row is a single spanning message.
func (r Row) IsPlaceholder() bool {
	return len(r) == 1 && r[0].Span > 1
}

// Texts returns the plain cell texts.
func (r Row) Texts() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Text
	}
	return out
}

func placeholder(text string, span int) Row {
	return Row{{Text: text, Span: span}}
}

// Truncate shortens s to MaxTextLength characters, ending in "...".
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxTextLength {
		return s
	}
	return string(r[:MaxTextLength-len(ellipsis)]) + ellipsis
}

// PriorityStyle maps a priority name to its severity style.
func PriorityStyle(name string) Style {
	switch name {
	case "Minor":
		return StyleLow
	case "Major", "Critical", "Blocker":
		return StyleSevere
	default:
		return StyleNone
	}
}
