package export

// BlockKind enumerates the flowing (non-tabular) elements a document can hold.
type BlockKind int

const (
	// BlockHeading is a section title.
	BlockHeading BlockKind = iota + 1
	// BlockPrompt is a question prompt.
	BlockPrompt
	// BlockText is a free-text answer, rendered verbatim.
	BlockText
	// BlockOptions is a list of fixed options with selection marks.
	BlockOptions
	// BlockNote is an indented remark under an option list.
	BlockNote
)

// Option is a single entry of an option list.
type Option struct {
	Label    string
	Selected bool
}

// Block is one renderable paragraph or list.
type Block struct {
	Kind    BlockKind
	Text    string
	Options []Option
	// Muted renders the text as a greyed placeholder.
	Muted bool
}

// SelectedCount returns how many options of the block are marked.
func (b Block) SelectedCount() int {
	n := 0
	for _, o := range b.Options {
		if o.Selected {
			n++
		}
	}
	return n
}
