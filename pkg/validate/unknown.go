package validate

import (
	"fmt"
	"strings"
)

// UnknownTag records one tag whose name is outside the vocabulary.
type UnknownTag struct {
	Name    string   `json:"name"`
	Opening bool     `json:"opening"`
	Pos     Position `json:"position"`
}

func (u UnknownTag) String() string {
	if u.Opening {
		return fmt.Sprintf("%d:%d <%s> opening", u.Pos.Line, u.Pos.Column, u.Name)
	}
	return fmt.Sprintf("%d:%d </%s> closing", u.Pos.Line, u.Pos.Column, u.Name)
}

type unknownTracker struct {
	tags []UnknownTag
}

// record notes name if vocab does not know it and reports whether it did.
func (t *unknownTracker) record(vocab *Vocabulary, name string, opening bool, pos Position) bool {
	if !vocab.Classify(name, opening).IsUnknown() {
		return false
	}
	t.tags = append(t.tags, UnknownTag{
		Name:    name,
		Opening: opening,
		Pos:     pos,
	})
	return true
}

// selfClosed marks the most recently recorded tag as not opening.
func (t *unknownTracker) selfClosed() {
	if len(t.tags) > 0 {
		t.tags[len(t.tags)-1].Opening = false
	}
}

// advisory summarises every unknown tag seen in the run, or returns nil.
func (t *unknownTracker) advisory() *Diagnostic {
	if len(t.tags) == 0 {
		return nil
	}

	lines := make([]string, 0, len(t.tags))
	for _, tag := range t.tags {
		lines = append(lines, "  "+tag.String())
	}

	return &Diagnostic{
		Code: CodeUnknownTagAdvisory,
		Pos:  t.tags[0].Pos,
		End:  t.tags[len(t.tags)-1].Pos,
		Message: fmt.Sprintf(
			"%d tag(s) are not in the known element vocabulary; check for typos or "+
				"add them to the configured elements:\n%s",
			len(t.tags), strings.Join(lines, "\n")),
	}
}
