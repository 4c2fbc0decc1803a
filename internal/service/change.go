package service

// A Change is one of the four mutually exclusive field groups an update
// may carry: description, category, completion flag, attachment flag.
// It is constructed from the caller's intent, so a single patch can
// never express more than one group; the one-group-per-call restriction
// of the wire protocol is explicit rather than inferred from absent
// fields.
type Change struct {
	kind        changeKind
	description string
	category    *int
	finished    bool
	attachment  bool
}

type changeKind int

const (
	changeDescription changeKind = iota
	changeCategory
	changeFinished
	changeAttachment
)

// DescriptionChange updates the task description.
func DescriptionChange(description string) Change {
	return Change{kind: changeDescription, description: description}
}

// CategoryChange assigns a category. A nil id clears the category.
func CategoryChange(id *int) Change {
	return Change{kind: changeCategory, category: id}
}

// FinishedChange sets the completion flag.
func FinishedChange(finished bool) Change {
	return Change{kind: changeFinished, finished: finished}
}

// AttachmentChange sets the attachment flag.
func AttachmentChange(attachment bool) Change {
	return Change{kind: changeAttachment, attachment: attachment}
}

// Body returns the wire payload for the patch request. It always
// contains exactly one field; clearing a category sends an explicit
// null.
func (c Change) Body() map[string]any {
	switch c.kind {
	case changeCategory:
		if c.category == nil {
			return map[string]any{"category_id": nil}
		}
		return map[string]any{"category_id": *c.category}
	case changeFinished:
		return map[string]any{"is_finished": c.finished}
	case changeAttachment:
		return map[string]any{"attachment": c.attachment}
	default:
		return map[string]any{"description": c.description}
	}
}
