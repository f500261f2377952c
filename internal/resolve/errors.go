package resolve

// Stage identifies which interactive step the human cancelled.
type Stage string

const (
	StageModel    Stage = "model"
	StageTemplate Stage = "prompt template"
)

type cancelledError struct{ stage Stage }

func (e cancelledError) Error() string { return string(e.stage) + " selection cancelled" }

// IsModelSelectionCancelled reports whether err is an explicit cancellation
// during model selection. This is fatal to the whole start operation.
func IsModelSelectionCancelled(err error) bool {
	c, ok := err.(cancelledError)
	return ok && c.stage == StageModel
}

// IsTemplateSelectionCancelled reports whether err is an explicit
// cancellation during template selection.
func IsTemplateSelectionCancelled(err error) bool {
	c, ok := err.(cancelledError)
	return ok && c.stage == StageTemplate
}
