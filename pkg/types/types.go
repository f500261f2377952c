package types

// Model represents a cached model artifact discovered in the models directory.
type Model struct {
	// Stable identifier; for scanned artifacts this is the filename.
	// example: llama-2-7b-chat.Q4_K_M.gguf
	ID string `json:"id"`
	// Human-friendly name shown in interactive menus.
	Name string `json:"name"`
	// Absolute path to the artifact on disk.
	Path string `json:"path"`
}

// ModelRef identifies where a model artifact comes from. A resolved reference
// always collapses to a LocalModel; remote references are download targets,
// never a runtime state.
type ModelRef interface {
	modelRef()
}

// LocalModel points at an artifact already on disk. The path is carried as an
// opaque string; existence is checked by the backend launcher, not here.
type LocalModel struct {
	Path string
}

// RemoteModel points at an artifact to be downloaded.
type RemoteModel struct {
	URL string
}

func (LocalModel) modelRef()  {}
func (RemoteModel) modelRef() {}

// StartOptions carries the start command's validated inputs into resolution.
// Empty fields mean "not specified" and trigger interactive discovery.
type StartOptions struct {
	// Model is an explicit model identifier (path or name). When set,
	// cache discovery is skipped entirely.
	Model string
	// PromptTemplate is a canonical template id, already validated by the
	// CLI layer. When set, the template prompt is skipped.
	PromptTemplate string
	// ReversePrompt halts generation at the given text.
	ReversePrompt string
	// ContextSize is the prompt context size in tokens; 0 means backend default.
	ContextSize uint64
}
