// Package resolve sequences cache discovery, interactive disambiguation and
// remote acquisition into the model-and-template decision procedure that runs
// once per start invocation.
package resolve

import (
	"github.com/rs/zerolog"

	"llamactl/internal/cache"
	"llamactl/internal/fetch"
	"llamactl/internal/prompt"
	"llamactl/internal/ui"
	"llamactl/pkg/types"
)

// DefaultCatalogHint is the synthetic entry appended after the cached
// artifacts; choosing it routes the human to the url prompt instead.
const DefaultCatalogHint = "Or choose one from: https://huggingface.co/second-state?sort_models=modified#models or https://huggingface.co/models?sort=trending&search=gguf"

// Selection is the terminal product of a successful resolution. It is owned
// by the caller for the duration of the start operation and never persisted.
type Selection struct {
	ModelPath string
	Template  prompt.Template
}

// Resolver drives the decision procedure. Dir is always explicit so
// resolution never depends on process-wide working-directory state.
type Resolver struct {
	// Dir is scanned for cached artifacts and receives downloads.
	Dir      string
	UI       ui.Chooser
	Acquirer fetch.Acquirer
	// CatalogHint overrides DefaultCatalogHint when non-empty.
	CatalogHint string
	Log         zerolog.Logger
}

// Resolve turns the start command's inputs into a validated selection, or a
// typed error naming the stage that failed. Any fatal error aborts before
// the backend is launched.
func (r *Resolver) Resolve(opts types.StartOptions) (Selection, error) {
	modelPath, err := r.resolveModel(opts)
	if err != nil {
		return Selection{}, err
	}
	tmpl, err := r.resolveTemplate(opts)
	if err != nil {
		return Selection{}, err
	}
	r.Log.Debug().Str("model", modelPath).Stringer("template", tmpl).Msg("resolution complete")
	return Selection{ModelPath: modelPath, Template: tmpl}, nil
}

func (r *Resolver) resolveModel(opts types.StartOptions) (string, error) {
	// Explicit identifiers skip discovery entirely; the value is treated as
	// already local and verified later by the backend launcher.
	if opts.Model != "" {
		r.Log.Debug().Str("model", opts.Model).Msg("model given explicitly")
		return r.Acquirer.Acquire(types.LocalModel{Path: opts.Model}, r.Dir)
	}

	models, err := cache.Scan(r.Dir)
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		r.Log.Debug().Str("dir", r.Dir).Msg("no cached artifacts")
		return r.promptForURL()
	}

	options := make([]string, 0, len(models)+1)
	for _, m := range models {
		options = append(options, m.Name)
	}
	options = append(options, r.catalogHint())

	idx, err := r.UI.Choose("Select a cached model", options, 0)
	if err != nil {
		if ui.IsCancelled(err) {
			return "", cancelledError{stage: StageModel}
		}
		return "", err
	}
	if idx < len(models) {
		r.Log.Debug().Str("model", models[idx].ID).Msg("cached model selected")
		return r.Acquirer.Acquire(types.LocalModel{Path: models[idx].Path}, r.Dir)
	}
	// the catalog-hint sentinel was chosen
	return r.promptForURL()
}

func (r *Resolver) promptForURL() (string, error) {
	raw, err := r.UI.Input("Enter the model url")
	if err != nil {
		if ui.IsCancelled(err) {
			return "", cancelledError{stage: StageModel}
		}
		return "", err
	}
	return r.Acquirer.Acquire(types.RemoteModel{URL: raw}, r.Dir)
}

func (r *Resolver) resolveTemplate(opts types.StartOptions) (prompt.Template, error) {
	// A pre-specified template was already validated by the CLI layer and
	// skips the prompt.
	if opts.PromptTemplate != "" {
		return prompt.Parse(opts.PromptTemplate)
	}
	ids := prompt.Catalog()
	idx, err := r.UI.Choose("Select a prompt template", ids, 0)
	if err != nil {
		if ui.IsCancelled(err) {
			return 0, cancelledError{stage: StageTemplate}
		}
		return 0, err
	}
	return prompt.Parse(ids[idx])
}

func (r *Resolver) catalogHint() string {
	if r.CatalogHint != "" {
		return r.CatalogHint
	}
	return DefaultCatalogHint
}
