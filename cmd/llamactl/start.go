package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"llamactl/internal/backend"
	"llamactl/internal/common/fsutil"
	"llamactl/internal/config"
	"llamactl/internal/fetch"
	"llamactl/internal/prompt"
	"llamactl/internal/resolve"
	"llamactl/internal/ui"
	"llamactl/pkg/types"
)

type startOptions struct {
	model           string
	promptTemplate  string
	reversePrompt   string
	contextSize     uint64
	modelsDir       string
	downloadTimeout time.Duration
	catalogHint     string
}

func newStartCmd(root *rootOptions) *cobra.Command {
	opts := &startOptions{}
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Resolve a model and prompt template, then hand off to the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Url or name of the gguf model")
	cmd.Flags().StringVarP(&opts.promptTemplate, "prompt-template", "p", "", "Prompt template id for the gguf model (requires --model)")
	cmd.Flags().StringVarP(&opts.reversePrompt, "reverse-prompt", "r", "", "Halt generation at PROMPT, return control (requires --model)")
	cmd.Flags().Uint64VarP(&opts.contextSize, "context-size", "c", 0, "Prompt context size (requires --model)")
	cmd.Flags().StringVar(&opts.modelsDir, "models-dir", ".", "Directory scanned for *.gguf artifacts and used for downloads")
	cmd.Flags().DurationVar(&opts.downloadTimeout, "download-timeout", time.Hour, "HTTP timeout for a whole model download")
	return cmd
}

func runStart(cmd *cobra.Command, root *rootOptions, opts *startOptions) error {
	cfg, err := loadConfig(root.configPath)
	if err != nil {
		return err
	}
	applyConfig(opts, root, cfg, cmd.Flags().Changed)
	if err := validateStartFlags(opts, cmd.Flags().Changed); err != nil {
		return err
	}

	log := newLogger(root.logLevel)

	// Resolution suspends on human input; refuse early when there is no
	// terminal to suspend on.
	if needsInteraction(opts) && !isatty.IsTerminal(os.Stdin.Fd()) {
		return errors.New("interactive selection requires a terminal; pass --model and --prompt-template")
	}

	r := &resolve.Resolver{
		Dir:         opts.modelsDir,
		UI:          ui.Terminal{},
		Acquirer:    fetch.New(&http.Client{Timeout: opts.downloadTimeout}, log),
		CatalogHint: opts.catalogHint,
		Log:         log,
	}
	sel, err := r.Resolve(types.StartOptions{
		Model:          opts.model,
		PromptTemplate: opts.promptTemplate,
		ReversePrompt:  opts.reversePrompt,
		ContextSize:    opts.contextSize,
	})
	if err != nil {
		if p := fetch.PartialPath(err); p != "" {
			log.Warn().Str("path", p).Msg("a partial download was left on disk; remove it before retrying")
		}
		return err
	}

	rows := [][2]string{
		{"model", sel.ModelPath},
		{"prompt template", sel.Template.String()},
	}
	if opts.reversePrompt != "" {
		rows = append(rows, [2]string{"reverse prompt", opts.reversePrompt})
	}
	if opts.contextSize > 0 {
		rows = append(rows, [2]string{"context size", fmt.Sprintf("%d", opts.contextSize)})
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Summary("Resolved", rows))

	return backend.LogLauncher{Log: log}.Start(cmd.Context(), backend.LaunchSpec{
		ModelPath:     sel.ModelPath,
		Template:      sel.Template,
		ReversePrompt: opts.reversePrompt,
		ContextSize:   opts.contextSize,
	})
}

// loadConfig reads the optional config file. A missing file is an error only
// when the flag was given.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	if !fsutil.PathExists(path) {
		return config.Config{}, fmt.Errorf("config file not found: %s", path)
	}
	return config.Load(path)
}

// applyConfig fills in defaults from the config file for flags the user did
// not set explicitly. The resolution core only ever sees the merged values.
func applyConfig(opts *startOptions, root *rootOptions, cfg config.Config, flagSet func(string) bool) {
	if cfg.ModelsDir != "" && !flagSet("models-dir") {
		opts.modelsDir = cfg.ModelsDir
	}
	if cfg.DownloadTimeout != "" && !flagSet("download-timeout") {
		if d, err := time.ParseDuration(cfg.DownloadTimeout); err == nil && d > 0 {
			opts.downloadTimeout = d
		}
	}
	if cfg.CatalogHint != "" {
		opts.catalogHint = cfg.CatalogHint
	}
	if cfg.DefaultTemplate != "" && opts.promptTemplate == "" {
		opts.promptTemplate = cfg.DefaultTemplate
	}
	if cfg.LogLevel != "" && !flagSet("log-level") {
		root.logLevel = cfg.LogLevel
	}
}

// validateStartFlags enforces the flag dependencies and template validity
// before the resolution core runs.
func validateStartFlags(opts *startOptions, flagSet func(string) bool) error {
	if opts.model == "" {
		for _, name := range []string{"prompt-template", "reverse-prompt", "context-size"} {
			if flagSet(name) {
				return fmt.Errorf("--%s requires --model", name)
			}
		}
	}
	if opts.promptTemplate != "" {
		id := strings.ToLower(opts.promptTemplate)
		if _, err := prompt.Parse(id); err != nil {
			return err
		}
		opts.promptTemplate = id
	}
	return nil
}

func needsInteraction(opts *startOptions) bool {
	return opts.model == "" || opts.promptTemplate == ""
}
