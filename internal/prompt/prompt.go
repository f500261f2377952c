// Package prompt holds the closed catalog of prompt template formats the
// inference backend understands, with a bidirectional mapping between each
// variant and its canonical string id.
package prompt

import "fmt"

// Template enumerates the supported prompt formats.
type Template int

const (
	Llama2Chat Template = iota
	MistralInstruct
	MistralLite
	OpenChat
	CodeLlama
	CodeLlamaSuper
	HumanAssistant
	VicunaChat
	Vicuna11Chat
	VicunaLlava
	ChatML
	Baichuan2
	WizardCoder
	Zephyr
	StableLMZephyr
	IntelNeural
	DeepseekChat
	DeepseekCoder
	SolarInstruct
	Phi2Chat
	Phi2Instruct
	GemmaInstruct
)

// entry ties a variant to its canonical id and any deprecated aliases still
// accepted by Parse. The slice order is the presentation order used for
// interactive menus; it is deliberately independent of the enum declaration
// order above and must not be re-sorted.
type entry struct {
	tmpl    Template
	id      string
	aliases []string
}

var catalog = []entry{
	{tmpl: Llama2Chat, id: "llama-2-chat"},
	{tmpl: MistralInstruct, id: "mistral-instruct"},
	{tmpl: MistralLite, id: "mistrallite"},
	{tmpl: OpenChat, id: "openchat"},
	{tmpl: CodeLlama, id: "codellama-instruct"},
	// "human-asistant" is the historical spelling and stays canonical so
	// existing command lines keep working; the corrected form is an alias.
	{tmpl: HumanAssistant, id: "human-asistant", aliases: []string{"human-assistant", "belle-llama-2-chat"}},
	{tmpl: VicunaChat, id: "vicuna-1.0-chat"},
	{tmpl: Vicuna11Chat, id: "vicuna-1.1-chat"},
	{tmpl: VicunaLlava, id: "vicuna-llava"},
	{tmpl: ChatML, id: "chatml"},
	{tmpl: Baichuan2, id: "baichuan-2"},
	{tmpl: WizardCoder, id: "wizard-coder"},
	{tmpl: Zephyr, id: "zephyr"},
	{tmpl: StableLMZephyr, id: "stablelm-zephyr"},
	{tmpl: IntelNeural, id: "intel-neural"},
	{tmpl: DeepseekChat, id: "deepseek-chat"},
	{tmpl: DeepseekCoder, id: "deepseek-coder"},
	{tmpl: SolarInstruct, id: "solar-instruct"},
	{tmpl: Phi2Chat, id: "phi-2-chat"},
	{tmpl: Phi2Instruct, id: "phi-2-instruct"},
	{tmpl: CodeLlamaSuper, id: "codellama-super-instruct"},
	{tmpl: GemmaInstruct, id: "gemma-instruct"},
}

// byID maps canonical ids and aliases to variants; ids maps variants back to
// their canonical id only. Both are derived from catalog so the id, display
// string, and presentation order cannot drift apart.
var (
	byID = func() map[string]Template {
		m := make(map[string]Template, len(catalog)*2)
		for _, e := range catalog {
			m[e.id] = e.tmpl
			for _, a := range e.aliases {
				m[a] = e.tmpl
			}
		}
		return m
	}()
	ids = func() map[Template]string {
		m := make(map[Template]string, len(catalog))
		for _, e := range catalog {
			m[e.tmpl] = e.id
		}
		return m
	}()
)

type unknownTemplateError struct{ id string }

func (e unknownTemplateError) Error() string { return "unknown prompt template: " + e.id }

// IsUnknownTemplate reports whether err came from parsing an id outside the catalog.
func IsUnknownTemplate(err error) bool {
	_, ok := err.(unknownTemplateError)
	return ok
}

// Parse resolves a template id, canonical or deprecated alias, to its variant.
// Matching is exact; callers wanting case-insensitive behavior lowercase first.
func Parse(id string) (Template, error) {
	t, ok := byID[id]
	if !ok {
		return 0, unknownTemplateError{id: id}
	}
	return t, nil
}

// String returns the canonical id for the variant, never an alias.
func (t Template) String() string {
	if id, ok := ids[t]; ok {
		return id
	}
	return fmt.Sprintf("template(%d)", int(t))
}

// Catalog returns the canonical ids in fixed presentation order for
// interactive listing.
func Catalog() []string {
	out := make([]string, len(catalog))
	for i, e := range catalog {
		out[i] = e.id
	}
	return out
}
