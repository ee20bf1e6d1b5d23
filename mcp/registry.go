package mcp

import (
	"fmt"
	"sync"

	"github.com/glasskite/unrealmcp/schema"
)

// Registry holds the four capability collections a server exposes: tools by
// name, static resources by URI, resource templates as an ordered list, and
// prompts by name.
//
// Registration is append-only and write-once per key: re-registering a name or
// URI fails, as does registering a definition without a bound handler. Both
// are configuration errors meant to surface at startup. There is no update or
// removal; the only teardown is Clear, used at shutdown.
type Registry struct {
	mu        sync.Mutex
	tools     map[string]Tool
	toolOrder []string

	resources     map[string]Resource
	resourceOrder []string

	templates []compiledTemplate

	prompts     map[string]Prompt
	promptOrder []string
}

// compiledTemplate pairs a registered template definition with its compiled
// matcher. Registration order is significant: resources/read uses the first
// matcher that accepts a URI.
type compiledTemplate struct {
	tmpl *URITemplate
	def  ResourceTemplate
}

// NewRegistry creates an empty capability registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:     make(map[string]Tool),
		resources: make(map[string]Resource),
		prompts:   make(map[string]Prompt),
	}
}

// RegisterTool adds a tool. It fails if the tool has no name, no bound Call
// handler, or a name that is already registered. A nil InputSchema defaults
// to an empty object schema, since every tool input is an object.
func (r *Registry) RegisterTool(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("register tool: missing name")
	}
	if tool.Call == nil {
		return fmt.Errorf("register tool %q: no bound handler", tool.Name)
	}
	if tool.InputSchema == nil {
		tool.InputSchema = &schema.JSON{Type: schema.Object}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("register tool %q: already registered", tool.Name)
	}
	r.tools[tool.Name] = tool
	r.toolOrder = append(r.toolOrder, tool.Name)
	return nil
}

// RegisterResource adds a static resource, keyed by its exact URI.
func (r *Registry) RegisterResource(resource Resource) error {
	if resource.URI == "" {
		return fmt.Errorf("register resource: missing uri")
	}
	if resource.Read == nil {
		return fmt.Errorf("register resource %q: no bound handler", resource.URI)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resources[resource.URI]; exists {
		return fmt.Errorf("register resource %q: already registered", resource.URI)
	}
	r.resources[resource.URI] = resource
	r.resourceOrder = append(r.resourceOrder, resource.URI)
	return nil
}

// RegisterResourceTemplate compiles the template's URI pattern and appends it
// to the template list. Unlike the keyed registries, duplicate patterns are
// accepted; only the first-registered one is ever reachable at read time.
func (r *Registry) RegisterResourceTemplate(template ResourceTemplate) error {
	if template.Read == nil {
		return fmt.Errorf("register resource template %q: no bound handler", template.URITemplate)
	}
	tmpl, err := CompileURITemplate(template.URITemplate)
	if err != nil {
		return fmt.Errorf("register resource template: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates = append(r.templates, compiledTemplate{tmpl: tmpl, def: template})
	return nil
}

// RegisterPrompt adds a prompt, keyed by name.
func (r *Registry) RegisterPrompt(prompt Prompt) error {
	if prompt.Name == "" {
		return fmt.Errorf("register prompt: missing name")
	}
	if prompt.Get == nil {
		return fmt.Errorf("register prompt %q: no bound handler", prompt.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.prompts[prompt.Name]; exists {
		return fmt.Errorf("register prompt %q: already registered", prompt.Name)
	}
	r.prompts[prompt.Name] = prompt
	r.promptOrder = append(r.promptOrder, prompt.Name)
	return nil
}

// Tool retrieves a tool by name.
func (r *Registry) Tool(name string) (Tool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tool, ok := r.tools[name]
	return tool, ok
}

// Resource retrieves a static resource by its exact URI.
func (r *Registry) Resource(uri string) (Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resource, ok := r.resources[uri]
	return resource, ok
}

// Prompt retrieves a prompt by name.
func (r *Registry) Prompt(name string) (Prompt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prompt, ok := r.prompts[name]
	return prompt, ok
}

// FindTemplate walks the resource templates in registration order and returns
// the first whose pattern matches uri, along with the extracted bindings.
func (r *Registry) FindTemplate(uri string) (*URITemplate, *Match, ResourceTemplate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.templates {
		if match, ok := entry.tmpl.FindMatch(uri); ok {
			return entry.tmpl, match, entry.def, true
		}
	}
	return nil, nil, ResourceTemplate{}, false
}

// Tools returns every registered tool in registration order.
func (r *Registry) Tools() []Tool {
	r.mu.Lock()
	defer r.mu.Unlock()

	tools := make([]Tool, 0, len(r.toolOrder))
	for _, name := range r.toolOrder {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Resources returns every registered static resource in registration order.
func (r *Registry) Resources() []Resource {
	r.mu.Lock()
	defer r.mu.Unlock()

	resources := make([]Resource, 0, len(r.resourceOrder))
	for _, uri := range r.resourceOrder {
		resources = append(resources, r.resources[uri])
	}
	return resources
}

// ResourceTemplates returns every registered template definition in
// registration order.
func (r *Registry) ResourceTemplates() []ResourceTemplate {
	r.mu.Lock()
	defer r.mu.Unlock()

	templates := make([]ResourceTemplate, 0, len(r.templates))
	for _, entry := range r.templates {
		templates = append(templates, entry.def)
	}
	return templates
}

// Prompts returns every registered prompt in registration order.
func (r *Registry) Prompts() []Prompt {
	r.mu.Lock()
	defer r.mu.Unlock()

	prompts := make([]Prompt, 0, len(r.promptOrder))
	for _, name := range r.promptOrder {
		prompts = append(prompts, r.prompts[name])
	}
	return prompts
}

// Clear empties every collection. Called at shutdown after the transport has
// stopped accepting traffic.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]Tool)
	r.toolOrder = nil
	r.resources = make(map[string]Resource)
	r.resourceOrder = nil
	r.templates = nil
	r.prompts = make(map[string]Prompt)
	r.promptOrder = nil
}
