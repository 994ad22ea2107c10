package vktriangle

// ExtensionSet matches the names an application asks for against what the
// platform actually offers. Required names must be present; wanted names are
// enabled only when available.
type ExtensionSet struct {
	required []string
	wanted   []string
	actual   map[string]bool
}

func NewExtensionSet(required, wanted, actual []string) *ExtensionSet {
	set := &ExtensionSet{
		required: required,
		wanted:   wanted,
		actual:   make(map[string]bool, len(actual)),
	}
	for _, name := range actual {
		set.actual[name] = true
	}
	return set
}

// MissingRequired lists required names the platform does not offer.
func (e *ExtensionSet) MissingRequired() []string {
	return e.missing(e.required)
}

// MissingWanted lists wanted names the platform does not offer.
func (e *ExtensionSet) MissingWanted() []string {
	return e.missing(e.wanted)
}

func (e *ExtensionSet) missing(names []string) []string {
	var out []string
	for _, name := range names {
		if !e.actual[name] {
			out = append(out, name)
		}
	}
	return out
}

// Enabled returns every required name followed by the available wanted names,
// without duplicates, in request order.
func (e *ExtensionSet) Enabled() []string {
	seen := make(map[string]bool, len(e.required)+len(e.wanted))
	var out []string
	for _, name := range e.required {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range e.wanted {
		if !seen[name] && e.actual[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
