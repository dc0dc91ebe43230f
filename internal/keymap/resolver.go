package keymap

// Resolver maps key strings to actions within a context. Global bindings
// apply in every context unless the context binds the same key.
type Resolver struct {
	bindings map[string]map[string]Action // context -> key -> action
	byAction map[Action][]string          // action -> keys (for help/documentation)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		ctx := r.bindings[b.Context]
		if ctx == nil {
			ctx = make(map[string]Action)
			r.bindings[b.Context] = ctx
		}
		for _, key := range b.Keys {
			ctx[key] = b.Action
		}
		// Collect all keys for each action (may have duplicates from different contexts)
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	// Deduplicate keys per action
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key in context, falling back to the
// playback and global bindings, or empty string if not bound.
func (r *Resolver) Resolve(context, key string) Action {
	for _, c := range []string{context, "playback", "global"} {
		if a, ok := r.bindings[c][key]; ok {
			return a
		}
	}
	return ""
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

var defaultResolver = NewResolver(Bindings)

// Lookup resolves key in context against the built-in bindings.
func Lookup(context, key string) Action {
	return defaultResolver.Resolve(context, key)
}
