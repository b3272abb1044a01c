// Package route maps logical navigation targets to legacy host URLs.
package route

// Resolver binds the route table to one host session.
type Resolver struct {
	sessionID string
}

func NewResolver(sessionID string) *Resolver {
	return &Resolver{sessionID: sessionID}
}

// Resolve builds the URL for target. params is only read.
func (r *Resolver) Resolve(target string, params map[string]string) (URLParts, error) {
	def, ok := table[target]
	if !ok {
		return URLParts{}, ErrUnknownTarget
	}
	return def.build(r.sessionID, params)
}

func (r *Resolver) Href(target string, params map[string]string) (string, error) {
	parts, err := r.Resolve(target, params)
	if err != nil {
		return "", err
	}
	return parts.String(), nil
}
