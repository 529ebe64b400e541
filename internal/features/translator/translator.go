package translator

import "context"

// Translator is the external text-translation collaborator. A failed
// translation returns an error the caller logs and skips; it never aborts a
// sync run.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// Noop is used when no translation provider is configured.
type Noop struct{}

func (Noop) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	return "", nil
}
