package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var builtin embed.FS

// Service holds the translation catalog for host facing strings.
type Service struct {
	logger  *zap.SugaredLogger
	catalog   catalog.Catalog
	supported []language.Tag
	matcher   language.Matcher
}

// NewBuiltin loads the locales shipped with the binary.
func NewBuiltin(logger *zap.SugaredLogger) (*Service, error) {
	sub, err := fs.Sub(builtin, "locales")
	if err != nil {
		return nil, err
	}
	return NewService(sub, logger)
}

// NewService loads every <lang>.json file at the root of fsys.
func NewService(fsys fs.FS, logger *zap.SugaredLogger) (*Service, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	supported := []language.Tag{language.English}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales failed: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			logger.Warnw("skip locale with bad language tag", "file", e.Name(), "error", err)
			continue
		}
		data, err := fs.ReadFile(fsys, path.Clean(e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s failed: %w", e.Name(), err)
		}
		translations := make(map[string]string)
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("parse locale %s failed: %w", e.Name(), err)
		}
		for key, value := range translations {
			if err := builder.SetString(tag, key, value); err != nil {
				logger.Warnw("set translation failed", "lang", tag.String(), "key", key, "error", err)
			}
		}
		if tag != language.English {
			supported = append(supported, tag)
		}
		logger.Debugw("loaded translations", "lang", tag.String(), "count", len(translations))
	}

	return &Service{
		logger:    logger,
		catalog:   builder,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Localizer returns a translator for an Accept-Language style value.
func (s *Service) Localizer(lang string) *Localizer {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return &Localizer{printer: message.NewPrinter(language.English, message.Catalog(s.catalog))}
	}
	_, idx, _ := s.matcher.Match(tags...)
	return &Localizer{printer: message.NewPrinter(s.supported[idx], message.Catalog(s.catalog))}
}

type Localizer struct {
	printer *message.Printer
}

// Gettext translates key, returning key itself when there is no entry.
func (l *Localizer) Gettext(key string) string {
	return l.printer.Sprintf(key)
}
