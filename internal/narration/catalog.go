// Package narration turns the engine's narrative scripts into localized
// speech, cards and reprompts.
package narration

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/mysterioushouse/server/internal/logger"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Fallback is the locale used when a request's locale has no catalog.
var Fallback = language.AmericanEnglish

// catalogFile is the structure of a locales/*.yaml file.
type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the message tables of every loaded locale.
type Catalog struct {
	mu       sync.RWMutex
	tags     []language.Tag
	messages map[string]map[Key]string // keyed by BCP 47 tag string
	matcher  language.Matcher
}

// Load returns a catalog built from the embedded locale files.
func Load() (*Catalog, error) {
	c := &Catalog{messages: make(map[string]map[Key]string)}
	if err := c.addFS(embedded, "locales"); err != nil {
		return nil, err
	}
	c.rebuild()
	return c, nil
}

// LoadDir returns the embedded catalog with the YAML files in dir layered on
// top. A file may add a new locale or override messages of an existing one.
func LoadDir(dir string) (*Catalog, error) {
	c, err := Load()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return c, nil
	}
	if err := c.addFS(os.DirFS(dir), "."); err != nil {
		return nil, err
	}
	c.rebuild()
	return c, nil
}

func (c *Catalog) addFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read locale directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, entry.Name())))
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}
		if err := c.add(data); err != nil {
			return fmt.Errorf("failed to parse locale file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (c *Catalog) add(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	tag, err := language.Parse(file.Locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", file.Locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	table, ok := c.messages[tag.String()]
	if !ok {
		table = make(map[Key]string, len(file.Messages))
		c.messages[tag.String()] = table
	}
	for k, v := range file.Messages {
		table[Key(k)] = v
	}
	return nil
}

// rebuild refreshes the matcher. The fallback locale always comes first so
// that it wins when nothing matches.
func (c *Catalog) rebuild() {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.messages))
	for name := range c.messages {
		if name != Fallback.String() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	tags := make([]language.Tag, 0, len(c.messages))
	if _, ok := c.messages[Fallback.String()]; ok {
		tags = append(tags, Fallback)
	}
	for _, name := range names {
		tags = append(tags, language.MustParse(name))
	}
	c.tags = tags
	c.matcher = language.NewMatcher(tags)
}

// Locales returns the loaded locales, fallback first.
func (c *Catalog) Locales() []language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Match resolves a request locale such as "de-AT" to a loaded locale.
func (c *Catalog) Match(locale string) language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.tags) == 0 {
		return Fallback
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return c.tags[0]
	}
	_, index, confidence := c.matcher.Match(tag)
	if confidence == language.No {
		return c.tags[0]
	}
	return c.tags[index]
}

// Text returns the message for key in the given locale, falling back to the
// fallback locale and finally to the key itself. Args are applied with a
// printer for the locale.
func (c *Catalog) Text(tag language.Tag, key Key, args ...any) string {
	c.mu.RLock()
	msg, ok := c.messages[tag.String()][key]
	if !ok {
		msg, ok = c.messages[Fallback.String()][key]
	}
	c.mu.RUnlock()

	if !ok {
		logger.Warning("Narration message missing", "locale", tag.String(), "key", string(key))
		return string(key)
	}
	if len(args) == 0 {
		return msg
	}
	return message.NewPrinter(tag).Sprintf(msg, args...)
}

// Has reports whether key exists for the locale without falling back.
func (c *Catalog) Has(tag language.Tag, key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.messages[tag.String()][key]
	return ok
}
