// Package namespaces maps wiki language codes to the localized names of the
// User and User talk namespaces, which are used to spot signature links.
package namespaces

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

const (
	userNamespace     = 2
	userTalkNamespace = 3
)

//go:embed namespaces.json
var tableJSON []byte

// Names holds the underscore-joined namespace prefixes as they appear in link hrefs.
type Names struct {
	User     string
	UserTalk string
}

type translation struct {
	Namespace int    `json:"namespace"`
	Name      string `json:"name"`
}

type language struct {
	Code         string        `json:"code"`
	Translations []translation `json:"translations"`
}

// Table is a lookup of namespace names by language code.
type Table struct {
	byLang map[string]*Names
}

// Load decodes a namespace table. Languages missing either namespace are skipped.
func Load(data []byte) (*Table, error) {
	var doc struct {
		Languages []language `json:"languages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode namespace table: %w", err)
	}

	t := &Table{byLang: make(map[string]*Names, len(doc.Languages))}
	for _, lang := range doc.Languages {
		var user, userTalk string
		for _, tr := range lang.Translations {
			switch tr.Namespace {
			case userNamespace:
				user = tr.Name
			case userTalkNamespace:
				userTalk = tr.Name
			}
		}
		if user == "" || userTalk == "" {
			continue
		}
		t.byLang[lang.Code] = &Names{
			User:     strings.ReplaceAll(user, " ", "_"),
			UserTalk: strings.ReplaceAll(userTalk, " ", "_"),
		}
	}
	return t, nil
}

// Lookup returns the names for lang, or nil when the language is unknown.
func (t *Table) Lookup(lang string) *Names {
	if t == nil {
		return nil
	}
	return t.byLang[strings.ToLower(lang)]
}

// Len reports how many languages the table knows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byLang)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in table.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(tableJSON)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

// ForLang looks lang up in the built-in table.
func ForLang(lang string) *Names {
	return Default().Lookup(lang)
}

// LangFromDomain returns the language code of a wiki domain such as "en.wikipedia.org".
func LangFromDomain(domain string) string {
	lang, _, _ := strings.Cut(domain, ".")
	return strings.ToLower(lang)
}
