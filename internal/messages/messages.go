// Package messages holds the localized strings shown to the user.
package messages

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a message.
type Key string

const (
	CmdTryCatch       Key = "cmd.tryCatch"
	CmdWrapCondition  Key = "cmd.wrapCondition"
	CmdArrowFunction  Key = "cmd.arrowFunction"
	CmdGettersSetters Key = "cmd.gettersSetters"

	ErrTryCatch       Key = "error.tryCatch"
	ErrWrapCondition  Key = "error.wrapCondition"
	ErrArrowFunction  Key = "error.arrowFunction"
	ErrGettersSetters Key = "error.gettersSetters"
	ErrApply          Key = "error.apply"
)

var translations = map[language.Tag]map[Key]string{
	language.English: {
		CmdTryCatch:       "Wrap in Try Catch",
		CmdWrapCondition:  "Wrap in Condition",
		CmdArrowFunction:  "Convert to Arrow Function",
		CmdGettersSetters: "Create Getters/Setters",

		ErrTryCatch:       "Select valid code to wrap in a Try-Catch block",
		ErrWrapCondition:  "Select valid code to wrap in a Condition block",
		ErrArrowFunction:  "Place the cursor inside an anonymous function expression",
		ErrGettersSetters: "Place the cursor on a property of an object literal",
		ErrApply:          "The document changed while refactoring, try again",
	},
	language.French: {
		CmdTryCatch:       "Envelopper dans un bloc try/catch",
		CmdWrapCondition:  "Envelopper dans une condition",
		CmdArrowFunction:  "Convertir en fonction fléchée",
		CmdGettersSetters: "Créer les accesseurs get/set",

		ErrTryCatch:       "Sélectionnez du code valide à envelopper dans un bloc try/catch",
		ErrWrapCondition:  "Sélectionnez du code valide à envelopper dans une condition",
		ErrArrowFunction:  "Placez le curseur dans une expression de fonction anonyme",
		ErrGettersSetters: "Placez le curseur sur une propriété d'un littéral objet",
		ErrApply:          "Le document a changé pendant la refactorisation, réessayez",
	},
}

// Supported lists the locales with a translation, English first.
var Supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(Supported)

// Catalog renders messages in one locale.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a catalog for the closest supported match to locale. An
// empty locale selects English.
func New(locale string) (*Catalog, error) {
	tag := language.English
	if locale != "" {
		requested, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		_, idx, _ := matcher.Match(requested)
		tag = Supported[idx]
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for lang, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(lang, string(key), msg); err != nil {
				return nil, fmt.Errorf("adding %s/%s: %w", lang, key, err)
			}
		}
	}

	return &Catalog{tag: tag, printer: message.NewPrinter(tag, message.Catalog(b))}, nil
}

// Tag returns the locale the catalog renders in.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Text returns the message for key.
func (c *Catalog) Text(key Key) string {
	return c.printer.Sprintf(string(key))
}
