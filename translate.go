package formz

// RequiredErrorKey is the lookup key for the required-field error text.
// It is the only key the library ever resolves.
const RequiredErrorKey = "input.error.required"

// Translator resolves message keys to user-facing text. Hosts supply their
// own localization; the library treats the returned text as opaque.
type Translator interface {
	Lookup(key string) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(key string) string

// Lookup calls f.
func (f TranslatorFunc) Lookup(key string) string {
	return f(key)
}

// DefaultTranslator is used when no Translator is configured. It resolves
// RequiredErrorKey to plain English and returns any other key unchanged.
var DefaultTranslator Translator = TranslatorFunc(func(key string) string {
	if key == RequiredErrorKey {
		return "required"
	}
	return key
})
