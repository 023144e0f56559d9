package download

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/flytam/filenamify"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("download: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// Request describes one entry of a batch manifest: fetch URL and save
// it at Path. Path may name an existing directory, in which case the
// filename is derived from the URL.
type Request struct {
	URL  string `json:"url"  validate:"required,url"`
	Path string `json:"path" validate:"required"`
}

// Manifest is a set of download requests, typically decoded from JSON.
type Manifest []Request

// Validate checks every request against its declared tags. It returns
// FieldErrors describing each offending field.
func (m Manifest) Validate() error {
	var fields FieldErrors
	for i, req := range m {
		err := validate.Struct(req)
		if err == nil {
			continue
		}

		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		for _, verror := range verrors {
			fields = append(fields, FieldError{
				Field: fmt.Sprintf("[%d].%s", i, verror.Field()),
				Err:   customErrForTag(verror.Tag(), verror),
			})
		}
	}

	if len(fields) > 0 {
		return fields
	}

	return nil
}

// DestPath resolves the request's final destination. A Path naming an
// existing directory gets a filename derived from the URL, sanitized
// for the local filesystem.
func (r Request) DestPath() (string, error) {
	info, err := os.Stat(r.Path)
	if err == nil && info.IsDir() {
		name, err := urlToFilename(r.URL)
		if err != nil {
			return "", err
		}

		return filepath.Join(r.Path, name), nil
	}

	return r.Path, nil
}

// urlToFilename derives a filesystem-safe filename from a URL, using
// the last path segment when present and the full URL otherwise.
func urlToFilename(rawURL string) (string, error) {
	base := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		if seg := filepath.Base(u.Path); seg != "." && seg != "/" && seg != "" {
			base = seg
		}
	}

	name, err := filenamify.Filenamify(base, filenamify.Options{})
	if err != nil {
		return "", fmt.Errorf("deriving filename from url: %w", err)
	}

	return name, nil
}

// FieldError represents a single validation error for a specific field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// Error implements the error interface, returning a human-readable
// summary of all field errors.
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "required":
		return "This field is required"
	default:
		return verror.Translate(translator)
	}
}
