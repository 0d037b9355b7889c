package workload

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes raw into a Document. Every failure is a MalformedDocument.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, malformed(err)
	}

	// Empty and null documents never reach UnmarshalYAML
	if doc.Workload == nil {
		return nil, malformed(errors.New("missing field `version`"))
	}

	return &doc, nil
}

// ValidateAndNormalize parses raw, validates the workload and returns its
// canonical tree. The first problem found is returned as an *Error.
func ValidateAndNormalize(raw []byte) (*Tree, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	if err := doc.Workload.Validate(); err != nil {
		return nil, err
	}

	return doc.Canonical(), nil
}

// ReadDocument reads the file at path, reporting DocumentNotFound or
// DocumentUnreadable on failure.
func ReadDocument(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindDocumentNotFound, Path: path, Err: err}
		}
		return nil, &Error{Kind: KindDocumentUnreadable, Path: path, Err: err}
	}
	return raw, nil
}

// ValidateFile reads path and runs ValidateAndNormalize on its contents.
func ValidateFile(path string) (*Tree, error) {
	raw, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return ValidateAndNormalize(raw)
}
