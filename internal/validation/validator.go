// Package validation implements the pre-flight required-field check that
// runs before an issue payload is submitted to the tracker.
package validation

import (
	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/metadata"
	"github.com/thomas-vilte/matejira/internal/models"
)

// RequiredFields reports which fields marked required in metadataDoc are
// absent from payload, in metadata order. The check is presence at
// `fields.<key>`, not truthiness: an explicit empty string, empty list, 0
// or null counts as present. An empty result means the payload passes; a
// metadata document with no required fields passes trivially rather than
// failing closed.
//
// Keys like project and issuetype are not exempted. Callers populate them
// into the payload before validating.
func RequiredFields(metadataDoc, payload document.Document) ([]models.MissingField, error) {
	fields, err := metadata.ParseFields(metadataDoc)
	if err != nil {
		return nil, err
	}

	var missing []models.MissingField
	for _, f := range metadata.RequiredOf(fields) {
		if _, present := payload.ValueAt("fields." + f.Key); present {
			continue
		}
		missing = append(missing, models.MissingField{Key: f.Key, Name: f.Name})
	}
	return missing, nil
}
