package contact

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var payloadSchema = mustCompileSchema(schemaJSON)

func mustCompileSchema(data []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("contact: invalid schema.json: %v", err))
	}
	return s
}

// checkShape validates the raw body against the submission schema. Field
// problems are returned as field -> description pairs.
func checkShape(body []byte) (map[string]string, error) {
	result, err := payloadSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if result.Valid() {
		return nil, nil
	}
	details := make(map[string]string, len(result.Errors()))
	for _, e := range result.Errors() {
		details[e.Field()] = e.Description()
	}
	return details, ErrInvalidPayload
}
