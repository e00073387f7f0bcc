// Package message holds the localized messages returned to API clients.
package message

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var catalogYAML []byte

var catalog = mustLoad(catalogYAML)

func mustLoad(data []byte) map[string]string {
	c, err := load(data)
	if err != nil {
		panic(fmt.Sprintf("failed to load message catalog: %v", err))
	}
	return c
}

// load flattens the nested YAML document into dot separated keys like "image.exists".
func load(data []byte) (map[string]string, error) {
	var document map[string]any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	flattened := make(map[string]string)
	if err := flatten("", document, flattened); err != nil {
		return nil, err
	}
	return flattened, nil
}

func flatten(prefix string, node map[string]any, into map[string]string) error {
	for key, value := range node {
		if prefix != "" {
			key = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			into[key] = v
		case map[string]any:
			if err := flatten(key, v, into); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected value of type %T for message %q", value, key)
		}
	}
	return nil
}

// Get returns the message stored under key formatted with the optional args. Unknown keys are returned as is so a
// missing translation is visible rather than empty.
func Get(key string, args ...any) string {
	msg, ok := catalog[key]
	if !ok {
		return key
	}

	if len(args) == 0 || !strings.Contains(msg, "%") {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
