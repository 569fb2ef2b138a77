package server

import (
	"bytes"
	"net/http"
	"sort"

	"gopkg.in/yaml.v3"
)

// configSectionOrder is the order sections are written in exported YAML.
// Unknown sections follow alphabetically.
var configSectionOrder = []string{"logging", "output", "common", "scenarios"}

// handleConfigExport turns an editor's JSON configuration into the YAML file
// the CLI reads.
func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"

	payload := map[string]interface{}{}
	if err := h.decodeJSON(w, r, &payload, false, "configuration"); err != nil {
		h.fail(w, op, err)
		return
	}

	out, err := marshalConfigYAML(payload)
	if err != nil {
		h.fail(w, op, badRequest("failed to encode configuration: %v", err))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"configYaml": string(out)})
}

func marshalConfigYAML(payload map[string]interface{}) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range sectionKeys(payload) {
		value := &yaml.Node{}
		if err := value.Encode(payload[key]); err != nil {
			return nil, err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionKeys(payload map[string]interface{}) []string {
	keys := make([]string, 0, len(payload))
	known := make(map[string]bool, len(configSectionOrder))
	for _, key := range configSectionOrder {
		known[key] = true
		if _, ok := payload[key]; ok {
			keys = append(keys, key)
		}
	}

	var rest []string
	for key := range payload {
		if !known[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
