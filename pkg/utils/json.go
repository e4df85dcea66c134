package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson formata qualquer valor como JSON indentado, usado na saída da CLI
func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return string(raw)
		}
		in = decoded
	}

	out, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return ""
	}

	return string(out)
}
