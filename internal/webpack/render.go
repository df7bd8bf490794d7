package webpack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const renderHeader = "// Generated by kcmaker. Do not edit; changes are overwritten on every build.\n"

// Render returns cfg as a CommonJS module exporting the configuration.
func Render(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(renderHeader)
	buf.WriteString("\"use strict\";\n\nmodule.exports = ")
	if err := renderValue(&buf, cfg.Values, 0); err != nil {
		return nil, err
	}
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

func renderValue(buf *bytes.Buffer, v any, depth int) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case Object:
		return renderObject(buf, val, depth)
	case map[string]any:
		return renderObject(buf, Object(val), depth)
	case *Entries:
		pairs := make([]pair, 0, val.Len())
		for _, e := range val.All() {
			pairs = append(pairs, pair{e.Key, e.Path})
		}
		return renderPairs(buf, pairs, depth)
	case []any:
		return renderArray(buf, val, depth)
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return renderArray(buf, items, depth)
	case Plugin:
		buf.WriteString("new (require(")
		writeJSON(buf, val.Package)
		buf.WriteString(")")
		if val.Export != "" {
			buf.WriteString(".")
			buf.WriteString(val.Export)
		}
		buf.WriteString(")(")
		if val.Options != nil {
			if err := renderValue(buf, val.Options, depth); err != nil {
				return err
			}
		}
		buf.WriteString(")")
	case Regexp:
		if val.Source == "" {
			return fmt.Errorf("empty regular expression")
		}
		buf.WriteString("/")
		buf.WriteString(strings.ReplaceAll(val.Source, "/", `\/`))
		buf.WriteString("/")
		buf.WriteString(val.Flags)
	case Expr:
		buf.WriteString(string(val))
	case string, bool, int, int64, float64:
		writeJSON(buf, val)
	default:
		return fmt.Errorf("cannot render %T as JavaScript", v)
	}
	return nil
}

type pair struct {
	key   string
	value any
}

func renderObject(buf *bytes.Buffer, o Object, depth int) error {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]pair, len(keys))
	for i, k := range keys {
		pairs[i] = pair{k, o[k]}
	}
	return renderPairs(buf, pairs, depth)
}

func renderPairs(buf *bytes.Buffer, pairs []pair, depth int) error {
	if len(pairs) == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteString("{\n")
	for _, p := range pairs {
		indent(buf, depth+1)
		writeJSON(buf, p.key)
		buf.WriteString(": ")
		if err := renderValue(buf, p.value, depth+1); err != nil {
			return fmt.Errorf("%s: %w", p.key, err)
		}
		buf.WriteString(",\n")
	}
	indent(buf, depth)
	buf.WriteString("}")
	return nil
}

func renderArray(buf *bytes.Buffer, items []any, depth int) error {
	if len(items) == 0 {
		buf.WriteString("[]")
		return nil
	}
	buf.WriteString("[\n")
	for i, it := range items {
		indent(buf, depth+1)
		if err := renderValue(buf, it, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		buf.WriteString(",\n")
	}
	indent(buf, depth)
	buf.WriteString("]")
	return nil
}

func indent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
}

// writeJSON writes a JSON literal, which is also a valid JavaScript literal
// for strings, numbers and booleans.
func writeJSON(buf *bytes.Buffer, v any) {
	data, _ := json.Marshal(v)
	buf.Write(data)
}
