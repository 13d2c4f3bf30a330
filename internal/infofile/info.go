package infofile

import (
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const versionKey = "version"

// SetVersion returns yamlText with its top-level version set to version.
// An existing value is replaced together with every line it spans, so the
// rest of the document, comments included, is untouched. Without one, the
// key is appended.
func SetVersion(yamlText, version string) (string, error) {
	value, err := scalar(version)
	if err != nil {
		return "", err
	}
	line := versionKey + ": " + value

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(yamlText), &doc); err != nil {
		return "", ErrInvalidInfo.Wrap(err)
	}
	if len(doc.Content) == 0 {
		return appendLine(yamlText, line), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return "", ErrInvalidInfo
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Value != versionKey {
			continue
		}
		if val.Kind != yaml.ScalarNode || val.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
			return "", ErrVersionType.WithContext("line", key.Line)
		}
		if val.LineComment != "" {
			line += " " + val.LineComment
		}
		lines := strings.Split(yamlText, "\n")
		start, end := key.Line-1, len(lines)
		if i+2 < len(root.Content) {
			end = root.Content[i+2].Line - 1
		}
		// Blank and comment lines before the next key are not part of the value.
		for end > val.Line && isTrivia(lines[end-1]) {
			end--
		}
		if strings.HasSuffix(lines[start], "\r") {
			line += "\r"
		}
		return strings.Join(slices.Replace(lines, start, end, line), "\n"), nil
	}
	return appendLine(yamlText, line), nil
}

func isTrivia(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, "#")
}

func appendLine(text, line string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + line + "\n"
}

// scalar renders s as a single-line YAML scalar, quoting when plain style
// would change its meaning.
func scalar(s string) (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", ErrInvalidInfo.Wrap(err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}
