package infofile

import (
	"encoding/json"
	"strings"
)

// SetManifestVersion rewrites the top-level "version" string of a
// composer.json document in place. When the manifest declares no version the
// text is returned unchanged and changed is false.
func SetManifestVersion(jsonText, version string) (updated string, changed bool, err error) {
	dec := json.NewDecoder(strings.NewReader(jsonText))
	tok, err := dec.Token()
	if err != nil {
		return "", false, ErrInvalidManifest.Wrap(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return "", false, ErrInvalidManifest
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", false, ErrInvalidManifest.Wrap(err)
		}
		key, _ := tok.(string)
		keyEnd := int(dec.InputOffset())
		if key != versionKey {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return "", false, ErrInvalidManifest.Wrap(err)
			}
			continue
		}

		tok, err = dec.Token()
		if err != nil {
			return "", false, ErrInvalidManifest.Wrap(err)
		}
		if _, ok := tok.(string); !ok {
			return "", false, ErrVersionType
		}
		end := int(dec.InputOffset())
		start := keyEnd + strings.IndexByte(jsonText[keyEnd:end], '"')
		quoted, err := json.Marshal(version)
		if err != nil {
			return "", false, ErrInvalidManifest.Wrap(err)
		}
		return jsonText[:start] + string(quoted) + jsonText[end:], true, nil
	}
	return jsonText, false, nil
}
