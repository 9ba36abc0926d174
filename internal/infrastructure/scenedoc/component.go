package scenedoc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bnema/ballistic/internal/domain/entity"
)

type componentData struct {
	Title    string
	Document string
	Ready    string
	SetValue string
}

// ComponentPage wraps doc in a page that announces itself to its parent frame
// and posts doc as the component value. Both messages target the page's own
// origin as read from window.location at runtime.
func ComponentPage(doc string) (string, error) {
	encode := func(s string) (string, error) {
		// json.Marshal escapes <, > and &, so the document cannot close the
		// surrounding script element.
		b, err := json.Marshal(s)
		return string(b), err
	}

	data := componentData{Title: "ballistic"}
	var err error
	if data.Document, err = encode(doc); err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	if data.Ready, err = encode(string(entity.MessageComponentReady)); err != nil {
		return "", err
	}
	if data.SetValue, err = encode(string(entity.MessageSetComponentValue)); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "component.html.tmpl", data); err != nil {
		return "", fmt.Errorf("render component page: %w", err)
	}
	return buf.String(), nil
}
