// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
)

const (
	maxJSONBody   = 1 << 20  // 1MiB
	maxUploadBody = 10 << 20 // 10MiB
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeJSON は 1 つの JSON 値だけを受け付けます。空ボディはエラー。
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return errors.New("invalid json: trailing data")
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// ========================================
// Draft input
// ========================================

// formValue は文字列 / 数値 / 文字列配列 / null を受け付けるフォーム値です。
// 配列は ", " で連結します（tags を配列でも文字列でも送れるように）。
type formValue struct {
	set bool
	v   string
}

func (f *formValue) UnmarshalJSON(b []byte) error {
	f.set = true
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		f.v = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		return json.Unmarshal(b, &f.v)
	case len(b) > 0 && b[0] == '[':
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		f.v = catalogdom.JoinTags(items)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unsupported value %s", string(b))
		}
		f.v = n.String()
		return nil
	}
}

// draftInput は POST / PUT のボディです。送られた項目だけ下書きに上書きします。
type draftInput struct {
	Title       formValue `json:"title"`
	Description formValue `json:"description"`
	Category    formValue `json:"category"`
	ImageURL    formValue `json:"imageUrl"`
	Client      formValue `json:"client"`
	Tags        formValue `json:"tags"`
	Icon        formValue `json:"icon"`
	Color       formValue `json:"color"`
	Order       formValue `json:"order"`
}

func (in draftInput) apply(d *catalogdom.Draft) {
	set := func(dst *string, f formValue) {
		if f.set {
			*dst = f.v
		}
	}
	set(&d.Title, in.Title)
	set(&d.Description, in.Description)
	set(&d.Category, in.Category)
	set(&d.ImageURL, in.ImageURL)
	set(&d.Client, in.Client)
	set(&d.Tags, in.Tags)
	set(&d.Icon, in.Icon)
	set(&d.Color, in.Color)
	set(&d.Order, in.Order)
}

// draftFromForm は multipart のフィールドを draftInput に詰めます。
func draftFromForm(values map[string][]string) draftInput {
	get := func(key string) formValue {
		vs, ok := values[key]
		if !ok || len(vs) == 0 {
			return formValue{}
		}
		return formValue{set: true, v: vs[0]}
	}
	return draftInput{
		Title:       get("title"),
		Description: get("description"),
		Category:    get("category"),
		ImageURL:    get("imageUrl"),
		Client:      get("client"),
		Tags:        get("tags"),
		Icon:        get("icon"),
		Color:       get("color"),
		Order:       get("order"),
	}
}
