package cases

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
)

// Kind identifies the type of a case section.
type Kind string

const (
	KindImage           Kind = "image"
	KindQuestion        Kind = "question"
	KindThinking        Kind = "thinking"
	KindCode            Kind = "code"
	KindGeneratedImages Kind = "generated_images"
	KindAnswer          Kind = "answer"
)

// Kinds lists every recognized section kind in display order.
var Kinds = []Kind{KindImage, KindQuestion, KindThinking, KindCode, KindGeneratedImages, KindAnswer}

// Known reports whether k is one of the recognized section kinds.
func (k Kind) Known() bool {
	switch k {
	case KindImage, KindQuestion, KindThinking, KindCode, KindGeneratedImages, KindAnswer:
		return true
	}
	return false
}

// Document is the top-level case document, usually static/data/cases.json.
type Document struct {
	Cases []Case `json:"cases"`
}

// Case is one reasoning transcript shown as a tab in the gallery.
type Case struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"` // nil when the key is missing or null

	// Err holds the problems met while decoding the case itself. A bad case
	// never fails the document; it renders as an error of its own.
	Err error `json:"-"`
}

// Section is a tagged union over the section kinds. Payload holds one of
// *Image, *Text, *Thinking, *Code or *GeneratedImages, or nil for an
// unknown kind or a payload that failed to decode (Raw keeps the undecoded
// data, Err the decode failure).
type Section struct {
	Kind    Kind
	Payload Payload
	Raw     json.RawMessage
	Err     error
}

// caseJSON is the wire form of a Case, decoded field by field.
type caseJSON struct {
	ID          json.RawMessage `json:"id"`
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
	Sections    json.RawMessage `json:"sections"`
}

// UnmarshalJSON decodes a case leniently: mistyped fields and sections are
// recorded in Err and on the sections instead of failing the document.
func (c *Case) UnmarshalJSON(data []byte) error {
	*c = Case{}
	var w caseJSON
	if err := json.Unmarshal(data, &w); err != nil {
		c.Err = errors.New("case is not an object")
		return nil
	}

	c.Err = multierr.Combine(
		decodeField("id", w.ID, &c.ID),
		decodeField("title", w.Title, &c.Title),
		decodeField("description", w.Description, &c.Description),
	)

	if isNull(w.Sections) {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(w.Sections, &raw); err != nil {
		c.Err = multierr.Append(c.Err, errors.New("sections is not a list"))
		return nil
	}
	c.Sections = make([]Section, len(raw))
	for i, r := range raw {
		_ = c.Sections[i].UnmarshalJSON(r)
	}
	return nil
}

// Problems returns the decode errors of the case and its sections, or nil.
func (c *Case) Problems() error {
	err := c.Err
	for i, s := range c.Sections {
		if s.Err != nil {
			err = multierr.Append(err, fmt.Errorf("section %d: %w", i, s.Err))
		}
	}
	return err
}

func decodeField(name string, raw json.RawMessage, dst any) error {
	if isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// Payload is implemented by every kind-specific section payload.
type Payload interface {
	sectionKind() Kind
}

// Image is the payload of an image section and of each generated image.
type Image struct {
	Src     string `json:"src"`
	Caption string `json:"caption,omitempty"`
	Width   int    `json:"width,omitempty"`
}

// Text is the payload of question and answer sections.
type Text struct {
	Text string `json:"text"`
	kind Kind
}

// Thinking is the payload of a thinking section.
type Thinking struct {
	Text  string  `json:"text"`
	Round RoundID `json:"round,omitempty"`
}

// Code is the payload of a code section.
type Code struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

// Result is a textual generated result, run through the formatter on display.
type Result struct {
	Value   string `json:"value"`
	Caption string `json:"caption,omitempty"`
}

// GeneratedImages is the payload of a generated_images section. Either list
// may be absent.
type GeneratedImages struct {
	Images  []Image  `json:"images,omitempty"`
	Results []Result `json:"results,omitempty"`
}

func (*Image) sectionKind() Kind           { return KindImage }
func (t *Text) sectionKind() Kind          { return t.kind }
func (*Thinking) sectionKind() Kind        { return KindThinking }
func (*Code) sectionKind() Kind            { return KindCode }
func (*GeneratedImages) sectionKind() Kind { return KindGeneratedImages }

// NewQuestion returns a question section with the given text.
func NewQuestion(text string) Section {
	return Section{Kind: KindQuestion, Payload: &Text{Text: text, kind: KindQuestion}}
}

// NewAnswer returns an answer section with the given text.
func NewAnswer(text string) Section {
	return Section{Kind: KindAnswer, Payload: &Text{Text: text, kind: KindAnswer}}
}

// NewThinking returns a thinking section. An empty round means ungrouped.
func NewThinking(text, round string) Section {
	return Section{Kind: KindThinking, Payload: &Thinking{Text: text, Round: RoundID(round)}}
}

// NewCode returns a code section.
func NewCode(code, language string) Section {
	return Section{Kind: KindCode, Payload: &Code{Code: code, Language: language}}
}

// NewImage returns an image section.
func NewImage(img Image) Section {
	return Section{Kind: KindImage, Payload: &img}
}

// NewGeneratedImages returns a generated_images section.
func NewGeneratedImages(g GeneratedImages) Section {
	return Section{Kind: KindGeneratedImages, Payload: &g}
}

// RoundID groups thinking sections. The document may carry it as a JSON
// string or number; both compare as their decimal/string form.
type RoundID string

// UnmarshalJSON accepts strings, numbers and null.
func (r *RoundID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RoundID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("round must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*r = RoundID(strconv.FormatInt(i, 10))
		return nil
	}
	*r = RoundID(n.String())
	return nil
}

// sectionJSON is the wire form of a Section.
type sectionJSON struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the {type, data} wire form into a typed payload.
// It never fails: unknown kinds keep a nil Payload so the renderer can skip
// them, and malformed sections keep a nil Payload with the cause in Err.
func (s *Section) UnmarshalJSON(data []byte) error {
	*s = Section{}
	var w sectionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		s.Raw = append(json.RawMessage(nil), data...)
		s.Err = fmt.Errorf("malformed section: %w", err)
		return nil
	}
	s.Kind = w.Type
	s.Raw = w.Data

	if isNull(w.Data) {
		w.Data = []byte("{}")
	}

	var p Payload
	switch w.Type {
	case KindImage:
		p = &Image{}
	case KindQuestion, KindAnswer:
		p = &Text{kind: w.Type}
	case KindThinking:
		p = &Thinking{}
	case KindCode:
		p = &Code{}
	case KindGeneratedImages:
		p = &GeneratedImages{}
	default:
		return nil
	}
	if err := json.Unmarshal(w.Data, p); err != nil {
		s.Err = fmt.Errorf("decoding %s section: %w", w.Type, err)
		return nil
	}
	s.Payload = p
	return nil
}

// MarshalJSON writes the {type, data} wire form.
func (s Section) MarshalJSON() ([]byte, error) {
	w := sectionJSON{Type: s.Kind}
	if s.Payload == nil {
		w.Data = s.Raw
		if len(w.Data) == 0 {
			w.Data = []byte("{}")
		}
		return json.Marshal(w)
	}
	data, err := json.Marshal(s.Payload)
	if err != nil {
		return nil, err
	}
	w.Data = data
	return json.Marshal(w)
}

// Round returns the thinking round of s, or "" when s is not a thinking
// section or carries no round.
func (s Section) Round() string {
	if t, ok := s.Payload.(*Thinking); ok {
		return string(t.Round)
	}
	return ""
}

// Find returns the case with the given id.
func (d *Document) Find(id int) (*Case, bool) {
	for i := range d.Cases {
		if d.Cases[i].ID == id {
			return &d.Cases[i], true
		}
	}
	return nil, false
}
