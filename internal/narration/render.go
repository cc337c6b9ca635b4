package narration

import (
	"encoding/xml"
	"strings"

	"golang.org/x/text/language"
)

// DefaultAudioBaseURL is where the skill's sound effects are hosted.
const DefaultAudioBaseURL = "https://www.benjamindring.co.uk/Resources/MysteriousHouse/"

// Output is a rendered script.
type Output struct {
	Locale      language.Tag
	SSML        string
	CardTitle   string
	CardContent string
	Reprompt    string
}

// Renderer localizes scripts.
type Renderer struct {
	catalog   *Catalog
	audioBase string
}

// NewRenderer creates a renderer. An empty audioBaseURL uses the default.
func NewRenderer(catalog *Catalog, audioBaseURL string) *Renderer {
	if audioBaseURL == "" {
		audioBaseURL = DefaultAudioBaseURL
	}
	if !strings.HasSuffix(audioBaseURL, "/") {
		audioBaseURL += "/"
	}
	return &Renderer{catalog: catalog, audioBase: audioBaseURL}
}

// Catalog returns the renderer's catalog.
func (r *Renderer) Catalog() *Catalog {
	return r.catalog
}

// AudioURL returns the absolute URL of a cue.
func (r *Renderer) AudioURL(cue Cue) string {
	file, ok := cueFiles[cue]
	if !ok {
		return ""
	}
	return r.audioBase + file
}

// Render localizes a script for the request locale.
func (r *Renderer) Render(locale string, s Script) Output {
	tag := r.catalog.Match(locale)

	var ssml, card strings.Builder
	ssml.WriteString("<speak>")
	for _, seg := range s.Speech {
		if seg.Cue != "" {
			if url := r.AudioURL(seg.Cue); url != "" {
				ssml.WriteString(`<audio src="`)
				xml.EscapeText(&ssml, []byte(url))
				ssml.WriteString(`"/>`)
			}
			continue
		}
		text := r.catalog.Text(tag, seg.Key, seg.Args...)
		xml.EscapeText(&ssml, []byte(text))
		card.WriteString(text)
	}
	ssml.WriteString("</speak>")

	out := Output{
		Locale:      tag,
		SSML:        ssml.String(),
		CardContent: strings.TrimSpace(card.String()),
	}
	if s.Title != "" {
		out.CardTitle = strings.TrimSpace(r.catalog.Text(tag, s.Title))
	}
	if s.Reprompt != "" {
		out.Reprompt = strings.TrimSpace(r.catalog.Text(tag, s.Reprompt))
	}
	return out
}
