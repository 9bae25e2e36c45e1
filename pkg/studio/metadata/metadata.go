// Package metadata recovers generation-tool metadata embedded in uploaded
// images. Stable Diffusion WebUI writes its settings into a PNG text chunk
// keyed "parameters"; the stdlib png decoder drops ancillary chunks, so the
// chunk stream is scanned directly.
package metadata

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	negativePromptMarker = "Negative prompt:"
	stepsMarker          = "Steps:"
	parametersKeyword    = "parameters"
)

var (
	seedRe      = regexp.MustCompile(`Seed: (\d+)`)
	modelHashRe = regexp.MustCompile(`Model hash: ([a-f0-9]+)`)
	samplerRe   = regexp.MustCompile(`Sampler: ([^,]+)`)
	cfgScaleRe  = regexp.MustCompile(`CFG scale: ([\d.]+)`)
)

// Extractor implements studio.MetadataExtractor. Extraction never fails the
// caller: any error degrades to an empty map.
type Extractor struct{}

// New creates a new Extractor.
func New() *Extractor { return &Extractor{} }

// Extract decodes the image and returns its structured metadata. A stream
// that cannot be read or decoded yields an empty map. A decodable image
// always yields width, height and raw_parameters (empty string when no
// embedded block exists).
func (e *Extractor) Extract(reader io.Reader) map[string]any {
	data, err := io.ReadAll(reader)
	if err != nil {
		return map[string]any{}
	}
	return extract(data)
}

// ExtractFile reads and extracts metadata from an image on disk. A missing
// file yields an empty map.
func ExtractFile(path string) map[string]any {
	f, err := os.Open(path)
	if err != nil {
		return map[string]any{}
	}
	defer f.Close()

	return New().Extract(f)
}

func extract(data []byte) map[string]any {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return map[string]any{}
	}

	meta := map[string]any{
		"width":          cfg.Width,
		"height":         cfg.Height,
		"raw_parameters": "",
	}

	if raw, ok := pngTextChunk(data, parametersKeyword); ok {
		meta["raw_parameters"] = raw
		for k, v := range ParseParameters(raw) {
			meta[k] = v
		}
	}

	return meta
}

// ParseParameters parses a generation-tool parameters block into structured
// fields. The block convention is:
//
//	<prompt>
//	Negative prompt: <negative prompt>
//	Steps: 20, Sampler: Euler a, CFG scale: 7, Seed: 123, Model hash: abc123
//
// Both markers are optional. A block containing neither marker yields no
// fields at all; a partial parameter tail yields only the keys that matched.
// The step count itself is used purely as a delimiter and is not stored.
func ParseParameters(raw string) map[string]any {
	fields := make(map[string]any)
	var paramsText string

	if prompt, remaining, found := strings.Cut(raw, negativePromptMarker); found {
		fields["prompt"] = strings.TrimSpace(prompt)
		if negative, params, ok := strings.Cut(remaining, stepsMarker); ok {
			fields["negative_prompt"] = strings.TrimSpace(negative)
			paramsText = stepsMarker + params
		} else {
			fields["negative_prompt"] = strings.TrimSpace(remaining)
		}
	} else if prompt, params, ok := strings.Cut(raw, stepsMarker); ok {
		fields["prompt"] = strings.TrimSpace(prompt)
		paramsText = stepsMarker + params
	}

	if paramsText != "" {
		if m := seedRe.FindStringSubmatch(paramsText); m != nil {
			if seed, err := strconv.Atoi(m[1]); err == nil {
				fields["seed"] = seed
			}
		}
		if m := modelHashRe.FindStringSubmatch(paramsText); m != nil {
			fields["model_hash"] = m[1]
		}
		if m := samplerRe.FindStringSubmatch(paramsText); m != nil {
			fields["sampler"] = strings.TrimSpace(m[1])
		}
		if m := cfgScaleRe.FindStringSubmatch(paramsText); m != nil {
			if cfg, err := strconv.ParseFloat(m[1], 64); err == nil {
				fields["cfg_scale"] = cfg
			}
		}
	}

	return fields
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pngTextChunk scans a PNG chunk stream for a tEXt or iTXt chunk with the
// given keyword and returns its text.
func pngTextChunk(data []byte, keyword string) (string, bool) {
	if !bytes.HasPrefix(data, pngSignature) {
		return "", false
	}

	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		chunkType := string(data[pos+4 : pos+8])
		start := pos + 8
		end := start + length
		if length < 0 || end > len(data) {
			return "", false
		}

		switch chunkType {
		case "tEXt":
			if text, ok := parseTextChunk(data[start:end], keyword); ok {
				return text, true
			}
		case "iTXt":
			if text, ok := parseInternationalTextChunk(data[start:end], keyword); ok {
				return text, true
			}
		case "IEND":
			return "", false
		}

		pos = end + 4 // skip CRC
	}

	return "", false
}

// parseTextChunk parses a tEXt payload: keyword, NUL, latin-1 text.
func parseTextChunk(payload []byte, keyword string) (string, bool) {
	sep := bytes.IndexByte(payload, 0)
	if sep < 0 || string(payload[:sep]) != keyword {
		return "", false
	}
	return string(payload[sep+1:]), true
}

// parseInternationalTextChunk parses an iTXt payload: keyword, NUL,
// compression flag and method, language tag, NUL, translated keyword, NUL,
// UTF-8 text. Compressed payloads are ignored.
func parseInternationalTextChunk(payload []byte, keyword string) (string, bool) {
	sep := bytes.IndexByte(payload, 0)
	if sep < 0 || string(payload[:sep]) != keyword {
		return "", false
	}

	rest := payload[sep+1:]
	if len(rest) < 2 || rest[0] != 0 { // compression flag
		return "", false
	}
	rest = rest[2:]

	for i := 0; i < 2; i++ { // language tag, translated keyword
		sep = bytes.IndexByte(rest, 0)
		if sep < 0 {
			return "", false
		}
		rest = rest[sep+1:]
	}

	return string(rest), true
}
