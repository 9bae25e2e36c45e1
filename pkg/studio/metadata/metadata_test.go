package metadata

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleParameters = "a hero standing on a cliff\n" +
	"Negative prompt: blurry, lowres\n" +
	"Steps: 20, Sampler: Euler a, CFG scale: 7, Seed: 123, Model hash: abc123"

// encodePNG renders a small image through the stdlib encoder.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// withTextChunk splices a tEXt chunk in after IHDR. The IHDR chunk occupies
// the 25 bytes following the 8-byte signature.
func withTextChunk(t *testing.T, data []byte, keyword, text string) []byte {
	t.Helper()

	payload := append([]byte(keyword), 0)
	payload = append(payload, []byte(text)...)
	return spliceChunk(t, data, "tEXt", payload)
}

// withInternationalTextChunk splices an uncompressed iTXt chunk in after IHDR.
func withInternationalTextChunk(t *testing.T, data []byte, keyword, text string) []byte {
	t.Helper()

	payload := append([]byte(keyword), 0)
	payload = append(payload, 0, 0) // compression flag and method
	payload = append(payload, 0)    // empty language tag
	payload = append(payload, 0)    // empty translated keyword
	payload = append(payload, []byte(text)...)
	return spliceChunk(t, data, "iTXt", payload)
}

func spliceChunk(t *testing.T, data []byte, chunkType string, payload []byte) []byte {
	t.Helper()

	chunk := make([]byte, 0, len(payload)+12)
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(payload)))
	chunk = append(chunk, []byte(chunkType)...)
	chunk = append(chunk, payload...)

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(payload)
	chunk = binary.BigEndian.AppendUint32(chunk, crc.Sum32())

	const ihdrEnd = 8 + 25
	require.Greater(t, len(data), ihdrEnd)

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out
}

func TestExtractWithParameters(t *testing.T) {
	data := withTextChunk(t, encodePNG(t, 4, 2), "parameters", sampleParameters)

	meta := New().Extract(bytes.NewReader(data))

	assert.Equal(t, 4, meta["width"])
	assert.Equal(t, 2, meta["height"])
	assert.Equal(t, sampleParameters, meta["raw_parameters"])
	assert.Equal(t, "a hero standing on a cliff", meta["prompt"])
	assert.Equal(t, "blurry, lowres", meta["negative_prompt"])
	assert.Equal(t, "Euler a", meta["sampler"])
	assert.Equal(t, 7.0, meta["cfg_scale"])
	assert.Equal(t, 123, meta["seed"])
	assert.Equal(t, "abc123", meta["model_hash"])
}

func TestExtractInternationalTextChunk(t *testing.T) {
	data := withInternationalTextChunk(t, encodePNG(t, 4, 2), "parameters", sampleParameters)

	meta := New().Extract(bytes.NewReader(data))
	assert.Equal(t, sampleParameters, meta["raw_parameters"])
	assert.Equal(t, "a hero standing on a cliff", meta["prompt"])
}

func TestExtractPlainImage(t *testing.T) {
	meta := New().Extract(bytes.NewReader(encodePNG(t, 4, 2)))

	assert.Equal(t, map[string]any{
		"width":          4,
		"height":         2,
		"raw_parameters": "",
	}, meta)
}

func TestExtractNoMarkers(t *testing.T) {
	// A parameters block without "Negative prompt:" or "Steps:" yields no
	// prompt fields at all, only the dimensional keys and the raw text.
	raw := "just some freeform text"
	data := withTextChunk(t, encodePNG(t, 4, 2), "parameters", raw)

	meta := New().Extract(bytes.NewReader(data))
	assert.Equal(t, map[string]any{
		"width":          4,
		"height":         2,
		"raw_parameters": raw,
	}, meta)
}

func TestExtractIgnoresOtherKeywords(t *testing.T) {
	data := withTextChunk(t, encodePNG(t, 4, 2), "Software", "some editor")

	meta := New().Extract(bytes.NewReader(data))
	assert.Equal(t, "", meta["raw_parameters"])
}

func TestExtractUndecodableStream(t *testing.T) {
	meta := New().Extract(strings.NewReader("not an image"))
	assert.Empty(t, meta)
}

func TestExtractFileMissing(t *testing.T) {
	meta := ExtractFile(filepath.Join(t.TempDir(), "does-not-exist.png"))
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}

func TestParseParameters(t *testing.T) {
	t.Run("full block", func(t *testing.T) {
		fields := ParseParameters(sampleParameters)
		assert.Equal(t, "a hero standing on a cliff", fields["prompt"])
		assert.Equal(t, "blurry, lowres", fields["negative_prompt"])
		assert.Equal(t, "Euler a", fields["sampler"])
		assert.Equal(t, 7.0, fields["cfg_scale"])
		assert.Equal(t, 123, fields["seed"])
		assert.Equal(t, "abc123", fields["model_hash"])
		// The step count is a delimiter, never a field.
		assert.NotContains(t, fields, "steps")
	})

	t.Run("no negative prompt", func(t *testing.T) {
		fields := ParseParameters("a castle\nSteps: 30, Seed: 42")
		assert.Equal(t, "a castle", fields["prompt"])
		assert.NotContains(t, fields, "negative_prompt")
		assert.Equal(t, 42, fields["seed"])
	})

	t.Run("negative prompt without params tail", func(t *testing.T) {
		fields := ParseParameters("a castle\nNegative prompt: fog")
		assert.Equal(t, "a castle", fields["prompt"])
		assert.Equal(t, "fog", fields["negative_prompt"])
		assert.NotContains(t, fields, "seed")
	})

	t.Run("partial params tail", func(t *testing.T) {
		fields := ParseParameters("a castle\nSteps: 30, Sampler: DPM++ 2M")
		assert.Equal(t, "DPM++ 2M", fields["sampler"])
		assert.NotContains(t, fields, "seed")
		assert.NotContains(t, fields, "cfg_scale")
		assert.NotContains(t, fields, "model_hash")
	})

	t.Run("no markers", func(t *testing.T) {
		assert.Empty(t, ParseParameters("freeform text with no markers"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ParseParameters(""))
	})
}
