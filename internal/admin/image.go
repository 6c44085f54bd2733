package admin

import (
	"encoding/base64"
	"net/http"
)

// StagedImage is a file chosen for upload, kept as-is until submit.
type StagedImage struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImagePicker holds the optional staged file and its inline preview.
// File types are not checked here; the server decides what it accepts.
type ImagePicker struct {
	File    *StagedImage
	Preview string // data: URL
}

// Pick stages f. A nil f (selection cancelled) leaves the picker unchanged.
func (p *ImagePicker) Pick(f *StagedImage) {
	if f == nil {
		return
	}
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	p.File = f
	p.Preview = "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

func (p *ImagePicker) Clear() {
	p.File = nil
	p.Preview = ""
}
