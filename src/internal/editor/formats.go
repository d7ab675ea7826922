package editor

import "strings"

const (
	DocumentTypeWord  = "word"
	DocumentTypeCell  = "cell"
	DocumentTypeSlide = "slide"
)

var documentTypes = map[string]string{
	"doc":  DocumentTypeWord,
	"docm": DocumentTypeWord,
	"docx": DocumentTypeWord,
	"dot":  DocumentTypeWord,
	"dotx": DocumentTypeWord,
	"epub": DocumentTypeWord,
	"html": DocumentTypeWord,
	"odt":  DocumentTypeWord,
	"ott":  DocumentTypeWord,
	"rtf":  DocumentTypeWord,
	"txt":  DocumentTypeWord,

	"csv":  DocumentTypeCell,
	"ods":  DocumentTypeCell,
	"ots":  DocumentTypeCell,
	"xls":  DocumentTypeCell,
	"xlsm": DocumentTypeCell,
	"xlsx": DocumentTypeCell,
	"xlt":  DocumentTypeCell,
	"xltx": DocumentTypeCell,

	"odp":  DocumentTypeSlide,
	"otp":  DocumentTypeSlide,
	"pot":  DocumentTypeSlide,
	"potx": DocumentTypeSlide,
	"pps":  DocumentTypeSlide,
	"ppsx": DocumentTypeSlide,
	"ppt":  DocumentTypeSlide,
	"pptm": DocumentTypeSlide,
	"pptx": DocumentTypeSlide,
}

// Only the current OOXML formats are round-trip safe for editing;
// everything else opens read-only.
var editableFormats = map[string]bool{
	"docx": true,
	"xlsx": true,
	"pptx": true,
}

// DocumentType maps a file extension to the editor's document type,
// returning "" for unsupported formats.
func DocumentType(extension string) string {
	return documentTypes[strings.ToLower(extension)]
}

// IsEditable reports whether the format can be opened for editing.
func IsEditable(extension string) bool {
	return editableFormats[strings.ToLower(extension)]
}
