package boundary

import (
	"io"
)

// Fallback writes the static view shown once a boundary has tripped. It must
// not depend on anything that can fail while rendering the wrapped tree.
type Fallback func(w io.Writer) error

const (
	FallbackTitle   = "Something went wrong"
	FallbackMessage = "Please try again later"
)

const fallbackHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>` + FallbackTitle + `</title>
</head>
<body>
<div class="af-fallback" role="alert">
<h2 class="af-fallback__title">` + FallbackTitle + `</h2>
<p class="af-fallback__message">` + FallbackMessage + `</p>
</div>
</body>
</html>
`

// HTMLFallback writes the default fallback document.
func HTMLFallback(w io.Writer) error {
	_, err := io.WriteString(w, fallbackHTML)
	return err
}

// TextFallback writes the fallback for terminal output.
func TextFallback(w io.Writer) error {
	_, err := io.WriteString(w, FallbackTitle+"\n"+FallbackMessage+"\n")
	return err
}
