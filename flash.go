package animalform

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Toast levels.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// toastsID is the element flashes are appended to.
const toastsID = "toasts"

// flashDismissMillis is how long a toast stays on screen.
const flashDismissMillis = 3000

// Flash is a one-time toast shipped alongside a re-render.
type Flash struct {
	Level   string
	Message string
}

// RenderFlashesOOB renders flashes as an out-of-band swap that appends them
// to the #toasts container. It returns "" when there is nothing to show.
func RenderFlashesOOB(flashes []Flash) string {
	if len(flashes) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div id="%s" hx-swap-oob="beforeend">`, toastsID)
	for _, f := range flashes {
		fmt.Fprintf(&b, `<div class="toast toast-%s" role="status" data-auto-dismiss="%d">%s</div>`,
			html.EscapeString(f.Level), flashDismissMillis, html.EscapeString(f.Message))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// ToastContainer is the target for RenderFlashesOOB. Place it once per page.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="%s" class="toast-container" aria-live="polite"></div>`, toastsID)
		return err
	})
}
