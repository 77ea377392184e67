// Package view renders the medreq screens to a terminal and drives them from
// CLI commands.
package view

import (
	"errors"
	"fmt"
	"io"

	"github.com/kart-io/logger"

	"github.com/kart-io/medreq/internal/medreq/form"
	"github.com/kart-io/medreq/pkg/client"
	errno "github.com/kart-io/medreq/pkg/errors"
)

// 这些错误在本地产生，使用自身的提示文本
var localErrors = []error{
	errno.ErrValidation,
	errno.ErrReadOnly,
	errno.ErrFormClosed,
	errno.ErrUnknownMedicine,
	errno.ErrNotAuthenticated,
}

// Describe returns the text shown for err: the local message for client-side
// rejections, otherwise the server message, otherwise fallback.
func Describe(err error, fallback [2]string, lang string) string {
	for _, local := range localErrors {
		if errors.Is(err, local) {
			return errno.FromError(err).Message(lang)
		}
	}
	return client.Message(err, form.Text(fallback, lang))
}

// Notifier prints transient success and failure lines.
type Notifier struct {
	out  io.Writer
	lang string
}

// NewNotifier writes to out using lang for messages.
func NewNotifier(out io.Writer, lang string) *Notifier {
	return &Notifier{out: out, lang: lang}
}

// Writer returns where notifications are printed.
func (n *Notifier) Writer() io.Writer { return n.out }

// Lang returns the notification language.
func (n *Notifier) Lang() string { return n.lang }

// Success prints a ✔ line.
func (n *Notifier) Success(msg [2]string) {
	text := form.Text(msg, n.lang)
	_, _ = fmt.Fprintf(n.out, "✔ %s\n", text)
	logger.Infow("notification", "level", "success", "message", text)
}

// SuccessText prints a ✔ line with a prepared text.
func (n *Notifier) SuccessText(text string) {
	_, _ = fmt.Fprintf(n.out, "✔ %s\n", text)
	logger.Infow("notification", "level", "success", "message", text)
}

// Fail prints a ✖ line for err, followed by any field errors, and returns err.
func (n *Notifier) Fail(err error, fallback [2]string) error {
	if err == nil {
		return nil
	}
	text := Describe(err, fallback, n.lang)
	_, _ = fmt.Fprintf(n.out, "✖ %s\n", text)

	var re *client.ResponseError
	if errors.As(err, &re) {
		for _, line := range re.FieldErrors() {
			_, _ = fmt.Fprintf(n.out, "  - %s\n", line)
		}
	}
	logger.Warnw("notification", "level", "error", "message", text, "error", err.Error())
	return err
}

// FieldErrors prints local field errors under a failure line.
func (n *Notifier) FieldErrors(errs form.FieldErrors) {
	for _, field := range sortedKeys(errs) {
		_, _ = fmt.Fprintf(n.out, "  - %s: %s\n", field, errs[field])
	}
}
