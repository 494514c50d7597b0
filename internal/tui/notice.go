package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/tui/styles"
)

// Notifier prints notices as single styled lines
type Notifier struct {
	out io.Writer
}

// NewNotifier creates a notifier writing to out, or stderr when out is nil
func NewNotifier(out io.Writer) *Notifier {
	if out == nil {
		out = os.Stderr
	}
	return &Notifier{out: out}
}

// Notify prints the notice
func (n *Notifier) Notify(notice domain.Notice) {
	fmt.Fprintln(n.out, renderNotice(notice))
}

func renderNotice(notice domain.Notice) string {
	switch notice.Kind {
	case domain.NoticeLaunchFailed:
		return styles.ErrorStyle.Render("✗ " + notice.Message)
	case domain.NoticeQueueCleared:
		return styles.AccentStyle.Render("• " + notice.Message)
	default:
		return styles.DimStyle.Render("! " + notice.Message)
	}
}

var _ domain.Notifier = (*Notifier)(nil)
