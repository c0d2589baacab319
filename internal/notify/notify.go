package notify

import (
	"log"
	"os/exec"
)

// Kind identifies the notification categories the engine emits.
type Kind string

const (
	KindIdleWarning     Kind = "idle-warning"
	KindSessionComplete Kind = "session-complete"
	KindModeChanged     Kind = "mode-changed"
)

// Notifier delivers a user-facing notice. Delivery is fire-and-forget: a
// failed delivery is logged, never retried, and never propagated back into
// the session lifecycle.
type Notifier interface {
	Notify(kind Kind, title, body string)
}

// LogNotifier writes notices to the process log. Used when no desktop
// notification tool is available, and as the test default.
type LogNotifier struct{}

func (LogNotifier) Notify(kind Kind, title, body string) {
	log.Printf("notify [%s] %s: %s", kind, title, body)
}

// DesktopNotifier shells out to notify-send.
type DesktopNotifier struct {
	bin string
}

// New returns a desktop notifier when notify-send is on PATH, otherwise a
// log notifier.
func New() Notifier {
	if path, err := exec.LookPath("notify-send"); err == nil {
		return &DesktopNotifier{bin: path}
	}
	log.Println("notify-send not found, notifications go to the log")
	return LogNotifier{}
}

func (n *DesktopNotifier) Notify(kind Kind, title, body string) {
	cmd := exec.Command(n.bin, "--app-name=focusd", title, body)
	if err := cmd.Run(); err != nil {
		log.Printf("notify [%s] delivery failed: %v", kind, err)
	}
}
