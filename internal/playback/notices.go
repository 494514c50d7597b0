package playback

import (
	"fmt"
	"time"

	"github.com/VuDung/serenity/internal/domain"
)

// User-visible texts
const (
	MsgQueueCleared           = "Cleared video queue before playback."
	MsgQueueEmpty             = "Queue is empty."
	MsgContinuationDisabled   = "External player video queue support has not been enabled."
	MsgLaunchFailed           = "Unable to launch a video player."
	resumePromptTitle         = "Resume Video"
	resumePromptConfirm       = "Resume"
	resumePromptDeny          = "Restart"
	resumePromptMessageFormat = "Resume the video from %s or restart?"
)

func notice(kind domain.NoticeKind) domain.Notice {
	var msg string
	switch kind {
	case domain.NoticeQueueCleared:
		msg = MsgQueueCleared
	case domain.NoticeQueueEmpty:
		msg = MsgQueueEmpty
	case domain.NoticeContinuationUnsupported:
		msg = MsgContinuationDisabled
	case domain.NoticeLaunchFailed:
		msg = MsgLaunchFailed
	}
	return domain.Notice{Kind: kind, Message: msg}
}

// resumePrompt builds the Resume/Restart question for an offset
func resumePrompt(offset time.Duration) domain.Prompt {
	return domain.Prompt{
		Title:   resumePromptTitle,
		Message: fmt.Sprintf(resumePromptMessageFormat, domain.FormatOffset(offset)),
		Confirm: resumePromptConfirm,
		Deny:    resumePromptDeny,
	}
}
