package bot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"

	"github.com/ytget/yt-telegram-bot/internal/metrics"
	"github.com/ytget/yt-telegram-bot/internal/model"
	"github.com/ytget/yt-telegram-bot/internal/platform"
	"github.com/ytget/yt-telegram-bot/internal/resolver"
)

// replier is the slice of tele.Context the download operation needs.
type replier interface {
	Send(what interface{}, opts ...interface{}) error
}

// runDownload performs one resolver-mediated download and delivers the result
// to the chat. The artifact is removed on every exit path: success, size-cap
// failure, resolver error, and upload failure alike.
func (s *Service) runDownload(r replier, sess model.Session, height int) error {
	path := filepath.Join(s.downloadDir, artifactName(sess.UserID, time.Now()))

	defer func() {
		if err := platform.RemoveIfExists(path); err != nil {
			s.log.Error("artifact cleanup failed", "path", path, "err", err)
		}
	}()

	metrics.DownloadsStarted.Inc()

	// No overall deadline here: the resolver's socket timeout bounds stalls,
	// and there is no user-facing cancel.
	if err := s.resolver.Download(context.Background(), sess.URL, height, path); err != nil {
		metrics.DownloadsFailed.WithLabelValues(failureReason(err)).Inc()
		s.log.Error("download failed",
			"user", sess.UserID, "url", sess.URL, "height", height, "err", err)
		return r.Send(failureMessage(err))
	}

	if err := r.Send(msgUploading); err != nil {
		s.log.Error("status message failed", "user", sess.UserID, "err", err)
	}

	video := &tele.Video{
		File:      tele.FromDisk(path),
		FileName:  "video.mp4",
		MIME:      "video/mp4",
		Streaming: true,
	}
	if err := r.Send(video); err != nil {
		metrics.DownloadsFailed.WithLabelValues(metrics.ReasonTransport).Inc()
		s.log.Error("upload failed", "user", sess.UserID, "err", err)
		return r.Send(msgUploadFailed)
	}

	metrics.DownloadsSucceeded.Inc()
	s.log.Info("download delivered", "user", sess.UserID, "height", height)
	return r.Send(msgDone, enterLinkMenu(labelDownloadAnother))
}

// artifactName builds a unique transient file name from the user and the
// creation time. The random suffix keeps concurrent invocations for the same
// user from colliding within one second.
func artifactName(userID int64, now time.Time) string {
	return fmt.Sprintf("download_%d_%d_%s.mp4", userID, now.Unix(), uuid.NewString()[:8])
}

// failureMessage maps a download error to its user-facing category.
func failureMessage(err error) string {
	var tooLarge *resolver.TooLargeError
	if errors.As(err, &tooLarge) {
		return fmt.Sprintf(msgTooLarge, float64(tooLarge.Size)/1024/1024)
	}
	return msgDownloadFailed
}

// failureReason maps a download error to its metrics label.
func failureReason(err error) string {
	var tooLarge *resolver.TooLargeError
	switch {
	case errors.As(err, &tooLarge):
		return metrics.ReasonTooLarge
	case errors.Is(err, resolver.ErrNoOutput):
		return metrics.ReasonNoOutput
	default:
		return metrics.ReasonResolver
	}
}
