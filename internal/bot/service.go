package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/ytget/yt-telegram-bot/internal/config"
	"github.com/ytget/yt-telegram-bot/internal/platform"
	"github.com/ytget/yt-telegram-bot/internal/resolver"
	"github.com/ytget/yt-telegram-bot/internal/session"
)

// Timeout constants
const (
	// pollTimeout is the long-poll window for fetching updates.
	pollTimeout = 10 * time.Second

	// discoverTimeout bounds one format-discovery probe.
	discoverTimeout = 60 * time.Second
)

// Service handles chat events and drives the download flow.
type Service struct {
	bot         *tele.Bot
	store       *session.Store
	resolver    resolver.Resolver
	downloadDir string
	log         *slog.Logger
}

// NewService creates the bot service and registers its handlers. The bot's
// HTTP client carries the configured upload timeout so large video uploads
// are not cut short by default request deadlines.
func NewService(cfg *config.Config, store *session.Store, res resolver.Resolver, log *slog.Logger) (*Service, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
		Client: &http.Client{Timeout: cfg.UploadTimeout},
		OnError: func(err error, c tele.Context) {
			// Handler errors end here so no single event can kill the poller.
			log.Error("handler error", "err", err)
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	s := &Service{
		bot:         b,
		store:       store,
		resolver:    res,
		downloadDir: cfg.DownloadDir,
		log:         log,
	}
	s.registerHandlers()
	return s, nil
}

// Start begins long-polling for updates. Blocks until Stop is called.
func (s *Service) Start() {
	s.log.Info("bot started", "username", s.bot.Me.Username)
	s.bot.Start()
}

// Stop terminates the update loop.
func (s *Service) Stop() {
	s.bot.Stop()
}

func (s *Service) registerHandlers() {
	s.bot.Handle("/start", s.handleStart)
	s.bot.Handle(&btnEnterLink, s.handleEnterLink)
	s.bot.Handle(&btnQuality, s.handleQuality)
	s.bot.Handle(tele.OnText, s.handleLink)
}

func (s *Service) handleStart(c tele.Context) error {
	return c.Send(msgWelcome, enterLinkMenu(labelEnterLink))
}

func (s *Service) handleEnterLink(c tele.Context) error {
	_ = c.Respond()
	return c.Send(msgAskLink)
}

// handleLink treats any plain text message as a candidate video URL:
// validate, normalize, discover qualities, cache the session, and offer the
// top resolutions.
func (s *Service) handleLink(c tele.Context) error {
	userID := c.Sender().ID
	raw := strings.TrimSpace(c.Text())

	if !platform.IsVideoURL(raw) {
		s.log.Info("rejected link", "user", userID)
		return c.Send(msgInvalidLink)
	}

	// Normalize first: a watch link playing inside a playlist carries a
	// &list= tail that stripping removes, and the single video is still
	// downloadable. Only links that remain playlist-shaped are refused.
	url := platform.NormalizeURL(raw)
	if platform.IsPlaylistURL(url) {
		return c.Send(msgPlaylistLink)
	}

	ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout)
	defer cancel()

	formats, err := s.resolver.Discover(ctx, url)
	if errors.Is(err, resolver.ErrNoFormats) {
		return c.Send(msgNoFormats)
	}
	if err != nil {
		s.log.Error("format discovery failed", "user", userID, "url", url, "err", err)
		return c.Send(msgDiscoverFailed)
	}

	s.store.Put(userID, url, formats)
	s.log.Info("session created", "user", userID, "url", url, "formats", len(formats))

	return c.Send(msgChooseQuality, qualityMenu(TopHeights(formats, MaxQualityChoices)))
}

// handleQuality reads the cached session for the pressing user and runs the
// download at the chosen height. An absent or expired session is a normal
// alternate path, not a fault.
func (s *Service) handleQuality(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID

	height, err := strconv.Atoi(strings.TrimSpace(c.Data()))
	if err != nil {
		s.log.Info("malformed quality payload", "user", userID, "data", c.Data())
		return c.Send(msgSessionExpired)
	}

	sess, ok := s.store.Get(userID)
	if !ok {
		return c.Send(msgSessionExpired)
	}

	if err := c.Send(fmt.Sprintf(msgDownloading, height)); err != nil {
		return err
	}
	return s.runDownload(c, sess, height)
}
