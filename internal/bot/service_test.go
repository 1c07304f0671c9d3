package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/ytget/yt-telegram-bot/internal/resolver"
	"github.com/ytget/yt-telegram-bot/internal/session"
)

// fakeChat implements the slice of tele.Context the handlers touch. The
// embedded interface covers the rest; an unstubbed method panics, which is
// exactly what a test wants.
type fakeChat struct {
	tele.Context
	user *tele.User
	text string
	data string
	sent []interface{}
}

func (f *fakeChat) Sender() *tele.User { return f.user }
func (f *fakeChat) Text() string       { return f.text }
func (f *fakeChat) Data() string       { return f.data }

func (f *fakeChat) Respond(resp ...*tele.CallbackResponse) error { return nil }

func (f *fakeChat) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func chatTexts(c *fakeChat) []string {
	var out []string
	for _, s := range c.sent {
		if text, ok := s.(string); ok {
			out = append(out, text)
		}
	}
	return out
}

func newHandlerService(t *testing.T, res resolver.Resolver) (*Service, *session.Store) {
	store := session.NewStore(time.Hour, time.Hour, slog.Default())
	svc := &Service{
		store:       store,
		resolver:    res,
		downloadDir: t.TempDir(),
		log:         slog.Default(),
	}
	return svc, store
}

func TestHandleQuality_NoSession(t *testing.T) {
	res := &fakeResolver{
		downloadFn: func(_ context.Context, _ string, _ int, _ string) error {
			t.Error("Download must not run without a stored session")
			return nil
		},
	}
	svc, _ := newHandlerService(t, res)
	c := &fakeChat{user: &tele.User{ID: 42}, data: "720"}

	if err := svc.handleQuality(c); err != nil {
		t.Fatalf("handleQuality returned error: %v", err)
	}
	texts := chatTexts(c)
	if len(texts) != 1 || texts[0] != msgSessionExpired {
		t.Errorf("Expected session expired message, got %v", texts)
	}
}

func TestHandleQuality_MalformedPayload(t *testing.T) {
	svc, _ := newHandlerService(t, &fakeResolver{})
	c := &fakeChat{user: &tele.User{ID: 42}, data: "not-a-height"}

	if err := svc.handleQuality(c); err != nil {
		t.Fatalf("handleQuality returned error: %v", err)
	}
	texts := chatTexts(c)
	if len(texts) != 1 || texts[0] != msgSessionExpired {
		t.Errorf("Expected session expired message, got %v", texts)
	}
}

func TestHandleLink_InvalidURL(t *testing.T) {
	res := &fakeResolver{}
	svc, store := newHandlerService(t, res)
	c := &fakeChat{user: &tele.User{ID: 42}, text: "https://example.com/watch?v=abc"}

	if err := svc.handleLink(c); err != nil {
		t.Fatalf("handleLink returned error: %v", err)
	}
	texts := chatTexts(c)
	if len(texts) != 1 || texts[0] != msgInvalidLink {
		t.Errorf("Expected invalid link message, got %v", texts)
	}
	if len(res.discovered) != 0 {
		t.Errorf("Resolver must not be invoked, got %v", res.discovered)
	}
	if store.Len() != 0 {
		t.Errorf("Expected no sessions, got %d", store.Len())
	}
}

// A watch link playing inside a playlist carries a &list= tail; stripping it
// leaves a downloadable single video, so discovery must run on the
// normalized URL instead of refusing the link.
func TestHandleLink_WatchLinkWithPlaylistTail(t *testing.T) {
	res := &fakeResolver{
		discoverFn: func(_ context.Context, _ string) (map[int]string, error) {
			return map[int]string{360: "18", 720: "136"}, nil
		},
	}
	svc, store := newHandlerService(t, res)
	c := &fakeChat{
		user: &tele.User{ID: 42},
		text: "https://www.youtube.com/watch?v=abc123&list=PLx&index=3",
	}

	if err := svc.handleLink(c); err != nil {
		t.Fatalf("handleLink returned error: %v", err)
	}

	want := "https://www.youtube.com/watch?v=abc123"
	if len(res.discovered) != 1 || res.discovered[0] != want {
		t.Errorf("Expected discovery on %q, got %v", want, res.discovered)
	}
	sess, ok := store.Get(42)
	if !ok {
		t.Fatal("Expected a stored session")
	}
	if sess.URL != want {
		t.Errorf("Expected session URL %q, got %q", want, sess.URL)
	}
	texts := chatTexts(c)
	if len(texts) == 0 || texts[len(texts)-1] != msgChooseQuality {
		t.Errorf("Expected quality prompt, got %v", texts)
	}
}

func TestHandleLink_PlaylistOnly(t *testing.T) {
	res := &fakeResolver{}
	svc, store := newHandlerService(t, res)
	c := &fakeChat{
		user: &tele.User{ID: 42},
		text: "https://www.youtube.com/playlist?list=PLx",
	}

	if err := svc.handleLink(c); err != nil {
		t.Fatalf("handleLink returned error: %v", err)
	}
	texts := chatTexts(c)
	if len(texts) != 1 || texts[0] != msgPlaylistLink {
		t.Errorf("Expected playlist refusal, got %v", texts)
	}
	if len(res.discovered) != 0 {
		t.Errorf("Resolver must not be invoked, got %v", res.discovered)
	}
	if store.Len() != 0 {
		t.Errorf("Expected no sessions, got %d", store.Len())
	}
}

func TestHandleLink_NoFormats(t *testing.T) {
	res := &fakeResolver{
		discoverFn: func(_ context.Context, _ string) (map[int]string, error) {
			return nil, resolver.ErrNoFormats
		},
	}
	svc, store := newHandlerService(t, res)
	c := &fakeChat{user: &tele.User{ID: 42}, text: "https://www.youtube.com/watch?v=abc123"}

	if err := svc.handleLink(c); err != nil {
		t.Fatalf("handleLink returned error: %v", err)
	}
	texts := chatTexts(c)
	if len(texts) != 1 || texts[0] != msgNoFormats {
		t.Errorf("Expected no-formats message, got %v", texts)
	}
	if store.Len() != 0 {
		t.Errorf("Expected no sessions, got %d", store.Len())
	}
}

// Full flow: a short link arrives, qualities are offered, a press delivers
// the video and cleans up the artifact.
func TestLinkThenQuality_Delivers(t *testing.T) {
	res := &fakeResolver{
		discoverFn: func(_ context.Context, _ string) (map[int]string, error) {
			return map[int]string{360: "18", 720: "136", 1080: "137"}, nil
		},
		downloadFn: func(_ context.Context, _ string, _ int, path string) error {
			return os.WriteFile(path, []byte("video data"), 0644)
		},
	}
	svc, _ := newHandlerService(t, res)

	link := &fakeChat{user: &tele.User{ID: 7}, text: "https://youtu.be/abc123?feature=share"}
	if err := svc.handleLink(link); err != nil {
		t.Fatalf("handleLink returned error: %v", err)
	}

	press := &fakeChat{user: &tele.User{ID: 7}, data: "720"}
	if err := svc.handleQuality(press); err != nil {
		t.Fatalf("handleQuality returned error: %v", err)
	}

	if res.gotURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("Download requested for wrong URL: %s", res.gotURL)
	}
	if res.gotHeight != 720 {
		t.Errorf("Download requested at height %d, expected 720", res.gotHeight)
	}

	texts := chatTexts(press)
	if len(texts) == 0 || texts[0] != fmt.Sprintf(msgDownloading, 720) {
		t.Errorf("Expected downloading status first, got %v", texts)
	}
	if texts[len(texts)-1] != msgDone {
		t.Errorf("Expected final message %q, got %v", msgDone, texts)
	}

	var video *tele.Video
	for _, s := range press.sent {
		if v, ok := s.(*tele.Video); ok {
			video = v
		}
	}
	if video == nil {
		t.Fatal("Expected a video to be sent")
	}

	if _, err := os.Stat(res.gotPath); !os.IsNotExist(err) {
		t.Errorf("Artifact not cleaned up: %s", res.gotPath)
	}
}
