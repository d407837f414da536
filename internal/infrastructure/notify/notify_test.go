package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"groupies/internal/config"
	"groupies/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesGolden(t *testing.T) {
	out := SignupMessage("alice") + "\n" +
		GroupFullMessage("BBQ Nation 7@777 (Group of 7)", 7) + "\n"

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "messages", []byte(out))
}

func TestTelegramDisabledWithoutCredentials(t *testing.T) {
	assert.Nil(t, NewTelegramNotifier(&config.TelegramConfig{BotToken: "t"}))
	assert.Nil(t, NewTelegramNotifier(&config.TelegramConfig{ChatID: "c"}))
	assert.Nil(t, NewKafkaNotifier(nil, "topic", 5))
}

func TestTelegramSendMessage(t *testing.T) {
	var gotPath, gotChat, gotText, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegramNotifier(&config.TelegramConfig{BotToken: "123:abc", ChatID: "42", APIBase: srv.URL + "/"})
	require.NotNil(t, tg)

	require.NoError(t, tg.Notify(context.Background(), SignupMessage("bob")))
	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "application/x-www-form-urlencoded", gotType)
	assert.Equal(t, "42", gotChat)
	assert.Equal(t, "🎉 New signup: bob", gotText)
}

func TestTelegramErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	tg := NewTelegramNotifier(&config.TelegramConfig{BotToken: "secret-token", ChatID: "1", APIBase: srv.URL})
	err := tg.Notify(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	tg := NewTelegramNotifier(&config.TelegramConfig{BotToken: "secret-token", ChatID: "1", APIBase: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := tg.Notify(ctx, "x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type fakeNotifier struct {
	name string
	err  error

	mu   sync.Mutex
	msgs []string
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Notify(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, message)
	return f.err
}

func (f *fakeNotifier) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.msgs...)
}

func TestDispatcherFansOut(t *testing.T) {
	ok := &fakeNotifier{name: "fake_ok"}
	bad := &fakeNotifier{name: "fake_bad", err: errors.New("down")}
	failedBefore := testutil.ToFloat64(metrics.Notifications.WithLabelValues("fake_bad", "failed"))

	d := NewDispatcher(ok, bad)
	require.True(t, d.Enabled())
	d.Send("hello")
	d.Send("world")
	d.Close()

	assert.Equal(t, []string{"hello", "world"}, ok.received())
	assert.Len(t, bad.received(), 2, "一个渠道失败不影响其它渠道")
	assert.Equal(t, failedBefore+2, testutil.ToFloat64(metrics.Notifications.WithLabelValues("fake_bad", "failed")))
}

func TestDispatcherNoop(t *testing.T) {
	d := NewDispatcher()
	assert.False(t, d.Enabled())
	d.Send("ignored")
	d.Close()
}

func TestFromConfig(t *testing.T) {
	d := FromConfig(&config.Config{})
	assert.False(t, d.Enabled())

	d = FromConfig(&config.Config{
		TelegramConfig: config.TelegramConfig{BotToken: "t", ChatID: "c", APIBase: "http://127.0.0.1:1"},
		KafkaConfig:    config.KafkaConfig{HostPort: "localhost:9092", NotifyTopic: "n", Timeout: 1},
	})
	require.Len(t, d.sinks, 2)
	names := []string{d.sinks[0].Name(), d.sinks[1].Name()}
	assert.Equal(t, "telegram,kafka", strings.Join(names, ","))
	d.Close()
}
