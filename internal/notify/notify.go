// Package notify alerts the user when an interval finishes
package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/kballard/go-shellquote"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/apperr"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/config"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/static"
)

var (
	errInvalidSoundFormat = &apperr.Error{
		Message: "sound file %q must be in mp3, ogg, flac, or wav format",
	}

	errSessionCmd = &apperr.Error{
		Message: "unable to parse session_cmd option",
	}
)

// Options controls what happens when an interval finishes.
type Options struct {
	// Messages is the notification body keyed by the mode that comes next
	Messages map[pomodoro.Mode]string
	// Sounds is the alert sound keyed by the mode that finished
	Sounds     map[pomodoro.Mode]string
	SessionCmd string
	Enabled    bool
}

// FromConfig builds the notifier options from the user configuration.
func FromConfig(cfg *config.Config) Options {
	opts := Options{
		Enabled:    cfg.Notifications.Enabled,
		SessionCmd: cfg.Settings.Cmd,
		Messages:   make(map[pomodoro.Mode]string),
		Sounds:     make(map[pomodoro.Mode]string),
	}

	for _, mode := range []pomodoro.Mode{
		pomodoro.Focus,
		pomodoro.ShortBreak,
		pomodoro.LongBreak,
	} {
		opts.Messages[mode] = cfg.Session(mode).Message
		opts.Sounds[mode] = cfg.SoundFor(mode)
	}

	return opts
}

// Notifier sends a desktop notification, plays the alert sound and runs the
// session command.
type Notifier struct {
	alert func(title, message, icon string) error
	beep  func() error
	play  func(ctx context.Context, path string) error
	run   func(ctx context.Context, argv []string) error
	opts  Options
}

var _ pomodoro.Notifier = (*Notifier)(nil)

func New(opts Options) *Notifier {
	return &Notifier{
		opts: opts,
		alert: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
		play: playSound,
		run:  runCmd,
	}
}

// Notify reports the completion of an interval. Every step is attempted and
// the failures are joined.
func (n *Notifier) Notify(ctx context.Context, c pomodoro.Completion) error {
	var errs []error

	if n.opts.Enabled {
		errs = append(errs, n.alert(title(c), n.message(c), iconPath()))
		errs = append(errs, n.sound(ctx, n.opts.Sounds[c.Finished]))
	}

	errs = append(errs, n.sessionCmd(ctx))

	return errors.Join(errs...)
}

func title(c pomodoro.Completion) string {
	t := c.Finished.Title() + " is finished"

	if label := c.Task.Label(); label != "" && c.Finished == pomodoro.Focus {
		t += ": " + label
	}

	return t
}

func (n *Notifier) message(c pomodoro.Completion) string {
	msg := n.opts.Messages[c.Next]
	if msg == "" {
		msg = c.Next.Title() + " is next"
	}

	return msg
}

// iconPath returns an empty string when no icon is installed.
func iconPath() string {
	p, _ := xdg.SearchDataFile(filepath.Join(static.AppDir, "icon.svg"))

	return p
}

func (n *Notifier) sound(ctx context.Context, sound string) error {
	switch sound {
	case "", config.SoundOff:
		return nil
	case config.SoundBeep:
		return n.beep()
	default:
		return n.play(ctx, sound)
	}
}

func (n *Notifier) sessionCmd(ctx context.Context) error {
	if n.opts.SessionCmd == "" {
		return nil
	}

	argv, err := shellquote.Split(n.opts.SessionCmd)
	if err != nil {
		return errSessionCmd.Wrap(err)
	}

	if len(argv) == 0 {
		return nil
	}

	return n.run(ctx, argv)
}

func runCmd(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("session_cmd %q: %w: %s", argv[0], err, out)
	}

	return nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	// the decoders take ownership of f and close it with the stream
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		return vorbis.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".wav":
		return wav.Decode(f)
	}

	_ = f.Close()

	return nil, beep.Format{}, errInvalidSoundFormat.Fmt(path)
}

// playSound plays the audio file at path and blocks until it ends or ctx is
// done.
func playSound(ctx context.Context, path string) error {
	stream, format, err := decode(path)
	if err != nil {
		return err
	}

	defer stream.Close()

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Second/time.Duration(bufferSize)),
	)
	if err != nil {
		return err
	}

	defer speaker.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}

	return nil
}
