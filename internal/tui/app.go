package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/lfm/internal/watch"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

const maxRecentTracks = 8

// Config holds TUI configuration options
type Config struct {
	RefreshRate time.Duration // How often to refresh the display
	User        string        // Last.fm user being watched
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		RefreshRate: 500 * time.Millisecond,
	}
}

// RecentTrack stores info about a track seen by the poller
type RecentTrack struct {
	Name     string
	Artist   string
	PlayedAt time.Time
}

// App is the TUI dashboard for a watched Last.fm user
type App struct {
	app        *tview.Application
	nowPlaying *tview.TextView
	profile    *tview.TextView
	recent     *tview.TextView
	status     *tview.TextView

	config Config

	// Mutex protects shared state accessed by both the channel consumer
	// goroutine and the ticker goroutine in handleUpdates.
	mu sync.Mutex

	// Current state (guarded by mu)
	currentTrack *lastfm.Track
	lastErr      error
	lastPoll     time.Time
	user         *lastfm.User
	archived     int

	// Session stats (guarded by mu)
	sessionStart time.Time
	polls        int
	changes      int

	// Ring buffer for recent tracks (avoids allocation on every track change)
	recentBuf   [maxRecentTracks]RecentTrack
	recentCount int // total tracks added (recentCount % maxRecentTracks = next write index)

	// Last-rendered content for change detection
	lastNowPlaying string
	lastProfile    string
	lastRecent     string
	lastStatus     string

	cancelFunc context.CancelFunc
}

// New creates a new TUI application with default config
func New() *App {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new TUI application with the given config
func NewWithConfig(cfg Config) *App {
	a := &App{
		app:          tview.NewApplication(),
		config:       cfg,
		sessionStart: time.Now(),
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	title := " Now Playing "
	if a.config.User != "" {
		title = fmt.Sprintf(" %s ", a.config.User)
	}

	a.nowPlaying = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.nowPlaying.SetBorder(true).
		SetTitle(title).
		SetTitleAlign(tview.AlignLeft)

	a.profile = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.profile.SetBorder(true).
		SetTitle(" Profile ").
		SetTitleAlign(tview.AlignLeft)

	a.recent = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.recent.SetBorder(true).
		SetTitle(" Recent ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	// Top row: now playing
	// Middle row: profile | recent tracks
	// Footer: status bar
	middleRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.profile, 0, 1, false).
		AddItem(a.recent, 0, 2, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.nowPlaying, 0, 2, false).
		AddItem(middleRow, maxRecentTracks+2, 1, false).
		AddItem(a.status, 1, 1, false)

	a.app.SetInputCapture(a.handleKeyEvent)

	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		a.Stop()
		return nil
	}
	switch event.Rune() {
	case 'q', 'Q':
		a.Stop()
		return nil
	}
	return event
}

// Run starts the TUI with an update channel from the poller
func (a *App) Run(ctx context.Context, updates <-chan watch.Update) error {
	ctx, a.cancelFunc = context.WithCancel(ctx)

	go a.handleUpdates(ctx, updates)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// handleUpdates consumes poller updates and redraws on a ticker so bursts of
// updates never queue redraws. All shared App fields are protected by a.mu.
func (a *App) handleUpdates(ctx context.Context, updates <-chan watch.Update) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				a.mu.Lock()
				a.apply(update, time.Now())
				a.mu.Unlock()
			}
		}
	}()

	refreshRate := a.config.RefreshRate
	if refreshRate <= 0 {
		refreshRate = 500 * time.Millisecond
	}
	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case <-ticker.C:
			a.refresh()
		}
	}
}

// apply records one poller update. Must be called with a.mu held.
func (a *App) apply(update watch.Update, now time.Time) {
	a.polls++
	a.lastPoll = now

	if update.Err != nil {
		a.lastErr = update.Err
		return
	}
	a.lastErr = nil

	if update.Changed && update.Track != nil {
		a.changes++
		a.addToRecentTracks(update.Track, now)
	}
	a.currentTrack = update.Track
}

// addToRecentTracks adds a track to the ring buffer of recent tracks,
// skipping a repeat of the newest entry. Must be called with a.mu held.
func (a *App) addToRecentTracks(track *lastfm.Track, now time.Time) {
	if track == nil {
		return
	}

	playedAt := track.PlayedAt
	if track.NowPlaying || playedAt.Unix() == 0 {
		playedAt = now
	}

	entry := RecentTrack{
		Name:     track.Name,
		Artist:   track.Artist.Name(),
		PlayedAt: playedAt,
	}

	// A finished track follows its own now-playing entry
	if a.recentCount > 0 {
		newest := a.recentBuf[(a.recentCount-1)%maxRecentTracks]
		if newest.Name == entry.Name && newest.Artist == entry.Artist {
			return
		}
	}

	idx := a.recentCount % maxRecentTracks
	a.recentBuf[idx] = entry
	a.recentCount++
}

// getRecentTracks returns recent tracks in most-recent-first order.
// Must be called with a.mu held.
func (a *App) getRecentTracks() []RecentTrack {
	n := a.recentCount
	if n > maxRecentTracks {
		n = maxRecentTracks
	}
	result := make([]RecentTrack, n)
	for i := 0; i < n; i++ {
		idx := (a.recentCount - 1 - i) % maxRecentTracks
		result[i] = a.recentBuf[idx]
	}
	return result
}

// SetUser sets the profile shown in the profile panel
func (a *App) SetUser(user *lastfm.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
}

// SetArchivedCount sets the number of archived plays shown in the profile panel
func (a *App) SetArchivedCount(count int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.archived = count
}

// refresh updates all UI components
func (a *App) refresh() {
	a.app.QueueUpdateDraw(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		now := time.Now()
		setIfChanged(a.nowPlaying, &a.lastNowPlaying, renderNowPlaying(a.currentTrack, now))
		setIfChanged(a.profile, &a.lastProfile, renderProfile(a.user, a.archived))
		setIfChanged(a.recent, &a.lastRecent, renderRecent(a.getRecentTracks(), now))
		setIfChanged(a.status, &a.lastStatus, a.renderStatus(now))
	})
}

func setIfChanged(view *tview.TextView, last *string, text string) {
	if text != *last {
		*last = text
		view.SetText(text)
	}
}

// renderNowPlaying renders the now playing panel
func renderNowPlaying(track *lastfm.Track, now time.Time) string {
	if track == nil {
		return "\n\n[gray]No plays yet[-]"
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(track.Name)))
	sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", tview.Escape(track.Artist.Name())))
	if track.Album.Name != "" {
		sb.WriteString(fmt.Sprintf("[gray]%s[-]", tview.Escape(track.Album.Name)))
	}

	if track.NowPlaying {
		sb.WriteString("\n\n[green]▶ now playing[-]") // Play triangle
	} else {
		sb.WriteString(fmt.Sprintf("\n\n[gray]■ last played %s[-]", formatAgo(now.Sub(track.PlayedAt))))
	}
	if track.Loved {
		sb.WriteString(" [red]♥[-]")
	}

	return sb.String()
}

// renderProfile renders the profile panel
func renderProfile(user *lastfm.User, archived int) string {
	if user == nil {
		return "[gray]Loading...[-]"
	}

	var sb strings.Builder
	name := user.Name
	if user.RealName != "" {
		name = fmt.Sprintf("%s (%s)", user.Name, user.RealName)
	}
	sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(name)))
	sb.WriteString(fmt.Sprintf("Plays:   %d\n", user.PlayCount))
	if user.Country != "" {
		sb.WriteString(fmt.Sprintf("Country: %s\n", tview.Escape(user.Country)))
	}
	if user.Registered.Unix() > 0 {
		sb.WriteString(fmt.Sprintf("Since:   %s\n", user.Registered.Format("2006-01-02")))
	}
	if archived > 0 {
		sb.WriteString(fmt.Sprintf("Archive: %d", archived))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderRecent renders the recent tracks panel
func renderRecent(tracks []RecentTrack, now time.Time) string {
	if len(tracks) == 0 {
		return "[gray]No recent tracks[-]"
	}

	var sb strings.Builder
	for i, track := range tracks {
		if i > 0 {
			sb.WriteString("\n")
		}

		label := runewidth.Truncate(track.Artist+" - "+track.Name, 40, "...")
		sb.WriteString(fmt.Sprintf("[gray]%8s[-] [white]%s[-]", formatAgo(now.Sub(track.PlayedAt)), tview.Escape(label)))
	}

	return sb.String()
}

// renderStatus renders the status bar. Must be called with a.mu held.
func (a *App) renderStatus(now time.Time) string {
	if a.lastErr != nil {
		return fmt.Sprintf("[red]%s[-]  [gray]q:quit[-]", tview.Escape(a.lastErr.Error()))
	}
	return fmt.Sprintf("[gray]polls: %d  changes: %d  session: %s  q:quit[-]",
		a.polls, a.changes, formatDuration(now.Sub(a.sessionStart)))
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// formatAgo formats an elapsed duration as a short relative time
func formatAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// formatDuration formats a duration as MM:SS or HH:MM:SS for longer durations
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
