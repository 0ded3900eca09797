package playback

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pgale/chime/internal/core"
)

// Poller samples the player's position on a fixed interval while playback
// is active and feeds it back through the apply callback. At most one
// sampling loop is active at any moment; Start replaces any running loop.
// Each loop carries the load generation it was started for, so samples
// taken for a superseded track are discarded by the receiver.
type Poller struct {
	log      *log.Logger
	player   core.Player
	interval time.Duration
	apply    func(gen uint64, pos time.Duration)

	mu   sync.Mutex
	stop chan struct{}
}

// NewPoller creates a poller. A zero interval defaults to one second.
func NewPoller(player core.Player, interval time.Duration, apply func(gen uint64, pos time.Duration), logger *log.Logger) *Poller {
	if interval == 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{
		log:      logger.With("component", "poller"),
		player:   player,
		interval: interval,
		apply:    apply,
	}
}

// Start begins sampling for the given load generation, stopping any
// previous loop first.
func (p *Poller) Start(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		close(p.stop)
	}
	stop := make(chan struct{})
	p.stop = stop
	go p.run(gen, stop)
}

// Stop halts sampling. Safe to call when not running.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

// Running reports whether a sampling loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

func (p *Poller) run(gen uint64, stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			pos, err := p.player.Position(context.Background())
			if err != nil {
				p.log.Debug("position read failed", "err", err)
				continue
			}
			p.apply(gen, pos)
		}
	}
}
