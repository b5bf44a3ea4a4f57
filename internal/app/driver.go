// internal/app/driver.go
package app

import (
	"context"
	"log"
	"sync"
	"time"

	"go-survivor/internal/component"
)

// Ticker то, что продвигает Driver.
type Ticker interface {
	Tick() error
	Status() component.GameStatus
}

// Driver вызывает Tick раз в период, пока сессия в состоянии Playing.
// После выхода из Playing останавливается; при возврате отсчитывает
// период от момента возобновления и пропущенные тики не догоняет.
type Driver struct {
	game   Ticker
	period time.Duration

	mu       sync.Mutex
	armed    bool
	deadline time.Time
	err      error
}

// NewDriver создаёт драйвер с фиксированным периодом.
func NewDriver(game Ticker, period time.Duration) *Driver {
	return &Driver{game: game, period: period}
}

// Err возвращает ошибку, остановившую драйвер.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Poll выполняет не больше одного тика, если к моменту now подошёл срок.
// Используется из игрового цикла хоста. Повторный вход исключён блокировкой.
func (d *Driver) Poll(now time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return d.err
	}
	if d.game.Status() != component.StatusPlaying {
		d.armed = false
		return nil
	}
	if !d.armed {
		d.armed = true
		d.deadline = now.Add(d.period)
		return nil
	}
	if now.Before(d.deadline) {
		return nil
	}

	if err := d.game.Tick(); err != nil {
		d.err = err
		log.Printf("Driver stopped: %v", err)
		return err
	}

	// Шаг от прошлого срока держит ритм; если отстали больше чем на период,
	// начинаем отсчёт заново.
	d.deadline = d.deadline.Add(d.period)
	if !d.deadline.After(now) {
		d.deadline = now.Add(d.period)
	}
	return nil
}

// Run опрашивает Poll в собственной горутине вызывающего до отмены ctx
// или до ошибки тика.
func (d *Driver) Run(ctx context.Context) error {
	resolution := max(d.period/10, time.Millisecond)
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := d.Poll(now); err != nil {
				return err
			}
		}
	}
}
